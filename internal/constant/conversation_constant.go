package constant

const (
	SpeakerUser  = "user"
	SpeakerAgent = "agent"

	// DefaultUserID identifies the shared demo user when a request carries
	// no user id.
	DefaultUserID = "__default__"

	// SemanticGoalsKey is the semantic ledger key holding deduplicated goal
	// texts per user.
	SemanticGoalsKey = "goals"

	// ReflectionOutcome tags episodes created from plan reflections.
	ReflectionOutcome = "reflection_summary"

	// SessionStateVersion is the current format of the session state blob.
	SessionStateVersion = 1
)
