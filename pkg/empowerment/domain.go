package empowerment

// ConstraintSeverity ranks how severe a detected manipulation pattern is.
type ConstraintSeverity string

const (
	SeverityBlock ConstraintSeverity = "block"
	SeverityWarn  ConstraintSeverity = "warn"
	SeverityInfo  ConstraintSeverity = "info"
)

// Manipulation pattern labels detected by the constraint scan.
const (
	PatternArtificialScarcity = "artificial_scarcity"
	PatternTimePressure       = "time_pressure"
	PatternExpiringDeal       = "expiring_deal"
	PatternSocialProof        = "social_proof"
	PatternPopularityPressure = "popularity_pressure"
	PatternFearOfMissingOut   = "fear_of_missing_out"
	PatternConfirmShaming     = "confirm_shaming"
	PatternForcedUpsell       = "forced_upsell"
	PatternMisdirection       = "misdirection"
	PatternRoachMotel         = "roach_motel"
	PatternBaitAndSwitch      = "bait_and_switch"
	PatternGuiltTripping      = "guilt_tripping"
	PatternHiddenCosts        = "hidden_costs"
	PatternOptionOverload     = "option_overload"
	PatternInformationHiding  = "information_hiding"
)

// ConstraintViolation records one detected manipulation pattern with its
// evidence and the remediation to apply.
type ConstraintViolation struct {
	Pattern        string             `json:"pattern"`
	Severity       ConstraintSeverity `json:"severity"`
	Evidence       string             `json:"evidence"`
	Explanation    string             `json:"explanation"`
	Recommendation string             `json:"recommendation"`
}

// ConstraintResult aggregates all violations found in one scan. Blocked is
// true iff any violation carries block severity.
type ConstraintResult struct {
	Blocked    bool                  `json:"blocked"`
	Violations []ConstraintViolation `json:"violations"`
	Summary    string                `json:"summary"`
}

// AlienationSignal marks a cue that the user may be disengaged or confused.
type AlienationSignal struct {
	Label    string  `json:"label"`
	Severity float64 `json:"severity"`
}

// ConfidenceSummary reports the confidence backing an alignment result and
// which scoring path produced it.
type ConfidenceSummary struct {
	AverageConfidence     float64            `json:"average_confidence"`
	AlignedGoalConfidence map[string]float64 `json:"aligned_goal_confidence"`
	Method                string             `json:"method"`
}

// GoalAlignmentResult scores how well a product set serves declared goals.
// Recomputed fresh on every plan build; only the score is snapshotted into
// session state.
type GoalAlignmentResult struct {
	Score              float64           `json:"score"`
	AlignedGoals       []string          `json:"aligned_goals"`
	MisalignedGoals    []string          `json:"misaligned_goals"`
	SupportingProducts []string          `json:"supporting_products"`
	ConfidenceSummary  ConfidenceSummary `json:"confidence_summary"`
}

// Guard verdict statuses, strongest first.
const (
	StatusBlocked     = "blocked"
	StatusNeedsReview = "needs_review"
	StatusClear       = "clear"
)

// GuardResult is the combined verdict of the alienation and constraint scans.
type GuardResult struct {
	Status      string            `json:"status"`
	Flags       []string          `json:"flags"`
	Constraints *ConstraintResult `json:"constraints,omitempty"`
	Summary     string            `json:"summary"`
}
