package empowerment

import "strings"

// DetectAlienation scans a rationale for cues that the user is losing the
// thread. Returns nil when no signal is present.
func DetectAlienation(rationale string) *AlienationSignal {
	lowered := strings.ToLower(rationale)
	if strings.Contains(lowered, "overwhelmed") {
		return &AlienationSignal{Label: "overload", Severity: 0.7}
	}
	if strings.Contains(lowered, "confused") {
		return &AlienationSignal{Label: "ambiguity", Severity: 0.5}
	}
	return nil
}
