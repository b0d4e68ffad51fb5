package enums

import "fmt"

// IntentStatus tracks the lifecycle of a donation intent.
type IntentStatus string

const (
	IntentStatusCreated IntentStatus = "created"
	IntentStatusSettled IntentStatus = "settled"
	IntentStatusFailed  IntentStatus = "failed"
)

var validIntentStatuses = []IntentStatus{
	IntentStatusCreated,
	IntentStatusSettled,
	IntentStatusFailed,
}

// String implements fmt.Stringer.
func (s IntentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known IntentStatus.
func (s IntentStatus) IsValid() bool {
	for _, candidate := range validIntentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s IntentStatus) IsTerminal() bool {
	return s == IntentStatusSettled || s == IntentStatusFailed
}

// ParseIntentStatus converts raw input into an IntentStatus.
func ParseIntentStatus(value string) (IntentStatus, error) {
	for _, candidate := range validIntentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid intent status %q", value)
}
