package domain

import "strings"

// Status is the condition an agent reports for a location.
type Status string

const (
	StatusGreen   Status = "GREEN"
	StatusAmber   Status = "AMBER"
	StatusRed     Status = "RED"
	StatusUnknown Status = "UNKNOWN"
)

// Statuses lists every accepted status.
var Statuses = []Status{StatusGreen, StatusAmber, StatusRed, StatusUnknown}

// ParseStatus matches s against the known statuses, ignoring case and
// surrounding space.
func ParseStatus(s string) (Status, bool) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range Statuses {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

// IsValid reports whether s is one of Statuses.
func (s Status) IsValid() bool {
	for _, status := range Statuses {
		if status == s {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
