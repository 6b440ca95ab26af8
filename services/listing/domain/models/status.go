package models

import "fmt"

// Status is the visibility state of a listing. Only active listings are
// shown anywhere.
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

// ParseStatus converts s into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusResolved:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// String returns the underlying string value.
func (s Status) String() string {
	return string(s)
}
