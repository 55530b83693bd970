package model

import (
	"time"
)

// CheckRecord represents the stored outcome of a title symmetry check
type CheckRecord struct {
	ID          string
	Title       string
	Normalized  string
	Symmetrical bool
	CheckTime   time.Time
	Rev         int64
}

// Verdict returns a short label for the check outcome
func (r *CheckRecord) Verdict() string {
	if r.Symmetrical {
		return "symmetrical"
	}
	return "asymmetrical"
}
