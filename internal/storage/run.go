package storage

import (
	"time"
)

// Run is the journal record of one attack. It carries counts and timings
// only: no secret, no candidate text, no credential material.
type Run struct {
	ID         string        `json:"id"`
	Started    time.Time     `json:"started"`
	Mode       string        `json:"mode"`
	LockType   string        `json:"lockType"`
	Iterations int           `json:"iterations"`
	Candidates int           `json:"candidates"`
	Attempts   int           `json:"attempts"`
	Succeeded  bool          `json:"succeeded"`
	MatchIndex int           `json:"matchIndex"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Rate returns attempts per second, 0 when nothing was timed
func (r *Run) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Attempts) / r.Elapsed.Seconds()
}
