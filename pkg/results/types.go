// Package results aggregates a TCK run into a candidate x instantiator matrix.
package results

import "time"

// Status values for a trial.
const (
	StatusPass  = "pass"
	StatusFail  = "fail"
	StatusError = "error"
)

// Trial is one cell of the matrix. Row is the candidate's position in
// Matrix.Candidates; descriptions need not be unique, positions are.
type Trial struct {
	Row          int           `json:"row"`
	Candidate    string        `json:"candidate"`
	Instantiator string        `json:"instantiator"`
	Instantiated bool          `json:"instantiated"`
	Err          error         `json:"-"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// Status returns "pass", "fail" (wrong or missing instance) or "error" (raised).
func (t Trial) Status() string {
	switch {
	case t.Err != nil:
		return StatusError
	case t.Instantiated:
		return StatusPass
	default:
		return StatusFail
	}
}

// Matrix is the complete outcome of one run, in report order.
type Matrix struct {
	RunID         string
	Platform      string
	Candidates    []string
	Instantiators []string
	Trials        []Trial
	Started       time.Time
	Finished      time.Time
}

// Counts tallies trials by status.
func (m *Matrix) Counts() (passed, failed, errored int) {
	for _, t := range m.Trials {
		switch t.Status() {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		default:
			errored++
		}
	}
	return passed, failed, errored
}

// Passed reports whether every trial instantiated its candidate.
func (m *Matrix) Passed() bool {
	_, failed, errored := m.Counts()
	return failed == 0 && errored == 0
}

// Duration is the wall time between StartTests and EndTests.
func (m *Matrix) Duration() time.Duration {
	if m.Finished.Before(m.Started) {
		return 0
	}
	return m.Finished.Sub(m.Started)
}

// ByInstantiator returns the trials of one instantiator in candidate order.
func (m *Matrix) ByInstantiator(label string) []Trial {
	var out []Trial
	for _, t := range m.Trials {
		if t.Instantiator == label {
			out = append(out, t)
		}
	}
	return out
}

// CellAt returns the trial for the candidate at row and an instantiator.
func (m *Matrix) CellAt(row int, instantiator string) (Trial, bool) {
	for _, t := range m.Trials {
		if t.Row == row && t.Instantiator == instantiator {
			return t, true
		}
	}
	return Trial{}, false
}

// Cell returns the first trial for a candidate description and instantiator.
// Use CellAt when descriptions may repeat.
func (m *Matrix) Cell(candidate, instantiator string) (Trial, bool) {
	for _, t := range m.Trials {
		if t.Candidate == candidate && t.Instantiator == instantiator {
			return t, true
		}
	}
	return Trial{}, false
}
