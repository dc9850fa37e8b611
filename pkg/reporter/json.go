package reporter

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dkoosis/tck/pkg/results"
)

// SummaryVersion is the schema version of the JSON summary.
const SummaryVersion = "1"

// Summary is the machine-readable form of a run.
type Summary struct {
	Version       string                    `json:"version"`
	RunID         string                    `json:"run_id"`
	Platform      string                    `json:"platform"`
	Started       time.Time                 `json:"started"`
	DurationNS    time.Duration             `json:"duration_ns"`
	Passed        bool                      `json:"passed"`
	Totals        Totals                    `json:"totals"`
	Candidates    []string                  `json:"candidates"`
	Instantiators []InstantiatorSummary     `json:"instantiators"`
	Failures      []Failure                 `json:"failures"`
	Timing        map[string]results.Timing `json:"timing"`
}

// Totals counts trials by outcome.
type Totals struct {
	Trials     int `json:"trials"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Exceptions int `json:"exceptions"`
}

// InstantiatorSummary is the per-instantiator tally.
type InstantiatorSummary struct {
	Label  string `json:"label"`
	Totals Totals `json:"totals"`
}

// Failure is one trial that did not pass.
type Failure struct {
	Row          int    `json:"row"`
	Candidate    string `json:"candidate"`
	Instantiator string `json:"instantiator"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// JSON writes a Summary document to its writer at EndTests.
type JSON struct {
	*results.Collector
	w      io.Writer
	indent bool
	err    error
}

// NewJSON returns a JSON summary reporter. indent pretty-prints the output.
func NewJSON(w io.Writer, indent bool) *JSON {
	j := &JSON{w: w, indent: indent}
	j.Collector = results.NewCollector(j.flush)
	return j
}

// Err returns the encode or write error, if any.
func (j *JSON) Err() error { return j.err }

func (j *JSON) flush(m *results.Matrix) {
	enc := json.NewEncoder(j.w)
	if j.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(Summarize(m)); err != nil {
		j.err = err
	}
}

// Summarize builds the JSON summary of m.
func Summarize(m *results.Matrix) Summary {
	s := Summary{
		Version:    SummaryVersion,
		RunID:      m.RunID,
		Platform:   m.Platform,
		Started:    m.Started,
		DurationNS: m.Duration(),
		Passed:     m.Passed(),
		Totals:     totals(m.Trials),
		Candidates: append([]string{}, m.Candidates...),
		Failures:   []Failure{},
		Timing:     make(map[string]results.Timing, len(m.Instantiators)),
	}
	for _, inst := range m.Instantiators {
		trials := m.ByInstantiator(inst)
		s.Instantiators = append(s.Instantiators, InstantiatorSummary{Label: inst, Totals: totals(trials)})
		s.Timing[inst] = results.ComputeTiming(trials)
	}
	for _, t := range m.Trials {
		if t.Status() == results.StatusPass {
			continue
		}
		f := Failure{Row: t.Row, Candidate: t.Candidate, Instantiator: t.Instantiator, Status: t.Status()}
		if t.Err != nil {
			f.Error = t.Err.Error()
		}
		s.Failures = append(s.Failures, f)
	}
	return s
}

func totals(trials []results.Trial) Totals {
	t := Totals{Trials: len(trials)}
	for _, tr := range trials {
		switch tr.Status() {
		case results.StatusPass:
			t.Passed++
		case results.StatusFail:
			t.Failed++
		default:
			t.Exceptions++
		}
	}
	return t
}
