// Package mapper converts TCK results into visualization patterns.
package mapper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dkoosis/tck/pkg/pattern"
	"github.com/dkoosis/tck/pkg/results"
	"github.com/dkoosis/tck/pkg/tck"
)

const (
	kindSuccess = "success"
	kindError   = "error"
	kindWarning = "warning"
	kindInfo    = "info"

	slowestShown    = 5
	stackLinesShown = 4
)

// FromMatrix converts a finished run into patterns:
// Summary, Grid, one failure TestTable per instantiator with failures,
// a Leaderboard of the slowest trials and a duration Sparkline per instantiator.
func FromMatrix(m *results.Matrix) []pattern.Pattern {
	patterns := []pattern.Pattern{runSummary(m)}
	if len(m.Trials) == 0 {
		return patterns
	}
	patterns = append(patterns, grid(m))

	for _, inst := range m.Instantiators {
		if t := failureTable(inst, m.ByInstantiator(inst)); t != nil {
			patterns = append(patterns, t)
		}
	}
	if lb := slowest(m); lb != nil {
		patterns = append(patterns, lb)
	}
	for _, inst := range m.Instantiators {
		if sp := durationSparkline(inst, m.ByInstantiator(inst)); sp != nil {
			patterns = append(patterns, sp)
		}
	}
	return patterns
}

func runSummary(m *results.Matrix) *pattern.Summary {
	passed, failed, errored := m.Counts()
	total := len(m.Trials)

	var metrics []pattern.SummaryItem
	if errored > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Exceptions", Value: fmt.Sprintf("%d/%d trials", errored, total), Kind: kindError,
		})
	}
	if failed > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Failed", Value: fmt.Sprintf("%d/%d trials", failed, total), Kind: kindError,
		})
	}
	passKind := kindSuccess
	if failed+errored > 0 {
		passKind = kindInfo
	}
	metrics = append(metrics,
		pattern.SummaryItem{Label: "Passed", Value: fmt.Sprintf("%d/%d trials", passed, total), Kind: passKind},
		pattern.SummaryItem{Label: "Candidates", Value: fmt.Sprintf("%d", len(m.Candidates)), Kind: kindInfo},
		pattern.SummaryItem{Label: "Instantiators", Value: strings.Join(m.Instantiators, ", "), Kind: kindInfo},
		pattern.SummaryItem{Label: "Platform", Value: m.Platform, Kind: kindInfo},
	)
	if total == 0 {
		metrics = append(metrics, pattern.SummaryItem{Label: "Warning", Value: "no trials ran", Kind: kindWarning})
	}

	label := fmt.Sprintf("PASS %d trials (%s)", total, formatDuration(m.Duration()))
	if failed+errored > 0 {
		label = fmt.Sprintf("FAIL %d/%d trials (%s)", failed+errored, total, formatDuration(m.Duration()))
	}
	return &pattern.Summary{Label: label, Kind: pattern.SummaryKindRun, Metrics: metrics}
}

func grid(m *results.Matrix) *pattern.Grid {
	col := make(map[string]int, len(m.Instantiators))
	for i, inst := range m.Instantiators {
		col[inst] = i
	}
	g := &pattern.Grid{Label: "Matrix", Columns: append([]string(nil), m.Instantiators...)}
	for _, c := range m.Candidates {
		g.Rows = append(g.Rows, pattern.GridRow{Name: c, Cells: make([]string, len(m.Instantiators))})
	}
	for _, t := range m.Trials {
		c, ok := col[t.Instantiator]
		if ok && t.Row >= 0 && t.Row < len(g.Rows) {
			g.Rows[t.Row].Cells[c] = t.Status()
		}
	}
	return g
}

func failureTable(inst string, trials []results.Trial) *pattern.TestTable {
	var items []pattern.TestTableItem
	for _, t := range trials {
		switch t.Status() {
		case results.StatusError:
			items = append(items, pattern.TestTableItem{
				Name:     t.Candidate,
				Status:   results.StatusError,
				Duration: formatDuration(t.Elapsed),
				Details:  errorDetails(t.Err),
			})
		case results.StatusFail:
			items = append(items, pattern.TestTableItem{
				Name:     t.Candidate,
				Status:   results.StatusFail,
				Duration: formatDuration(t.Elapsed),
				Details:  "no instance of the exact candidate type",
			})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &pattern.TestTable{
		Label:   fmt.Sprintf("FAIL %s (%d/%d)", inst, len(items), len(trials)),
		Results: items,
	}
}

// errorDetails keeps the message and, for panics, the first frames of the stack.
func errorDetails(err error) string {
	msg := err.Error()
	var pe *tck.PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		return msg + "\n" + truncateLines(panicSite(pe.Stack), stackLinesShown)
	}
	return msg
}

// panicSite drops the recovery frames of a goroutine stack so it starts at
// the function that panicked. A stack without a panic frame is kept whole.
func panicSite(stack []byte) []string {
	lines := strings.Split(strings.TrimSpace(string(stack)), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "panic(") {
			// The frame's file:line follows on the next line.
			return lines[min(i+2, len(lines)):]
		}
	}
	return lines
}

func slowest(m *results.Matrix) *pattern.Leaderboard {
	trials := make([]results.Trial, len(m.Trials))
	copy(trials, m.Trials)
	sort.SliceStable(trials, func(i, j int) bool { return trials[i].Elapsed > trials[j].Elapsed })
	if len(trials) == 0 || trials[0].Elapsed == 0 {
		return nil
	}
	n := min(slowestShown, len(trials))
	lb := &pattern.Leaderboard{
		Label:      "Slowest trials",
		TotalCount: len(trials),
		ShowRank:   true,
	}
	for i, t := range trials[:n] {
		lb.Items = append(lb.Items, pattern.LeaderboardItem{
			Name:   t.Candidate + " / " + t.Instantiator,
			Metric: formatDuration(t.Elapsed),
			Rank:   i + 1,
			Status: t.Status(),
		})
	}
	return lb
}

func durationSparkline(inst string, trials []results.Trial) *pattern.Sparkline {
	if len(trials) < 2 {
		return nil
	}
	values := make([]float64, len(trials))
	for i, t := range trials {
		values[i] = float64(t.Elapsed) / float64(time.Microsecond)
	}
	return &pattern.Sparkline{Label: inst, Values: values, Unit: "µs"}
}

func truncateLines(lines []string, n int) string {
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n... (%d more lines)", len(lines)-n)
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}
