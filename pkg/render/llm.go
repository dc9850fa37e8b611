package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/tck/pkg/pattern"
)

// LLM renders patterns as terse plain text optimized for AI consumption:
// zero ANSI codes, a SCOPE line, failures before the matrix, detail
// lines capped at three per trial.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns for LLM consumption.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	var grids []*pattern.Grid

	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			l.renderSummary(&sb, v)
		case *pattern.TestTable:
			l.renderTable(&sb, v)
		case *pattern.Grid:
			grids = append(grids, v)
		}
	}
	for _, g := range grids {
		l.renderGrid(&sb, g)
	}
	return sb.String()
}

func (l *LLM) renderSummary(sb *strings.Builder, s *pattern.Summary) {
	if s.Kind == pattern.SummaryKindRun {
		sb.WriteString("SCOPE: " + s.Label + "\n")
	} else {
		sb.WriteString(s.Label + "\n")
	}
	for _, m := range s.Metrics {
		sb.WriteString(m.Label + ": " + m.Value + "\n")
	}
}

func (l *LLM) renderTable(sb *strings.Builder, t *pattern.TestTable) {
	sb.WriteString("\n" + t.Label + "\n")
	for _, item := range t.Results {
		dur := ""
		if item.Duration != "" {
			dur = " (" + item.Duration + ")"
		}
		sb.WriteString(fmt.Sprintf("  %s %s%s\n", strings.ToUpper(item.Status), item.Name, dur))

		if item.Details != "" {
			lines := strings.Split(item.Details, "\n")
			n := min(len(lines), 3)
			for _, line := range lines[:n] {
				sb.WriteString("    " + line + "\n")
			}
			if len(lines) > 3 {
				sb.WriteString(fmt.Sprintf("    ... (%d more lines)\n", len(lines)-3))
			}
		}
	}
}

// renderGrid lists one line per candidate: "name: inst=status inst=status".
func (l *LLM) renderGrid(sb *strings.Builder, g *pattern.Grid) {
	sb.WriteString("\n" + strings.ToUpper(g.Label) + "\n")
	for _, r := range g.Rows {
		cells := make([]string, 0, len(r.Cells))
		for i, c := range r.Cells {
			if c == "" {
				c = "skip"
			}
			cells = append(cells, g.Columns[i]+"="+c)
		}
		sb.WriteString("  " + r.Name + ": " + strings.Join(cells, " ") + "\n")
	}
}
