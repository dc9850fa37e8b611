package render

import (
	"strings"
	"testing"

	"github.com/dkoosis/tck/pkg/pattern"
)

func samplePatterns() []pattern.Pattern {
	return []pattern.Pattern{
		&pattern.Summary{
			Label: "FAIL 1/4 trials (2ms)",
			Kind:  pattern.SummaryKindRun,
			Metrics: []pattern.SummaryItem{
				{Label: "Exceptions", Value: "1/4 trials", Kind: "error"},
				{Label: "Passed", Value: "3/4 trials", Kind: "info"},
			},
		},
		&pattern.Grid{
			Label:   "matrix",
			Columns: []string{"Std", "Serializer"},
			Rows: []pattern.GridRow{
				{Name: "Empty struct", Cells: []string{"pass", "pass"}},
				{Name: "Constructor panics", Cells: []string{"pass", "error"}},
			},
		},
		&pattern.TestTable{
			Label: "FAIL Serializer (1/2)",
			Results: []pattern.TestTableItem{
				{Name: "Constructor panics", Status: "error", Duration: "3µs", Details: "l1\nl2\nl3\nl4"},
			},
		},
		&pattern.Leaderboard{
			Label: "Slowest trials", ShowRank: true, TotalCount: 4,
			Items: []pattern.LeaderboardItem{{Name: "Empty struct / Std", Metric: "1ms", Rank: 1}},
		},
		&pattern.Sparkline{Label: "Std", Values: []float64{1, 4, 2}, Unit: "µs"},
	}
}

func TestTerminal_RenderMatrix(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render(samplePatterns())

	for _, want := range []string{"FAIL 1/4 trials", "Matrix", "Serializer", "Constructor panics", "X", "(top 1 of 4)", "max 4.0µs"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTerminal_GridMarksMissingCells(t *testing.T) {
	g := &pattern.Grid{Columns: []string{"A"}, Rows: []pattern.GridRow{{Name: "x", Cells: []string{""}}}}
	out := NewTerminal(MonoTheme(), 0).Render([]pattern.Pattern{g})
	if !strings.Contains(out, "-") {
		t.Errorf("a cell with no trial should render the not-run icon:\n%s", out)
	}
}

func TestLLM_RenderMatrix(t *testing.T) {
	out := NewLLM().Render(samplePatterns())

	if !strings.HasPrefix(out, "SCOPE: FAIL 1/4 trials") {
		t.Errorf("expected SCOPE line first:\n%s", out)
	}
	if !strings.Contains(out, "  ERROR Constructor panics (3µs)") {
		t.Errorf("expected failure line:\n%s", out)
	}
	if !strings.Contains(out, "... (1 more lines)") {
		t.Errorf("expected details to be capped:\n%s", out)
	}
	if !strings.Contains(out, "Constructor panics: Std=pass Serializer=error") {
		t.Errorf("expected grid line:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("LLM output must not contain ANSI codes")
	}
}

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("orca").Name; got != "orca" {
		t.Errorf("got %q", got)
	}
	if got := ThemeByName("unknown").Name; got != "default" {
		t.Errorf("unknown theme should fall back to default, got %q", got)
	}
	if got := ThemeNames(); strings.Join(got, ",") != "default,mono,orca" {
		t.Errorf("ThemeNames() = %v", got)
	}
}

func TestTheme_CellSeparatesWrongTypeFromRaised(t *testing.T) {
	theme := MonoTheme()
	cases := map[string]string{
		StatusPass:  "+",
		StatusFail:  "?",
		StatusError: "X",
		"":          "-",
	}
	for status, want := range cases {
		if got, _ := theme.Cell(status); got != want {
			t.Errorf("Cell(%q) icon = %q, want %q", status, got, want)
		}
	}

	g := &pattern.Grid{Columns: []string{"Std"}, Rows: []pattern.GridRow{
		{Name: "returns other type", Cells: []string{StatusFail}},
		{Name: "raises", Cells: []string{StatusError}},
	}}
	out := NewTerminal(theme, 80).Render([]pattern.Pattern{g})
	rows := map[string]string{"returns other type": "?", "raises": "X"}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		if want, ok := rows[name]; ok {
			if got := fields[len(fields)-1]; got != want {
				t.Errorf("row %q = %q, want %q", name, got, want)
			}
			delete(rows, name)
		}
	}
	if len(rows) > 0 {
		t.Errorf("rows missing from grid: %v\n%s", rows, out)
	}
}
