package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/tck/pkg/pattern"
)

var titler = cases.Title(language.English)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Grid:
		return t.renderGrid(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.TestTable:
		return t.renderTestTable(v)
	case *pattern.Sparkline:
		return t.renderSparkline(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		style := t.theme.Bold
		if strings.HasPrefix(s.Label, "FAIL") {
			style = style.Inherit(t.theme.Raised)
		}
		sb.WriteString(style.Render(s.Label))
		sb.WriteString("\n")
	}
	for _, m := range s.Metrics {
		sb.WriteString("  ")
		icon, style := t.iconStyle(m.Kind)
		sb.WriteString(style.Render(icon + " " + m.Label + ": " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderGrid draws candidates down and instantiators across, one icon per cell.
func (t *Terminal) renderGrid(g *pattern.Grid) string {
	if len(g.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	if g.Label != "" {
		sb.WriteString(t.theme.Bold.Render(titler.String(g.Label)))
		sb.WriteString("\n")
	}

	nameWidth := 0
	for _, r := range g.Rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Name))
	}
	nameWidth = min(nameWidth, t.width/2)

	colWidths := make([]int, len(g.Columns))
	for i, c := range g.Columns {
		colWidths[i] = max(runewidth.StringWidth(c), 3)
	}

	sb.WriteString("  " + padRight("", nameWidth))
	for i, c := range g.Columns {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Heading.Render(padRight(c, colWidths[i])))
	}
	sb.WriteString("\n")

	for _, r := range g.Rows {
		sb.WriteString("  ")
		sb.WriteString(padRight(truncate(r.Name, nameWidth), nameWidth))
		for i, cell := range r.Cells {
			icon, style := t.theme.Cell(cell)
			sb.WriteString("  ")
			sb.WriteString(style.Render(padRight(icon, colWidths[i])))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	maxName, maxMetric := 0, 0
	for _, item := range l.Items {
		maxName = max(maxName, runewidth.StringWidth(item.Name))
		maxMetric = max(maxMetric, runewidth.StringWidth(item.Metric))
	}
	maxName = min(maxName, 50)

	for _, item := range l.Items {
		sb.WriteString("  ")
		if l.ShowRank {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", item.Rank)))
		}
		if item.Status != "" {
			icon, style := t.theme.Cell(item.Status)
			sb.WriteString(style.Render(icon) + " ")
		}
		sb.WriteString(t.theme.Heading.Render(padRight(truncate(item.Name, maxName), maxName)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Notice.Render(padLeft(item.Metric, maxMetric)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderTestTable(tt *pattern.TestTable) string {
	if len(tt.Results) == 0 {
		return ""
	}
	var sb strings.Builder
	if tt.Label != "" {
		sb.WriteString(t.theme.Bold.Render(tt.Label))
		sb.WriteString("\n")
	}

	maxName, maxDur := 0, 0
	for _, r := range tt.Results {
		maxName = max(maxName, runewidth.StringWidth(r.Name))
		maxDur = max(maxDur, runewidth.StringWidth(r.Duration))
	}
	maxName = min(maxName, 60)

	for _, r := range tt.Results {
		sb.WriteString("  ")
		icon, style := t.theme.Cell(r.Status)
		sb.WriteString(style.Render(icon + " "))
		sb.WriteString(padRight(truncate(r.Name, maxName), maxName))

		if r.Duration != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Muted.Render(padLeft(r.Duration, maxDur)))
		}

		if r.Details != "" {
			for _, line := range strings.Split(r.Details, "\n") {
				sb.WriteString("\n    ")
				sb.WriteString(t.theme.Muted.Render(line))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderSparkline(s *pattern.Sparkline) string {
	if len(s.Values) == 0 {
		return ""
	}
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Heading.Render(s.Label + ": "))
	}

	minVal, maxVal := s.Values[0], s.Values[0]
	for _, v := range s.Values {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	valueRange := maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	var spark strings.Builder
	for _, v := range s.Values {
		idx := int((v - minVal) / valueRange * 7)
		idx = max(0, min(idx, 7))
		spark.WriteRune(blocks[idx])
	}
	sb.WriteString(t.theme.Pass.Render(spark.String()))

	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf(" max %.1f%s", maxVal, s.Unit)))
	sb.WriteString("\n")
	return sb.String()
}

// iconStyle maps a summary metric kind to an icon and style.
func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.Cells.Pass, t.theme.Pass
	case "error":
		return t.theme.Cells.Raised, t.theme.Raised
	case "warning":
		return t.theme.Cells.Info, t.theme.Notice
	default:
		return t.theme.Cells.Info, t.theme.Heading
	}
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
