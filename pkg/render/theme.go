package render

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Trial statuses as they appear in grid cells and test tables.
const (
	StatusPass  = "pass"
	StatusFail  = "fail"
	StatusError = "error"
)

// Theme styles a TCK report. A trial either passes, returns something that
// is not an instance of the candidate (wrong type), or raises.
type Theme struct {
	Name      string
	Heading   lipgloss.Style // instantiator columns, candidate names in rankings
	Pass      lipgloss.Style
	WrongType lipgloss.Style
	Raised    lipgloss.Style
	Notice    lipgloss.Style // run-level warnings such as an empty matrix
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Cells     CellIcons
}

// CellIcons are the one-glyph markers used in the matrix.
type CellIcons struct {
	Pass      string
	WrongType string
	Raised    string
	NotRun    string // cell with no trial, e.g. after cancellation
	Info      string
}

// Cell returns the icon and style for a trial status.
func (t Theme) Cell(status string) (string, lipgloss.Style) {
	switch status {
	case StatusPass:
		return t.Cells.Pass, t.Pass
	case StatusFail:
		return t.Cells.WrongType, t.WrongType
	case StatusError:
		return t.Cells.Raised, t.Raised
	case "":
		return t.Cells.NotRun, t.Muted
	default:
		return t.Cells.Info, t.Muted
	}
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"orca":    OrcaTheme,
	"mono":    MonoTheme,
}

// DefaultTheme marks wrong-type cells amber and raised cells red.
func DefaultTheme() Theme {
	return Theme{
		Name:      "default",
		Heading:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Pass:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		WrongType: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Raised:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Bold:      lipgloss.NewStyle().Bold(true),
		Cells: CellIcons{
			Pass:      "✓",
			WrongType: "≠",
			Raised:    "⚡",
			NotRun:    "·",
			Info:      "●",
		},
	}
}

// OrcaTheme is a low-contrast palette for long matrices.
func OrcaTheme() Theme {
	return Theme{
		Name:      "orca",
		Heading:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Pass:      lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		WrongType: lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Raised:    lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Bold:      lipgloss.NewStyle().Bold(true),
		Cells: CellIcons{
			Pass:      "✓",
			WrongType: "≠",
			Raised:    "!",
			NotRun:    "·",
			Info:      "·",
		},
	}
}

// MonoTheme is plain ASCII, used for NO_COLOR and piped output.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:      "mono",
		Heading:   plain,
		Pass:      plain,
		WrongType: plain,
		Raised:    plain,
		Notice:    plain,
		Muted:     plain,
		Bold:      plain.Bold(true),
		Cells: CellIcons{
			Pass:      "+",
			WrongType: "?",
			Raised:    "X",
			NotRun:    "-",
			Info:      "*",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	if fn, ok := themes[name]; ok {
		return fn()
	}
	return DefaultTheme()
}

// ThemeNames lists the known theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
