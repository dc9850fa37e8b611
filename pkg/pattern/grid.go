package pattern

// Grid is a two dimensional status table: one row per candidate, one
// column per instantiator.
type Grid struct {
	Label   string
	Columns []string
	Rows    []GridRow
}

// GridRow is one candidate across all instantiators.
type GridRow struct {
	Name  string
	Cells []string // status per column: "pass", "fail", "error", or "" when not run
}

func (g *Grid) Type() PatternType { return PatternTypeGrid }
