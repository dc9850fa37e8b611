package pattern

// TestTable represents trial results with status and timing.
type TestTable struct {
	Label   string
	Results []TestTableItem
}

// TestTableItem is a single trial result.
type TestTableItem struct {
	Name     string // candidate description
	Status   string // "pass", "fail", "error"
	Duration string // formatted duration
	Details  string // error message or extra info
}

func (t *TestTable) Type() PatternType { return PatternTypeTestTable }
