package pattern

// Sparkline plots one instantiator's trial durations in candidate order.
// The scale runs from the smallest to the largest value.
type Sparkline struct {
	Label  string
	Values []float64
	Unit   string
}

func (s *Sparkline) Type() PatternType { return PatternTypeSparkline }
