package pattern

// Leaderboard ranks trials, slowest first.
type Leaderboard struct {
	Label      string
	Items      []LeaderboardItem
	TotalCount int // trials considered before cutting to the top N
	ShowRank   bool
}

// LeaderboardItem is one ranked trial.
type LeaderboardItem struct {
	Name   string // "candidate / instantiator"
	Metric string // formatted duration
	Rank   int
	Status string // trial status, selects the icon
}

func (l *Leaderboard) Type() PatternType { return PatternTypeLeaderboard }
