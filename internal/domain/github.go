package domain

// ContributionDay is one cell of the contribution calendar. Level buckets
// the count into 0-4 for rendering.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

type ContributionReport struct {
	TotalContributions int               `json:"totalContributions"`
	Contributions      []ContributionDay `json:"contributions"`
	CurrentStreak      int               `json:"currentStreak"`
	LongestStreak      int               `json:"longestStreak"`
}

// ContributionLevel maps a daily count onto the 0-4 intensity scale used
// by the calendar widget.
func ContributionLevel(count int) int {
	switch {
	case count > 15:
		return 4
	case count > 7:
		return 3
	case count > 3:
		return 2
	case count > 0:
		return 1
	default:
		return 0
	}
}
