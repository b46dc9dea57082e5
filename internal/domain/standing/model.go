package standing

// Standing is a team's league-table row, unique on (SeasonID, TeamID)
// and replaced wholesale on every scrape.
type Standing struct {
	ID             int64
	SeasonID       int64
	TeamID         int64
	Rank           int
	Wins           int
	Losses         int
	Ties           int
	WinPercentage  float64
	DivisionRecord string
	GamesBack      string
	WaiverPosition int
	PointsFor      float64
	PointsAgainst  float64
	Streak         string
}
