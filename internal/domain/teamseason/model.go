package teamseason

// Season-long team aggregates scraped from the platform's stats pages.
// Each is unique on (SeasonID, TeamID) and replaced wholesale on upsert.

type SeasonStat struct {
	ID             int64
	SeasonID       int64
	TeamID         int64
	GamesPlayed    int
	FantasyPoints  float64
	HittingPoints  float64
	PitchingPoints float64
}

type HittingStat struct {
	ID             int64
	SeasonID       int64
	TeamID         int64
	AtBats         int
	Hits           int
	Runs           int
	Singles        int
	Doubles        int
	Triples        int
	HomeRuns       int
	RBI            int
	Walks          int
	StolenBases    int
	CaughtStealing int
	BattingAverage float64
}

type PitchingStat struct {
	ID                 int64
	SeasonID           int64
	TeamID             int64
	Wins               int
	InningsPitchedOuts int
	EarnedRuns         int
	HitsAllowed        int
	WalksAllowed       int
	Strikeouts         int
	ERA                float64
}
