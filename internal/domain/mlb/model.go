package mlb

// Game is an official MLB game keyed by the league's gamePk.
type Game struct {
	ID        int64
	GamePk    int64
	GameDate  string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Status    string
}

// BatterGameStat is one batter's official line for one game, unique on
// (GamePk, PlayerID, TeamID). Independent of fantasy entities.
type BatterGameStat struct {
	ID             int64
	GamePk         int64
	PlayerID       int64
	TeamID         int64
	PlayerName     string
	AtBats         int
	Hits           int
	Runs           int
	Doubles        int
	Triples        int
	HomeRuns       int
	RBI            int
	Walks          int
	StolenBases    int
	CaughtStealing int
}
