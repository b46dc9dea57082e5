package dailystat

import (
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/roster"
)

// HittingLine holds the counting stats a hitter accumulates in one day.
type HittingLine struct {
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
}

func (l *HittingLine) Add(other HittingLine) {
	l.AtBats += other.AtBats
	l.Hits += other.Hits
	l.Runs += other.Runs
	l.Singles += other.Singles
	l.Doubles += other.Doubles
	l.Triples += other.Triples
	l.HomeRuns += other.HomeRuns
	l.RBI += other.RBI
	l.Walks += other.Walks
	l.StolenBases += other.StolenBases
	l.CaughtStealing += other.CaughtStealing
}

// PitchingLine holds one day of pitching-staff counters.
type PitchingLine struct {
	Wins               int
	InningsPitchedOuts int
	EarnedRuns         int
	HitsAllowed        int
	WalksAllowed       int
	HitsPlusWalks      int
	Strikeouts         int
}

func (l *PitchingLine) Add(other PitchingLine) {
	l.Wins += other.Wins
	l.InningsPitchedOuts += other.InningsPitchedOuts
	l.EarnedRuns += other.EarnedRuns
	l.HitsAllowed += other.HitsAllowed
	l.WalksAllowed += other.WalksAllowed
	l.HitsPlusWalks += other.HitsPlusWalks
	l.Strikeouts += other.Strikeouts
}

// PlayerDay is one player-slot's stat line for one date, unique on
// (StatDate, ExternalPlayerID, FantasyTeamID). Dates are "YYYY-MM-DD".
// Active gates inclusion in the team's daily aggregate.
type PlayerDay struct {
	ID               int64
	StatDate         string
	ExternalPlayerID string
	MLBTeamAbbrev    string
	FantasyTeamID    int64
	SeasonID         int64
	PeriodNumber     string
	PositionPlayed   string
	Active           bool
	Hitting          HittingLine
	Pitching         PitchingLine
	FantasyPoints    float64
}

func (d PlayerDay) IsTeamPitching() bool {
	return d.PositionPlayed == roster.PositionTeamPitching
}

// TeamPitchingExternalID builds the synthetic external id used for a
// team-pitching staff row, which has no individual player id.
func TeamPitchingExternalID(fantasyTeamID int64) string {
	return fmt.Sprintf("%s_%d", roster.PositionTeamPitching, fantasyTeamID)
}

// TeamDay is the derived per-team daily aggregate, unique on
// (StatDate, FantasyTeamID). Never edited directly: always recomputed
// from the active PlayerDay rows of that date.
type TeamDay struct {
	ID             int64
	StatDate       string
	FantasyTeamID  int64
	SeasonID       int64
	PeriodNumber   string
	Hitting        HittingLine
	Pitching       PitchingLine
	HittingPoints  float64
	PitchingPoints float64
	TotalPoints    float64
}

// MatchupDay is the derived per-date score of one scheduled matchup,
// unique on (StatDate, AwayTeamID, HomeTeamID).
type MatchupDay struct {
	ID                int64
	StatDate          string
	SeasonID          int64
	PeriodNumber      string
	ExternalMatchupID string
	AwayTeamID        int64
	HomeTeamID        int64
	AwayPoints        float64
	HomePoints        float64
}
