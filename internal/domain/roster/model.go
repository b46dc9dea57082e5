package roster

// PositionTeamPitching marks a roster slot holding an MLB team's whole
// pitching staff instead of an individual player.
const PositionTeamPitching = "TmP"

// Entry is one roster slot for a team and scoring period, unique on
// (SeasonID, TeamID, PeriodNumber, PositionCode, RosterSlot). RosterSlot
// disambiguates multiple entries at the same position; the scraper is
// responsible for keeping it stable across runs.
type Entry struct {
	ID                   int64
	SeasonID             int64
	TeamID               int64
	PeriodNumber         string
	PlayerID             *int64
	PositionCode         string
	RosterSlot           int
	IsActive             bool
	PlayerNameRaw        string
	PlayerNameNormalized string
	MLBTeamAbbrev        string
	BatSide              string
	ExternalPlayerID     string
	PitchingStaffID      *int64
}

func (e Entry) IsTeamPitching() bool {
	return e.PositionCode == PositionTeamPitching
}
