package matchup

const (
	PeriodTypeRegularSeason = "REGULAR_SEASON"
	PeriodTypePlayoff       = "PLAYOFF"
	PeriodTypeChampionship  = "CHAMPIONSHIP"
)

// Matchup is one scheduled head-to-head pairing for a scoring period.
// Identity is directed: (SeasonID, PeriodNumber, AwayTeamID, HomeTeamID)
// with away/home order part of the key.
type Matchup struct {
	ID                int64
	SeasonID          int64
	PeriodNumber      string
	PeriodType        string
	DateRange         string
	AwayTeamID        int64
	HomeTeamID        int64
	ExternalMatchupID string
}

func NormalizePeriodType(value string) string {
	switch value {
	case PeriodTypePlayoff, PeriodTypeChampionship:
		return value
	default:
		return PeriodTypeRegularSeason
	}
}
