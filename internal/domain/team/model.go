package team

// Team is one fantasy franchise within a season, unique on
// (ExternalTeamID, SeasonID). ManagerID is assigned manually and must
// survive scrape upserts untouched.
type Team struct {
	ID             int64
	SeasonID       int64
	ExternalTeamID string
	Name           string
	IconURL        string
	ManagerID      *int64
}
