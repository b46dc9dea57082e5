package season

// Season is one fantasy league year. ExternalLeagueID is the platform's
// league identifier and never changes once discovered; DisplayName may be
// refreshed by later scrapes.
type Season struct {
	ID               int64
	Year             string
	ExternalLeagueID string
	DisplayName      string
}
