package player

// Player is the canonical identity row a roster entry resolves to.
// ExternalPlayerID is the fantasy platform's id when known; NormalizedName
// backs the name-matching fallback for historical seasons that predate
// stable ids.
type Player struct {
	ID               int64
	ExternalPlayerID string
	FullName         string
	NormalizedName   string
	MLBTeamAbbrev    string
	BatSide          string
}
