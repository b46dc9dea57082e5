package rawdata

// Payload archives one raw scrape result as JSON so a bad mapping can be
// replayed without re-scraping. Unique on (Source, EntityType, EntityKey).
type Payload struct {
	ID          int64
	Source      string
	EntityType  string
	EntityKey   string
	SeasonID    *int64
	PayloadJSON string
	PayloadHash string
}
