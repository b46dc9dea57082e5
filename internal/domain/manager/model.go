package manager

// Manager is a human league member. Assignment to teams happens out of
// band; scrape upserts never touch it.
type Manager struct {
	ID              int64
	Name            string
	ActiveFromYear  int
	ActiveUntilYear *int
}
