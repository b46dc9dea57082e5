package mlbstats

// Wire shapes for the two endpoints the pipeline reads. Only the fields
// the mapping needs are declared; the API returns far more.

type scheduleEnvelope struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk       int64              `json:"gamePk"`
	OfficialDate string             `json:"officialDate"`
	Status       scheduleGameStatus `json:"status"`
	Teams        scheduleGameTeams  `json:"teams"`
}

type scheduleGameStatus struct {
	DetailedState string `json:"detailedState"`
}

type scheduleGameTeams struct {
	Away scheduleGameSide `json:"away"`
	Home scheduleGameSide `json:"home"`
}

type scheduleGameSide struct {
	Score int           `json:"score"`
	Team  teamReference `json:"team"`
}

type teamReference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type boxscoreEnvelope struct {
	Teams boxscoreTeams `json:"teams"`
}

type boxscoreTeams struct {
	Away boxscoreTeam `json:"away"`
	Home boxscoreTeam `json:"home"`
}

type boxscoreTeam struct {
	Team    teamReference             `json:"team"`
	Players map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person boxscorePerson `json:"person"`
	Stats  boxscoreStats  `json:"stats"`
}

type boxscorePerson struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type boxscoreStats struct {
	Batting battingLine `json:"batting"`
}

type battingLine struct {
	AtBats         int `json:"atBats"`
	Hits           int `json:"hits"`
	Runs           int `json:"runs"`
	Doubles        int `json:"doubles"`
	Triples        int `json:"triples"`
	HomeRuns       int `json:"homeRuns"`
	RBI            int `json:"rbi"`
	BaseOnBalls    int `json:"baseOnBalls"`
	StolenBases    int `json:"stolenBases"`
	CaughtStealing int `json:"caughtStealing"`
}
