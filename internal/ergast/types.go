package ergast

// response is the envelope every Ergast-compatible endpoint returns.
type response struct {
	MRData struct {
		Series         string         `json:"series"`
		Total          string         `json:"total"`
		StandingsTable standingsTable `json:"StandingsTable"`
	} `json:"MRData"`
}

type standingsTable struct {
	Season         string          `json:"season"`
	Round          string          `json:"round"`
	StandingsLists []standingsList `json:"StandingsLists"`
}

type standingsList struct {
	Season               string                `json:"season"`
	Round                string                `json:"round"`
	DriverStandings      []driverStandingItem  `json:"DriverStandings"`
	ConstructorStandings []constructorStanding `json:"ConstructorStandings"`
}

type driverStandingItem struct {
	Position     string        `json:"position"`
	PositionText string        `json:"positionText"`
	Points       string        `json:"points"`
	Wins         string        `json:"wins"`
	Driver       driver        `json:"Driver"`
	Constructors []constructor `json:"Constructors"`
}

type constructorStanding struct {
	Position     string      `json:"position"`
	PositionText string      `json:"positionText"`
	Points       string      `json:"points"`
	Wins         string      `json:"wins"`
	Constructor  constructor `json:"Constructor"`
}

type driver struct {
	DriverID    string `json:"driverId"`
	Code        string `json:"code"`
	GivenName   string `json:"givenName"`
	FamilyName  string `json:"familyName"`
	Nationality string `json:"nationality"`
}

type constructor struct {
	ConstructorID string `json:"constructorId"`
	Name          string `json:"name"`
	Nationality   string `json:"nationality"`
}
