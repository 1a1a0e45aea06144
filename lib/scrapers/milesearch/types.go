package milesearch

// Airport is identified by its Code. Area is empty for domestic airports.
type Airport struct {
	Code string `json:"code"`
	Area string `json:"area,omitempty"`
	Name string `json:"name"`
}

// Status is a loyalty-tier membership status.
type Status struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CardType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Fare carries the fare-rule footnote from the fee table in Remark, it is
// empty when the table has no row for the fare.
type Fare struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Remark string `json:"remark,omitempty"`
}

type SeatClass struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// catalog records stand in for their code when building form values.
func (a Airport) String() string   { return a.Code }
func (s Status) String() string    { return s.Code }
func (c CardType) String() string  { return c.Code }
func (f Fare) String() string      { return f.Code }
func (s SeatClass) String() string { return s.Code }

// Bonus is an optional breakdown line, the value and its label are always
// present together.
type Bonus struct {
	Value  int    `json:"value"`
	Remark string `json:"remark"`
}

// Result is the outcome of one mileage search.
type Result struct {
	Miles               int     `json:"miles"`
	FOP                 int     `json:"fop"`
	FlightMiles         int     `json:"flight_miles"`
	FlightMilesRemark   string  `json:"flight_miles_remark"`
	StandardFlightMiles int     `json:"standard_flight_miles"`
	BonusMiles          *Bonus  `json:"bonus_miles,omitempty"`
	FOPRate             float64 `json:"fop_rate"`
	FOPBonus            *Bonus  `json:"fop_bonus,omitempty"`
}
