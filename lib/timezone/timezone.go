package timezone

import "time"

// Location is Japan Standard Time, which has no daylight saving.
var Location = time.FixedZone("JST", 9*60*60)

// Now returns the current time in JST, the timezone of the mileage site.
func Now() time.Time {
	return time.Now().In(Location)
}

// StartOfDay truncates `t` to midnight of its day in JST.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}
