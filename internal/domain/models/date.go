package models

import "time"

// DateLayout is the wire format of every date column.
const DateLayout = "2006-01-02"

// CivilDate drops the clock part of t, keeping the calendar day as seen in
// t's own location. The result is midnight UTC so dates compare directly.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
