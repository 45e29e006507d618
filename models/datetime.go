package models

import "fmt"

// DateTime is a wall-clock timestamp assembled from user-supplied fields.
// It deliberately carries no timezone and is never normalized: day=31,
// month=2 is representable and kept as-is, leaving calendar validity to
// whoever consumes the value (the calendar provider rejects impossible
// dates). The conversation layer only needs ordering and formatting.
type DateTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ISO8601 renders the timestamp as a naive ISO-8601 string, the form the
// calendar API expects when a separate timeZone field is supplied.
func (d DateTime) ISO8601() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}

// After reports whether d is strictly later than other, comparing field by
// field so unnormalized dates still order consistently.
func (d DateTime) After(other DateTime) bool {
	a := [5]int{d.Year, d.Month, d.Day, d.Hour, d.Minute}
	b := [5]int{other.Year, other.Month, other.Day, other.Hour, other.Minute}
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
