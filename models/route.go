package models

import (
	"fmt"
	"time"
)

// CutoffTime is a time-of-day deadline, local to the store timezone.
type CutoffTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (c CutoffTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Route describes delivery logistics for one city: which weekdays trucks run
// and the order cutoff for same-day eligibility.
type Route struct {
	City        string `json:"city"`
	RouteGroup  string `json:"route_group"`
	CityCode    string `json:"city_code,omitempty"`
	DaysRaw     string `json:"days_raw"`
	CutoffRaw   string `json:"cutoff_raw"`

	Weekdays []time.Weekday `json:"weekdays"`
	Cutoff   CutoffTime     `json:"cutoff"`
}

// AllowsWeekday reports whether the route delivers on the given weekday.
func (r Route) AllowsWeekday(d time.Weekday) bool {
	for _, w := range r.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}
