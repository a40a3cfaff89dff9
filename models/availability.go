package models

import "time"

// AvailabilitySnapshot is the computed availability breakdown for one SKU as
// of a target delivery date. Derived, never stored.
//
// Available = max(0, Baseline + Incoming - Reserved).
type AvailabilitySnapshot struct {
	SKU       string    `json:"sku"`
	AsOfDate  time.Time `json:"as_of_date"`
	Baseline  int       `json:"baseline"`
	Incoming  int       `json:"incoming"`
	Reserved  int       `json:"reserved"`
	Available int       `json:"available"`
}

// DayAvailability is one day of a weekly schedule.
type DayAvailability struct {
	Date      time.Time `json:"date"`
	Available int       `json:"available"`
}
