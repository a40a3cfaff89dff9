package services

import (
	"strings"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"
	"github.com/cassiozaleski/sercarne-V8.0/utils"
)

// LegalDeliveryDates returns, in ascending order, the calendar dates within
// horizonDays of now that the route can deliver on. The current day is
// excluded once now reaches the route's cutoff; future days need no cutoff
// check since the order lands before they start. A route with no recognized
// weekdays yields an empty slice.
func LegalDeliveryDates(route models.Route, now time.Time, horizonDays int) []time.Time {
	loc := now.Location()
	today := dayOf(now, loc)

	cutoff := time.Date(today.Year(), today.Month(), today.Day(),
		route.Cutoff.Hour, route.Cutoff.Minute, 0, 0, loc)

	var dates []time.Time
	for offset := 0; offset <= horizonDays; offset++ {
		date := today.AddDate(0, 0, offset)
		if !route.AllowsWeekday(date.Weekday()) {
			continue
		}
		if offset == 0 && !now.Before(cutoff) {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

// FindRouteForCity resolves a route by city name, accent- and
// case-insensitively. An exact match wins; a prefix match covers feed rows
// with trailing qualifiers ("SAO MARTINHO " vs "SAO MARTINHO").
func FindRouteForCity(city string, routes []models.Route) (models.Route, bool) {
	target := utils.Normalize(city)
	if target == "" {
		return models.Route{}, false
	}

	for _, r := range routes {
		if utils.Normalize(r.City) == target {
			return r, true
		}
	}
	for _, r := range routes {
		routeCity := utils.Normalize(r.City)
		if strings.HasPrefix(routeCity, target) || strings.HasPrefix(target, routeCity) {
			return r, true
		}
	}
	return models.Route{}, false
}
