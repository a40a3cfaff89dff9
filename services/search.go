package services

import (
	"context"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"
)

// FindEarliestSufficientDate scans the route's legal delivery dates in order
// and returns the first one where requestedQty units of sku are available.
// It short-circuits on the first hit; every probed date costs one aggregation
// pass, so scanning past the answer only multiplies feed pressure.
//
// Returns ErrNoDateAvailable when no date within the horizon qualifies.
func (g *Gateway) FindEarliestSufficientDate(ctx context.Context, sku string, route models.Route, requestedQty int, now time.Time, horizonDays int) (time.Time, error) {
	for _, date := range LegalDeliveryDates(route, now, horizonDays) {
		snapshot, err := g.Available(ctx, sku, date)
		if err != nil {
			return time.Time{}, err
		}
		if snapshot.Available >= requestedQty {
			return date, nil
		}
	}
	return time.Time{}, ErrNoDateAvailable
}

// SuggestAlternativeDate is the storefront-facing variant: search from
// fromDate (or now when zero) within horizonDays.
func (g *Gateway) SuggestAlternativeDate(ctx context.Context, sku string, route models.Route, requestedQty int, fromDate time.Time, horizonDays int) (time.Time, error) {
	now := g.Now()
	if !fromDate.IsZero() {
		from := dayOf(fromDate, g.loc)
		if from.After(dayOf(now, g.loc)) {
			// Searching from a future day: cutoff only ever bites on the
			// current day, so anchor at that day's start.
			now = from
		}
	}
	return g.FindEarliestSufficientDate(ctx, sku, route, requestedQty, now, horizonDays)
}
