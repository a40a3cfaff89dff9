package services

import (
	"context"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"
)

// Cache keys for the wholesale order-store resources.
const (
	keyStockEntries = "store:stock-entries"
	keyReservations = "store:reservations"
)

// EntrySource lists every dated stock entry. Both the order store and the
// entries sheet satisfy it.
type EntrySource interface {
	ListStockEntries(ctx context.Context) ([]models.StockEntry, error)
}

// ReservationSource lists confirmed reservations from the order store.
type ReservationSource interface {
	ListConfirmedReservations(ctx context.Context) ([]models.Reservation, error)
}

// Gateway owns the cached read path into the stock data and computes
// availability from it. One gateway is shared by all callers; everything
// behind it is safe for concurrent use.
type Gateway struct {
	entries      EntrySource
	reservations ReservationSource
	cache        *TTLCache
	ttl          time.Duration
	baseline     int
	loc          *time.Location
	obs          Observer

	now func() time.Time
}

func NewGateway(entries EntrySource, reservations ReservationSource, cache *TTLCache, ttl time.Duration, baseline int, loc *time.Location, obs Observer) *Gateway {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Gateway{
		entries:      entries,
		reservations: reservations,
		cache:        cache,
		ttl:          ttl,
		baseline:     baseline,
		loc:          loc,
		obs:          obs,
		now:          time.Now,
	}
}

// Location returns the timezone all calendar arithmetic runs in.
func (g *Gateway) Location() *time.Location { return g.loc }

// Today returns the current calendar day in the store timezone.
func (g *Gateway) Today() time.Time { return dayOf(g.now(), g.loc) }

// Now returns the current instant in the store timezone.
func (g *Gateway) Now() time.Time { return g.now().In(g.loc) }

func (g *Gateway) stockEntries(ctx context.Context) ([]models.StockEntry, error) {
	value, err := g.cache.GetOrFetch(ctx, keyStockEntries, g.ttl, func(fetchCtx context.Context) (interface{}, error) {
		return g.entries.ListStockEntries(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.StockEntry), nil
}

func (g *Gateway) confirmedReservations(ctx context.Context) ([]models.Reservation, error) {
	value, err := g.cache.GetOrFetch(ctx, keyReservations, g.ttl, func(fetchCtx context.Context) (interface{}, error) {
		return g.reservations.ListConfirmedReservations(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.Reservation), nil
}

// Available computes how many units of sku can be promised for delivery on
// asOf: baseline, plus entries dated on or before asOf, minus confirmed
// reservations dated on or before asOf, clamped at zero.
//
// A data-source failure propagates; it must never read as zero stock.
func (g *Gateway) Available(ctx context.Context, sku string, asOf time.Time) (models.AvailabilitySnapshot, error) {
	target := dayOf(asOf, g.loc)

	entries, err := g.stockEntries(ctx)
	if err != nil {
		return models.AvailabilitySnapshot{}, err
	}
	reservations, err := g.confirmedReservations(ctx)
	if err != nil {
		return models.AvailabilitySnapshot{}, err
	}

	incoming := 0
	for _, e := range entries {
		if e.SKU != sku || e.Quantity <= 0 {
			continue
		}
		if !dayOf(e.Date, g.loc).After(target) {
			incoming += e.Quantity
		}
	}

	reserved := 0
	for _, r := range reservations {
		if r.SKU != sku || r.Quantity <= 0 {
			continue
		}
		if r.Status != models.ReservationConfirmed {
			continue
		}
		if !dayOf(r.DeliveryDate, g.loc).After(target) {
			reserved += r.Quantity
		}
	}

	available := g.baseline + incoming - reserved
	if available < 0 {
		available = 0
	}

	snapshot := models.AvailabilitySnapshot{
		SKU:       sku,
		AsOfDate:  target,
		Baseline:  g.baseline,
		Incoming:  incoming,
		Reserved:  reserved,
		Available: available,
	}
	g.obs.AvailabilityComputed(snapshot)
	return snapshot, nil
}

// WeeklySchedule returns availability for each of the next days calendar
// days, today included.
func (g *Gateway) WeeklySchedule(ctx context.Context, sku string, days int) ([]models.DayAvailability, error) {
	if days <= 0 {
		days = 7
	}

	today := g.Today()
	schedule := make([]models.DayAvailability, 0, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)
		snapshot, err := g.Available(ctx, sku, date)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, models.DayAvailability{Date: date, Available: snapshot.Available})
	}
	return schedule, nil
}

// dayOf truncates t to its calendar day in loc. All date comparisons go
// through here so a single timezone decides day boundaries.
func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
