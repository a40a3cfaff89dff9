package database

import (
	"context"
	"fmt"

	"github.com/cassiozaleski/sercarne-V8.0/models"
)

// OrderStore reads reservations and stock entries from the order database.
// The availability engine never writes through it.
type OrderStore struct {
	db *DB
}

func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{db: db}
}

// ListConfirmedReservations returns one reservation per confirmed order line.
// Pending orders are excluded here; they never reduce availability.
func (s *OrderStore) ListConfirmedReservations(ctx context.Context) ([]models.Reservation, error) {
	query := `
		SELECT i.order_id, i.sku, p.delivery_date, i.quantity, p.status
		FROM pedido_items i
		JOIN pedidos p ON p.id = i.order_id
		WHERE p.status = $1
		ORDER BY p.delivery_date ASC`

	rows, err := s.db.QueryContext(ctx, query, models.ReservationConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmed reservations: %w", err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var r models.Reservation
		if err := rows.Scan(&r.OrderID, &r.SKU, &r.DeliveryDate, &r.Quantity, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}

	return reservations, nil
}

// ListStockEntries returns all dated stock entries, oldest first.
func (s *OrderStore) ListStockEntries(ctx context.Context) ([]models.StockEntry, error) {
	query := `
		SELECT sku, entry_date, quantity, COALESCE(note, '')
		FROM entradas_estoque
		ORDER BY entry_date ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock entries: %w", err)
	}
	defer rows.Close()

	var entries []models.StockEntry
	for rows.Next() {
		var e models.StockEntry
		if err := rows.Scan(&e.SKU, &e.Date, &e.Quantity, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan stock entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stock entries: %w", err)
	}

	return entries, nil
}
