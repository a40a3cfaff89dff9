package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation statuses as stored by the order system. Only confirmed
// reservations reduce availability; pending ones are informational.
const (
	ReservationPending   = "PENDENTE"
	ReservationConfirmed = "CONFIRMADO"
)

// Reservation is a dated commitment against stock coming from a placed order.
// The engine only ever reads these.
type Reservation struct {
	OrderID      uuid.UUID `json:"order_id" db:"order_id"`
	SKU          string    `json:"sku" db:"sku"`
	DeliveryDate time.Time `json:"delivery_date" db:"delivery_date"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Status       string    `json:"status" db:"status"`
}

// Order mirrors the columns of the pedidos table that the engine reads.
type Order struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ClientName   string    `json:"client_name" db:"client_name"`
	RouteName    string    `json:"route_name" db:"route_name"`
	DeliveryCity string    `json:"delivery_city" db:"delivery_city"`
	DeliveryDate time.Time `json:"delivery_date" db:"delivery_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (Order) TableName() string {
	return "pedidos"
}

func (Order) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS pedidos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vendor_id TEXT,
		vendor_name TEXT,
		client_id TEXT,
		client_name TEXT,
		client_cnpj TEXT,
		route_id TEXT,
		route_name TEXT,
		delivery_city TEXT,
		delivery_date DATE NOT NULL,
		cutoff TEXT,
		total_value NUMERIC(12,2) DEFAULT 0,
		total_weight NUMERIC(12,3) DEFAULT 0,
		observations TEXT DEFAULT '',
		status TEXT NOT NULL DEFAULT 'PENDENTE',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}

// OrderItem is one line of a pedido.
type OrderItem struct {
	OrderID  uuid.UUID `json:"order_id" db:"order_id"`
	SKU      string    `json:"sku" db:"sku"`
	Quantity int       `json:"quantity" db:"quantity"`
}

func (OrderItem) TableName() string {
	return "pedido_items"
}

func (OrderItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS pedido_items (
		id SERIAL PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES pedidos(id) ON DELETE CASCADE,
		sku TEXT NOT NULL,
		quantity INT NOT NULL DEFAULT 0,
		price_per_kg NUMERIC(12,2) DEFAULT 0,
		average_weight_kg NUMERIC(12,3) DEFAULT 0
	);`
}
