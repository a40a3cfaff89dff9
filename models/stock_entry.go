package models

import "time"

// DateOnly is the canonical calendar-day layout used everywhere in the engine.
const DateOnly = "2006-01-02"

// StockEntry is a dated increment to available stock, e.g. a future delivery
// into the warehouse. Entries accumulate; consumption is computed, never
// written back.
type StockEntry struct {
	SKU      string    `json:"sku" db:"sku"`
	Date     time.Time `json:"date" db:"entry_date"`
	Quantity int       `json:"quantity" db:"quantity"`
	Note     string    `json:"note,omitempty" db:"note"`
}

func (StockEntry) TableName() string {
	return "entradas_estoque"
}

func (StockEntry) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS entradas_estoque (
		id SERIAL PRIMARY KEY,
		sku TEXT NOT NULL,
		entry_date DATE NOT NULL,
		quantity INT NOT NULL DEFAULT 0,
		note TEXT DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
