package models

import "github.com/shopspring/decimal"

// MetricsItem is one cart/order line as submitted for metrics computation.
type MetricsItem struct {
	SKU             string          `json:"sku" binding:"required"`
	Name            string          `json:"name"`
	UnitType        UnitType        `json:"unit_type"`
	Quantity        int             `json:"quantity" binding:"required,min=1"`
	PricePerKg      decimal.Decimal `json:"price_per_kg"`
	AverageWeightKg decimal.Decimal `json:"average_weight_kg"`
}

// ItemMetrics is the computed weight and value of one line.
type ItemMetrics struct {
	MetricsItem
	EstimatedWeightKg decimal.Decimal `json:"estimated_weight_kg"`
	EstimatedValue    decimal.Decimal `json:"estimated_value"`
}

// OrderMetrics totals a whole order.
type OrderMetrics struct {
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Items         []ItemMetrics   `json:"items"`
}
