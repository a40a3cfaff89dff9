package services

import (
	"strconv"

	"github.com/cassiozaleski/sercarne-V8.0/models"

	"github.com/shopspring/decimal"
)

// BoxWeightKg is the assumed weight of one box for box-sold products.
var BoxWeightKg = decimal.NewFromInt(10)

// defaultUnitType infers the unit type from the SKU range when the item
// carries none, mirroring how the catalog assigns codes.
func defaultUnitType(sku string) models.UnitType {
	if n, err := strconv.Atoi(sku); err == nil && n >= boxSKUFloor {
		return models.UnitTypeBox
	}
	return models.UnitTypeUnit
}

// CalculateItemMetrics estimates one line's weight and value.
//
// BOX lines weigh BoxWeightKg per box, KILOGRAM lines weigh their quantity,
// UNIT lines weigh quantity times the product's average unit weight. Value is
// always weight times price per kg.
func CalculateItemMetrics(item models.MetricsItem) models.ItemMetrics {
	if item.UnitType == "" {
		item.UnitType = defaultUnitType(item.SKU)
	}

	qty := item.Quantity
	if qty < 0 {
		qty = 0
	}
	quantity := decimal.NewFromInt(int64(qty))

	var weight decimal.Decimal
	switch item.UnitType {
	case models.UnitTypeBox:
		weight = quantity.Mul(BoxWeightKg)
	case models.UnitTypeKilogram:
		weight = quantity
	default:
		weight = quantity.Mul(item.AverageWeightKg)
	}

	price := item.PricePerKg
	if price.IsNegative() {
		price = decimal.Zero
	}

	return models.ItemMetrics{
		MetricsItem:       item,
		EstimatedWeightKg: weight,
		EstimatedValue:    weight.Mul(price),
	}
}

// CalculateOrderMetrics totals the estimated weight and value of an order.
func CalculateOrderMetrics(items []models.MetricsItem) models.OrderMetrics {
	metrics := models.OrderMetrics{
		TotalWeightKg: decimal.Zero,
		TotalValue:    decimal.Zero,
		Items:         make([]models.ItemMetrics, 0, len(items)),
	}

	for _, item := range items {
		m := CalculateItemMetrics(item)
		metrics.TotalWeightKg = metrics.TotalWeightKg.Add(m.EstimatedWeightKg)
		metrics.TotalValue = metrics.TotalValue.Add(m.EstimatedValue)
		metrics.Items = append(metrics.Items, m)
	}
	return metrics
}
