package models

import (
	"github.com/shopspring/decimal"
)

// UnitType is how a product is sold: whole units, boxes or loose weight.
type UnitType string

const (
	UnitTypeUnit     UnitType = "UNIT"
	UnitTypeBox      UnitType = "BOX"
	UnitTypeKilogram UnitType = "KILOGRAM"
)

// ParseUnitType maps the feed's sale-type cell (UND/CX/KG) to a UnitType.
func ParseUnitType(raw string) UnitType {
	switch raw {
	case "CX":
		return UnitTypeBox
	case "KG":
		return UnitTypeKilogram
	default:
		return UnitTypeUnit
	}
}

// Product is one catalog row, refreshed wholesale on every feed fetch cycle.
type Product struct {
	SKU                string                     `json:"sku"`
	Description        string                     `json:"description"`
	DescriptionExtra   string                     `json:"description_extra,omitempty"`
	UnitType           UnitType                   `json:"unit_type"`
	AverageWeightKg    decimal.Decimal            `json:"average_weight_kg"`
	Prices             map[string]decimal.Decimal `json:"prices"`
	ImageURL           string                     `json:"image_url,omitempty"`
	IsBrandImage       bool                       `json:"is_brand_image"`
	Visible            bool                       `json:"visible"`
}
