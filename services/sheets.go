package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"
	"github.com/cassiozaleski/sercarne-V8.0/utils"

	"github.com/shopspring/decimal"
)

// Sheet names as published by the pricing spreadsheet.
const (
	sheetCatalog = "2026 Base Catalogo Precifica V2"
	sheetEntries = "ENTRADAS_ESTOQUE"
	sheetRoutes  = "Rotas Dias De Entrega"
)

// Catalog rows with a numeric SKU below this floor are legacy codes outside
// the storefront assortment.
const minCatalogSKU = 400000

// SKUs at or above this code sell by the box when the unit cell is blank.
const boxSKUFloor = 410000

// Catalog sheet column layout (exported range, zero-based).
const (
	colSKU = iota
	colWeight
	colPriceTab0
	colPriceTab5
	colPriceTab4
	colPriceTab1
	colPriceTab3
	colImageA
	colImageB
	colImageC
	colImageBrand
	colDescPrimary
	colDescSecondary
	colUnitType
	colDescFallback
	colVisible
	catalogColumns
)

// Entries sheet column layout.
const (
	entryColDate = iota
	entryColSKU
	entryColQty
	entryColNote
)

// Routes sheet column layout.
const (
	routeColGroup = iota
	routeColCity
	routeColDays
	routeColCutoff
	routeColCityCode
)

// SheetFeed reads the spreadsheet-backed catalog, stock-entry and route feeds.
// Each sheet is fetched wholesale and cached as one unit; concurrent readers
// of the same sheet share a single fetch.
type SheetFeed struct {
	fetcher       *Fetcher
	cache         *TTLCache
	baseURL       string
	spreadsheetID string
	ttl           time.Duration
	loc           *time.Location
	obs           Observer
}

func NewSheetFeed(fetcher *Fetcher, cache *TTLCache, baseURL, spreadsheetID string, ttl time.Duration, loc *time.Location, obs Observer) *SheetFeed {
	if obs == nil {
		obs = NopObserver{}
	}
	return &SheetFeed{
		fetcher:       fetcher,
		cache:         cache,
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		ttl:           ttl,
		loc:           loc,
		obs:           obs,
	}
}

func (f *SheetFeed) csvURL(sheetName string) string {
	return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s",
		f.baseURL, f.spreadsheetID, url.QueryEscape(sheetName))
}

// rows fetches and parses one sheet through the cache. The first row is the
// header and is not included.
func (f *SheetFeed) rows(ctx context.Context, sheetName string) ([][]string, error) {
	value, err := f.cache.GetOrFetch(ctx, "sheet:"+sheetName, f.ttl, func(fetchCtx context.Context) (interface{}, error) {
		raw, err := f.fetcher.Fetch(fetchCtx, f.csvURL(sheetName))
		if err != nil {
			return nil, err
		}

		reader := csv.NewReader(bytes.NewReader(raw))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		records, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv for sheet %q: %w", sheetName, err)
		}
		if len(records) <= 1 {
			return [][]string{}, nil
		}
		return records[1:], nil
	})
	if err != nil {
		return nil, err
	}
	return value.([][]string), nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Products returns the catalog, one product per usable row. Rows without a
// numeric SKU in the storefront range are dropped.
func (f *SheetFeed) Products(ctx context.Context) ([]models.Product, error) {
	rows, err := f.rows(ctx, sheetCatalog)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	for i, row := range rows {
		skuRaw := CleanCell(cell(row, colSKU))
		skuNum, err := strconv.Atoi(skuRaw)
		if err != nil || skuNum < minCatalogSKU {
			f.obs.RowDropped(sheetCatalog, i, "missing or out-of-range sku")
			continue
		}

		desc := CleanCell(cell(row, colDescPrimary))
		descExtra := CleanCell(cell(row, colDescSecondary))
		if desc == "" {
			desc = descExtra
		}
		if desc == "" {
			desc = CleanCell(cell(row, colDescFallback))
		}
		if desc == descExtra {
			descExtra = ""
		}

		img := ""
		isBrandImage := false
		for _, c := range []int{colImageA, colImageB, colImageC} {
			if v := CleanCell(cell(row, c)); v != "" {
				img = v
				break
			}
		}
		if img == "" {
			if v := CleanCell(cell(row, colImageBrand)); v != "" {
				img = v
				isBrandImage = true
			}
		}

		unitRaw := CleanCell(cell(row, colUnitType))
		if unitRaw == "" && skuNum >= boxSKUFloor {
			unitRaw = "CX"
		}

		products = append(products, models.Product{
			SKU:              skuRaw,
			Description:      desc,
			DescriptionExtra: descExtra,
			UnitType:         models.ParseUnitType(unitRaw),
			AverageWeightKg:  ParseNumber(cell(row, colWeight)),
			Prices: map[string]decimal.Decimal{
				"TAB0": ParseNumber(cell(row, colPriceTab0)),
				"TAB1": ParseNumber(cell(row, colPriceTab1)),
				"TAB3": ParseNumber(cell(row, colPriceTab3)),
				"TAB4": ParseNumber(cell(row, colPriceTab4)),
				"TAB5": ParseNumber(cell(row, colPriceTab5)),
			},
			ImageURL:     ProcessImageURL(img),
			IsBrandImage: isBrandImage,
			Visible:      ParseBool(cell(row, colVisible)),
		})
	}
	return products, nil
}

// StockEntries returns the dated stock increments from the entries sheet.
// Rows missing a SKU or a parsable date are dropped, never defaulted.
func (f *SheetFeed) StockEntries(ctx context.Context) ([]models.StockEntry, error) {
	rows, err := f.rows(ctx, sheetEntries)
	if err != nil {
		return nil, err
	}

	var entries []models.StockEntry
	for i, row := range rows {
		sku := CleanCell(cell(row, entryColSKU))
		if sku == "" {
			f.obs.RowDropped(sheetEntries, i, "missing sku")
			continue
		}
		date, ok := ParseDate(cell(row, entryColDate), f.loc)
		if !ok {
			f.obs.RowDropped(sheetEntries, i, "unparsable date")
			continue
		}

		entries = append(entries, models.StockEntry{
			SKU:      sku,
			Date:     date,
			Quantity: ParseQuantity(cell(row, entryColQty)),
			Note:     CleanCell(cell(row, entryColNote)),
		})
	}
	return entries, nil
}

// Routes returns the delivery routes, weekdays and cutoffs parsed.
func (f *SheetFeed) Routes(ctx context.Context) ([]models.Route, error) {
	rows, err := f.rows(ctx, sheetRoutes)
	if err != nil {
		return nil, err
	}

	var routes []models.Route
	for i, row := range rows {
		city := CleanCell(cell(row, routeColCity))
		if city == "" {
			f.obs.RowDropped(sheetRoutes, i, "missing city")
			continue
		}

		daysRaw := CleanCell(cell(row, routeColDays))
		cutoffRaw := CleanCell(cell(row, routeColCutoff))
		routes = append(routes, models.Route{
			City:       city,
			RouteGroup: CleanCell(cell(row, routeColGroup)),
			CityCode:   CleanCell(cell(row, routeColCityCode)),
			DaysRaw:    daysRaw,
			CutoffRaw:  cutoffRaw,
			Weekdays:   ParseWeekdays(daysRaw),
			Cutoff:     ParseCutoff(cutoffRaw),
		})
	}
	return routes, nil
}

// Cities derives the serviced city list from the routes, deduplicated and
// sorted.
func (f *SheetFeed) Cities(ctx context.Context) ([]string, error) {
	routes, err := f.Routes(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var cities []string
	for _, r := range routes {
		key := utils.Normalize(r.City)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		cities = append(cities, r.City)
	}
	sort.Strings(cities)
	return cities, nil
}
