package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `SKU,PESO,TAB0,TAB5,TAB4,TAB1,TAB3,IMG A,IMG B,IMG C,IMG MARCA,DESC,DESC COMP,TIPO,DESC E,VISIVEL
400123,"1,850","45,90","44,00","43,50","42,00","41,00",https://example.com/p.jpg,,,,Picanha Bovina,Peça inteira,UND,,TRUE
410200,"0","30,00","29,00","28,00","27,00","26,00",,,,,Costela Suína,,,,VERDADEIRO
399999,"1,0","10,00","10,00","10,00","10,00","10,00",,,,,Fora do catalogo,,UND,,TRUE
,"1,0","10,00","10,00","10,00","10,00","10,00",,,,,Sem codigo,,UND,,TRUE
400456,"2,5","#N/A","20,00","19,00","18,00","17,00",,,,,Alcatra,#REF!,KG,,FALSE
`

const entriesCSV = `DATA,CODIGO,QTD,OBS
02/01/2025,400123,50,primeira carga
2025-01-05,400123,30,
10/01/2025,,15,sem codigo
invalida,400123,20,
15/01/2025,410200,"1.200",grande
`

const routesCSV = `ROTA,MUNICIPIO,DIAS,CORTE,CODIGO
Rota Norte,Santa Rosa,"terças e quintas",17:00,SR01
Rota Norte,Três de Maio,"segundas, quartas e sextas",16:30h,TM02
Rota Sul,,"terças",17:00,XX
Rota Sul,Santa Rosa,"terças e quintas",17:00,SR01
Rota Leste,Horizontina,"sob consulta",sem corte,HZ03
`

func newTestFeed(t *testing.T, server *httptest.Server) *SheetFeed {
	t.Helper()
	fetcher := newTestFetcher(2)
	cache := NewTTLCache(nil)
	return NewSheetFeed(fetcher, cache, server.URL, "sheet-id", time.Minute, testLocation(t), nil)
}

func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("sheet") {
		case sheetCatalog:
			w.Write([]byte(catalogCSV))
		case sheetEntries:
			w.Write([]byte(entriesCSV))
		case sheetRoutes:
			w.Write([]byte(routesCSV))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFeedProducts(t *testing.T) {
	server := sheetServer(t)
	defer server.Close()
	feed := newTestFeed(t, server)

	products, err := feed.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3, "legacy and codeless rows are dropped")

	picanha := products[0]
	assert.Equal(t, "400123", picanha.SKU)
	assert.Equal(t, "Picanha Bovina", picanha.Description)
	assert.Equal(t, "Peça inteira", picanha.DescriptionExtra)
	assert.Equal(t, models.UnitTypeUnit, picanha.UnitType)
	assert.True(t, picanha.AverageWeightKg.Equal(dec("1.85")))
	assert.True(t, picanha.Prices["TAB0"].Equal(dec("45.9")))
	assert.True(t, picanha.Prices["TAB3"].Equal(dec("41")))
	assert.Equal(t, "https://example.com/p.jpg", picanha.ImageURL)
	assert.True(t, picanha.Visible)

	costela := products[1]
	assert.Equal(t, "410200", costela.SKU)
	assert.Equal(t, models.UnitTypeBox, costela.UnitType, "blank unit cell defaults by sku range")
	assert.True(t, costela.Visible)

	alcatra := products[2]
	assert.Equal(t, "400456", alcatra.SKU)
	assert.Equal(t, models.UnitTypeKilogram, alcatra.UnitType)
	assert.True(t, alcatra.Prices["TAB0"].IsZero(), "#N/A price reads as zero")
	assert.Equal(t, "", alcatra.DescriptionExtra, "#REF! collapses to empty")
	assert.False(t, alcatra.Visible)
}

func TestFeedStockEntries(t *testing.T) {
	server := sheetServer(t)
	defer server.Close()
	feed := newTestFeed(t, server)

	entries, err := feed.StockEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3, "rows without sku or parsable date are dropped")

	assert.Equal(t, "400123", entries[0].SKU)
	assert.Equal(t, "2025-01-02", entries[0].Date.Format(models.DateOnly))
	assert.Equal(t, 50, entries[0].Quantity)

	assert.Equal(t, "2025-01-05", entries[1].Date.Format(models.DateOnly), "ISO dates accepted")
	assert.Equal(t, 30, entries[1].Quantity)

	assert.Equal(t, "410200", entries[2].SKU)
	assert.Equal(t, 1200, entries[2].Quantity, "grouped quantity normalized")
}

func TestFeedRoutes(t *testing.T) {
	server := sheetServer(t)
	defer server.Close()
	feed := newTestFeed(t, server)

	routes, err := feed.Routes(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 4, "rows without a city are dropped")

	santaRosa := routes[0]
	assert.Equal(t, "Santa Rosa", santaRosa.City)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, santaRosa.Weekdays)
	assert.Equal(t, models.CutoffTime{Hour: 17, Minute: 0}, santaRosa.Cutoff)

	tresDeMaio := routes[1]
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, tresDeMaio.Weekdays)
	assert.Equal(t, models.CutoffTime{Hour: 16, Minute: 30}, tresDeMaio.Cutoff)

	horizontina := routes[3]
	assert.Empty(t, horizontina.Weekdays, "unrecognized day text yields no weekdays")
	assert.Equal(t, DefaultCutoff, horizontina.Cutoff, "malformed cutoff falls back to 17:00")
}

func TestFeedCities(t *testing.T) {
	server := sheetServer(t)
	defer server.Close()
	feed := newTestFeed(t, server)

	cities, err := feed.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Horizontina", "Santa Rosa", "Três de Maio"}, cities, "deduplicated and sorted")
}

func TestFeedFetchesSheetOnce(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(entriesCSV))
	}))
	defer server.Close()
	feed := newTestFeed(t, server)

	for i := 0; i < 4; i++ {
		_, err := feed.StockEntries(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, hits, "the sheet is fetched wholesale once per TTL window")
}

func TestFeedSurfacesDataUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	feed := newTestFeed(t, server)

	_, err := feed.StockEntries(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
