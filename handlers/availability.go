package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"
	"github.com/cassiozaleski/sercarne-V8.0/services"

	"github.com/gin-gonic/gin"
)

// dataUnavailable answers 503 with an explicit status so the UI can tell
// "couldn't check" apart from "sold out".
func dataUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "unavailable",
		"error":  "Stock data could not be fetched, try again shortly",
	})
}

// GetAvailability handles GET /api/v1/availability?sku=&date=
func GetAvailability(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku is required"})
		return
	}

	asOf := engine.Today()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation(models.DateOnly, dateStr, engine.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	snapshot, err := engine.Available(c.Request.Context(), sku, asOf)
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sku":        snapshot.SKU,
		"as_of_date": snapshot.AsOfDate.Format(models.DateOnly),
		"baseline":   snapshot.Baseline,
		"incoming":   snapshot.Incoming,
		"reserved":   snapshot.Reserved,
		"available":  snapshot.Available,
	})
}

// GetWeeklySchedule handles GET /api/v1/availability/schedule?sku=&days=
func GetWeeklySchedule(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku is required"})
		return
	}

	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil || n < 1 || n > 60 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 60"})
			return
		}
		days = n
	}

	schedule, err := engine.WeeklySchedule(c.Request.Context(), sku, days)
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute schedule"})
		return
	}

	out := make([]gin.H, 0, len(schedule))
	for _, day := range schedule {
		out = append(out, gin.H{
			"date":      day.Date.Format(models.DateOnly),
			"available": day.Available,
		})
	}
	c.JSON(http.StatusOK, gin.H{"sku": sku, "schedule": out})
}

// SuggestDeliveryDate handles GET /api/v1/availability/suggest?sku=&qty=&city=&from=
func SuggestDeliveryDate(c *gin.Context) {
	sku := c.Query("sku")
	city := c.Query("city")
	if sku == "" || city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku and city are required"})
		return
	}

	qty, err := strconv.Atoi(c.Query("qty"))
	if err != nil || qty < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "qty must be a positive integer"})
		return
	}

	var fromDate time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		fromDate, err = time.ParseInLocation(models.DateOnly, fromStr, engine.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
	}

	routes, err := feed.Routes(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load routes"})
		return
	}

	route, found := services.FindRouteForCity(city, routes)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"status": "no_route", "error": "No route available for city"})
		return
	}

	date, err := engine.SuggestAlternativeDate(c.Request.Context(), sku, route, qty, fromDate, horizonDays)
	if err != nil {
		if errors.Is(err, services.ErrNoDateAvailable) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "not_found",
				"message": "No delivery date within the horizon has sufficient stock",
			})
			return
		}
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search delivery dates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sku":  sku,
		"city": route.City,
		"date": date.Format(models.DateOnly),
	})
}

// GetDeliveryDates handles GET /api/v1/delivery-dates?city=&days=
func GetDeliveryDates(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}

	days := horizonDays
	if daysStr := c.Query("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil || n < 1 || n > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
			return
		}
		days = n
	}

	routes, err := feed.Routes(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load routes"})
		return
	}

	route, found := services.FindRouteForCity(city, routes)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"status": "no_route", "error": "No route available for city"})
		return
	}

	dates := services.LegalDeliveryDates(route, engine.Now(), days)
	if len(dates) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "no_route",
			"error":  "Route has no delivery days within the horizon",
		})
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(models.DateOnly))
	}
	c.JSON(http.StatusOK, gin.H{
		"city":   route.City,
		"cutoff": route.Cutoff.String(),
		"dates":  out,
	})
}

// CalculateOrderMetrics handles POST /api/v1/orders/metrics
func CalculateOrderMetrics(c *gin.Context) {
	var request struct {
		Items []models.MetricsItem `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics := services.CalculateOrderMetrics(request.Items)
	c.JSON(http.StatusOK, gin.H{
		"total_weight_kg": metrics.TotalWeightKg,
		"total_value":     metrics.TotalValue,
		"items":           metrics.Items,
	})
}
