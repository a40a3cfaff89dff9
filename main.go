package main

import (
	"log"
	"net/http"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/config"
	"github.com/cassiozaleski/sercarne-V8.0/database"
	"github.com/cassiozaleski/sercarne-V8.0/handlers"
	"github.com/cassiozaleski/sercarne-V8.0/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	cfg := config.AppConfig

	// Connect to the order database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	loc, err := time.LoadLocation(cfg.StoreTimezone)
	if err != nil {
		log.Fatal("Failed to load store timezone:", err)
	}

	// Wire the availability engine
	obs := services.LogObserver{}
	fetcher := services.NewFetcher(cfg.FetchTimeout, cfg.FetchMaxRetries, cfg.FetchBaseDelay, obs)
	cache := services.NewTTLCache(obs)
	feed := services.NewSheetFeed(fetcher, cache, cfg.SheetsBaseURL, cfg.SpreadsheetID, cfg.CacheTTL, loc, obs)
	store := database.NewOrderStore(db)
	engine := services.NewGateway(store, store, cache, cfg.CacheTTL, cfg.BaselineStock, loc, obs)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// Add CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure this properly for production
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Sercarne availability server is running",
		})
	})

	// Initialize handlers
	handlers.InitializeHandlers(engine, feed, cfg.DeliveryHorizonDays)

	// API routes
	api := router.Group("/api/v1")
	{
		// Availability engine
		api.GET("/availability", handlers.GetAvailability)
		api.GET("/availability/schedule", handlers.GetWeeklySchedule)
		api.GET("/availability/suggest", handlers.SuggestDeliveryDate)
		api.GET("/delivery-dates", handlers.GetDeliveryDates)

		// Catalog and logistics feeds
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:sku", handlers.GetProduct)
		api.GET("/routes", handlers.GetRoutes)
		api.GET("/cities", handlers.GetCities)

		// Order metrics (pure computation, stores nothing)
		api.POST("/orders/metrics", handlers.CalculateOrderMetrics)
	}

	// Start server
	log.Printf("Starting Sercarne server on 0.0.0.0:%s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.ServerPort, c.Handler(router)))
}
