package handlers

import (
	"errors"
	"net/http"

	"github.com/cassiozaleski/sercarne-V8.0/services"

	"github.com/gin-gonic/gin"
)

// GetProducts handles GET /api/v1/products. Hidden products are excluded
// unless ?all=true.
func GetProducts(c *gin.Context) {
	products, err := feed.Products(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	includeHidden := c.Query("all") == "true"
	out := products[:0:0]
	for _, p := range products {
		if p.Visible || includeHidden {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": out, "count": len(out)})
}

// GetProduct handles GET /api/v1/products/:sku
func GetProduct(c *gin.Context) {
	sku := c.Param("sku")

	products, err := feed.Products(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	for _, p := range products {
		if p.SKU == sku {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

// GetRoutes handles GET /api/v1/routes
func GetRoutes(c *gin.Context) {
	routes, err := feed.Routes(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load routes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
}

// GetCities handles GET /api/v1/cities
func GetCities(c *gin.Context) {
	cities, err := feed.Cities(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrDataUnavailable) {
			dataUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities, "count": len(cities)})
}
