package routes

import (
	"net/http"

	"insurance_quotes/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAggregations = "/aggregations"
	PathProviders    = "/providers"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addAggregationRoutes(rg *gin.RouterGroup, h *handlers.AggregationHandler) {
	aggregations := rg.Group(PathAggregations)
	{
		aggregations.POST("", h.Submit)
		aggregations.POST("/:id/providers/:code/dispatch", h.DispatchProvider)
		aggregations.GET("/:id/progress", h.GetProgress)
		aggregations.GET("/:id/quotes", h.GetQuotes)
	}
}

func addProviderRoutes(rg *gin.RouterGroup, h *handlers.ProviderHandler) {
	rg.GET(PathProviders, h.ListProviders)
}
