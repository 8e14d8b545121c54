package server

import (
	"auction-gateway/internal/metrics"
	aggregatehandler "auction-gateway/services/aggregate/handler"
	auctionhandler "auction-gateway/services/auctions/handler"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService auctionhandler.AuctionServiceInterface, gateway aggregatehandler.AggregatorInterface, allowedOrigins []string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // correlate logs across services
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(MetricsMiddleware)
	router.Use(CORSMiddleware(allowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	aggregateHandler := aggregatehandler.NewAggregateHandler(gateway)
	router.GET("/aggregate/:user_id", aggregateHandler.GetAggregateHandler)

	auctionHandler := auctionhandler.NewAuctionHandler(auctionService)

	auctions := router.Group("/api/auctiondetails")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.PUT("/:auction_id", auctionHandler.UpdateAuctionHandler)
		auctions.GET("/owner/:owner_id", auctionHandler.ListAuctionsByOwnerHandler)
	}

	return router
}
