// Package router wires HTTP routes to the auction handlers and attaches
// the Redis-backed middleware where it pays off: response caching on the
// public listing endpoints and rate limiting on bid submission.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ArtEcommercePlatform/auction-service/internal/config"
	"github.com/ArtEcommercePlatform/auction-service/internal/handler"
	"github.com/ArtEcommercePlatform/auction-service/internal/middleware"
)

// RegisterRoutes registers the health check and all auction endpoints on
// the provided Echo instance.  rdb may be nil, in which case caching and
// rate limiting degrade to no-ops.
func RegisterRoutes(e *echo.Echo, h *handler.AuctionHandler, rdb *redis.Client) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1/auctions")

	g.POST("", h.CreateAuction)

	// Listing endpoints are read-heavy and safe to serve from cache for a
	// short TTL.  Static segments must be registered before /:id.
	g.GET("/active", h.GetActiveAuctions, cache)
	g.GET("/completed", h.GetCompletedAuctions, cache)
	g.GET("/completed/winner/:winner_id", h.GetCompletedAuctionsByWinner)
	g.GET("/artist/:artist_id", h.GetAuctionsByArtist)

	g.GET("/:id", h.GetAuction)
	g.PUT("/:id", h.UpdateAuctionDetails)
	g.POST("/:id/cancel", h.CancelAuction)
	g.POST("/:id/extend", h.ExtendAuctionTime)

	g.GET("/:id/bids", h.GetBidHistory)
	// Bid submission is the hot write path; throttle it per client.
	g.POST("/:id/bids", h.PlaceBid, limit)
}
