package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ArtEcommercePlatform/auction-service/internal/auction"
	"github.com/ArtEcommercePlatform/auction-service/internal/config"
	"github.com/ArtEcommercePlatform/auction-service/internal/database"
	"github.com/ArtEcommercePlatform/auction-service/internal/handler"
	"github.com/ArtEcommercePlatform/auction-service/internal/model"
	"github.com/ArtEcommercePlatform/auction-service/internal/queue"
	"github.com/ArtEcommercePlatform/auction-service/internal/repository"
	"github.com/ArtEcommercePlatform/auction-service/internal/router"
	queue_publisher "github.com/ArtEcommercePlatform/auction-service/internal/service"
)

func main() {
	_ = godotenv.Load() // optional .env for local development
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; caching and rate limiting degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache and rate limiting disabled")
	}

	store := repository.NewAuctionRepo(db)
	svc := auction.NewService(store, auction.RealClock())
	h := handler.NewAuctionHandler(svc)

	// The sweep closes expired auctions and activates due ones; every
	// closed auction is published for downstream settlement.
	sweeper := auction.NewSweeper(svc, time.Duration(cfg.SweepIntervalSec)*time.Second)
	sweeper.OnClosed = func(ctx context.Context, a model.Auction) {
		_ = queue_publisher.PublishAuctionClosed(ctx, queue.NewAuctionClosedEvent(a))
	}
	go sweeper.Run(context.Background())
	go queue.StartSettlementConsumer()

	e := echo.New()
	router.RegisterRoutes(e, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, sweep every %ds)", addr, cfg.Env, cfg.SweepIntervalSec)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
