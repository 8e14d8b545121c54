package main

import (
	"auction-gateway/internal/auction"
	"auction-gateway/internal/config"
	"auction-gateway/internal/downstream"
	"auction-gateway/internal/gateway"
	model "auction-gateway/internal/models"
	"auction-gateway/internal/repository"
	"auction-gateway/internal/server"
	"auction-gateway/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLogLevel(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		utils.Fatal("invalid auction timezone", map[string]any{"error": err.Error()})
	}

	repo := repository.NewMemoryRepo()
	if cfg.PrepopulateAuctions {
		prepopulateAuctions(repo, time.Now())
	}
	auctionSvc := auction.NewAuctionService(repo, loc, time.Now)

	gw, err := buildGateway(cfg)
	if err != nil {
		utils.Fatal("failed to build gateway", map[string]any{"error": err.Error()})
	}

	router := server.SetupRouter(auctionSvc, gw, cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.DownstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Info("starting auction gateway", map[string]any{
			"addr":     srv.Addr,
			"env":      cfg.AppEnv,
			"base_url": cfg.DownstreamBaseURL(),
			"slots":    gw.SlotNames(),
			"timezone": loc.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("server failed to start", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Info("shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Fatal("server forced to shutdown", map[string]any{"error": err.Error()})
	}

	utils.Info("server exited", nil)
}

// buildGateway creates one client per configured slot, all against the environment's base url
func buildGateway(cfg *config.Config) (*gateway.Gateway, error) {
	httpClient := &http.Client{}

	paths := []struct {
		name string
		path string
	}{
		{gateway.SlotCurrency, cfg.CurrencyPath},
		{gateway.SlotUser, cfg.UserPath},
		{gateway.SlotAuctionDetails, cfg.AuctionDetailsPath},
	}

	slots := make([]gateway.Slot, 0, len(paths))
	for _, p := range paths {
		slot := gateway.Slot{Name: p.name, PathTemplate: p.path}
		if p.path != "" {
			client, err := downstream.NewClient(p.name, downstream.Config{
				BaseURL:    cfg.DownstreamBaseURL(),
				Timeout:    cfg.DownstreamTimeout,
				HTTPClient: httpClient,
			})
			if err != nil {
				return nil, err
			}
			slot.Caller = client
		}
		slots = append(slots, slot)
	}

	return gateway.NewGateway(slots...)
}

// prepopulateAuctions adds sample auctions to the in-memory repo, one per phase
func prepopulateAuctions(repo *repository.MemoryRepo, now time.Time) {
	auctions := []model.Auction{
		{AuctionID: utils.GenerateID(), RoomDisplayName: "Estate clearance", AuctionItemName: "Oak dining table", OwnerID: "user1",
			StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-24 * time.Hour), MinBid: 120, Increment: 10, Category: "Home"},
		{AuctionID: utils.GenerateID(), RoomDisplayName: "Camera night", AuctionItemName: "1960s rangefinder", OwnerID: "user1",
			StartTime: now.Add(-time.Hour), EndTime: now.Add(2 * time.Hour), MinBid: 80, Increment: 5, Category: "Electronics"},
		{AuctionID: utils.GenerateID(), RoomDisplayName: "Print fair", AuctionItemName: "Signed lithograph", OwnerID: "user2",
			StartTime: now.Add(24 * time.Hour), EndTime: now.Add(26 * time.Hour), MinBid: 300, Increment: 25, Category: "Art"},
	}

	for _, a := range auctions {
		a.CreatedAt = now.UTC()
		a.UpdatedAt = now.UTC()
		repo.AddAuction(a)
	}
}
