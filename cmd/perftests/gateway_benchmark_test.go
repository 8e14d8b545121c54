package perftests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-gateway/internal/auction"
	"auction-gateway/internal/downstream"
	"auction-gateway/internal/gateway"
)

// Benchmark 1: Resolve - pure phase classification
func Benchmark_Resolve(b *testing.B) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	now := start.Add(time.Hour)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = auction.Resolve(start, end, now.Add(time.Duration(i%7200)*time.Second))
	}
}

// Benchmark 2: Validate - full rule set on a valid candidate
func Benchmark_Validate(b *testing.B) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	in := auction.Input{
		RoomDisplayName: "Room",
		AuctionItemName: "Item",
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		MinBid:          10,
		Increment:       1,
		Category:        "Art",
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if errs := auction.Validate(in); len(errs) > 0 {
			b.Fatalf("unexpected violations: %v", errs)
		}
	}
}

// Benchmark 3: Aggregate - concurrent fan-out against local downstreams
func Benchmark_Aggregate_Parallel(b *testing.B) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	httpClient := &http.Client{Transport: &http.Transport{MaxIdleConnsPerHost: 256}}
	newSlot := func(name, path string) gateway.Slot {
		c, err := downstream.NewClient(name, downstream.Config{BaseURL: srv.URL, Timeout: time.Second, HTTPClient: httpClient})
		if err != nil {
			b.Fatalf("failed to build client: %v", err)
		}
		return gateway.Slot{Name: name, PathTemplate: path, Caller: c}
	}

	gw, err := gateway.NewGateway(
		newSlot(gateway.SlotCurrency, "/api/currency/{id}"),
		gateway.Slot{Name: gateway.SlotUser},
		newSlot(gateway.SlotAuctionDetails, "/api/auctiondetails/owner/{id}"),
	)
	if err != nil {
		b.Fatalf("failed to build gateway: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			resp, err := gw.Aggregate(context.Background(), "user1", "Bearer bench")
			if err != nil {
				b.Errorf("aggregate failed: %v", err)
				return
			}
			if resp[gateway.SlotCurrency].Status != http.StatusOK {
				b.Errorf("unexpected currency status %d", resp[gateway.SlotCurrency].Status)
				return
			}
		}
	})
}
