package repository

import (
	"auction-gateway/internal/aggregationerrors"
	model "auction-gateway/internal/models"
	"fmt"
	"sort"
	"sync"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the auction storage interface
type AuctionDB interface {
	CreateAuction(auction model.Auction) error
	UpdateAuction(auction model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	GetAuctionsByOwner(ownerID string) ([]model.Auction, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu            sync.RWMutex
	auctions      map[string]model.Auction // key: auctionID -> value: auction
	ownerAuctions map[string][]string      // key: ownerID -> value: auctionIDs in creation order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:      make(map[string]model.Auction),
		ownerAuctions: make(map[string][]string),
	}
}

// CreateAuction stores a new auction
func (r *MemoryRepo) CreateAuction(auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, aggregationerrors.ErrAuctionExists)
	}

	r.auctions[auction.AuctionID] = auction
	r.ownerAuctions[auction.OwnerID] = append(r.ownerAuctions[auction.OwnerID], auction.AuctionID)
	return nil
}

// UpdateAuction replaces an existing auction. Ownership never changes.
func (r *MemoryRepo) UpdateAuction(auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.auctions[auction.AuctionID]
	if !ok {
		return fmt.Errorf("update auction %s: %w", auction.AuctionID, aggregationerrors.ErrAuctionNotFound)
	}

	auction.OwnerID = existing.OwnerID
	auction.CreatedAt = existing.CreatedAt
	r.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns a single auction by id
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, aggregationerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// ListAuctions returns every auction ordered by start time, then id
func (r *MemoryRepo) ListAuctions() ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		auctions = append(auctions, a)
	}
	sortByStart(auctions)
	return auctions, nil
}

// GetAuctionsByOwner returns all auctions created by an owner, in creation order
func (r *MemoryRepo) GetAuctionsByOwner(ownerID string) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.ownerAuctions[ownerID]
	auctions := make([]model.Auction, 0, len(ids))
	for _, id := range ids {
		if a, exists := r.auctions[id]; exists {
			auctions = append(auctions, a)
		}
	}
	return auctions, nil
}

// AddAuction inserts or overwrites an auction without checks. Used for seeding and tests.
func (r *MemoryRepo) AddAuction(auction model.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; !ok {
		r.ownerAuctions[auction.OwnerID] = append(r.ownerAuctions[auction.OwnerID], auction.AuctionID)
	}
	r.auctions[auction.AuctionID] = auction
}

func sortByStart(auctions []model.Auction) {
	sort.Slice(auctions, func(i, j int) bool {
		if auctions[i].StartTime.Equal(auctions[j].StartTime) {
			return auctions[i].AuctionID < auctions[j].AuctionID
		}
		return auctions[i].StartTime.Before(auctions[j].StartTime)
	})
}
