package auction

import (
	"auction-gateway/internal/aggregationerrors"
	"auction-gateway/internal/models"
	"auction-gateway/internal/repository"
	"auction-gateway/utils"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Filter narrows ListAuctions. Zero values mean "no constraint"; ended auctions are hidden unless ShowAll.
type Filter struct {
	AuctionItemName string
	LowerBound      *float64
	UpperBound      *float64
	Category        string
	ShowAll         bool
}

// Service defines the business logic for auction rooms
type Service struct {
	repo repository.AuctionDB
	loc  *time.Location
	now  func() time.Time
}

// NewAuctionService creates a Service. Schedules are reported in loc; now defaults to time.Now.
func NewAuctionService(repo repository.AuctionDB, loc *time.Location, now func() time.Time) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  now,
	}
}

// Location returns the reference timezone schedules are normalised to
func (s *Service) Location() *time.Location {
	return s.loc
}

// CreateAuction validates the input and stores a new auction owned by ownerID
func (s *Service) CreateAuction(ownerID string, in Input) (models.AuctionView, error) {
	if strings.TrimSpace(ownerID) == "" {
		return models.AuctionView{}, fmt.Errorf("service: %w", aggregationerrors.ErrMissingOwner)
	}
	if fieldErrs := Validate(in); len(fieldErrs) > 0 {
		return models.AuctionView{}, &ValidationError{Fields: fieldErrs}
	}

	now := s.now().UTC()
	a := s.apply(models.Auction{
		AuctionID: utils.GenerateID(),
		OwnerID:   ownerID,
		CreatedAt: now,
	}, in)
	a.UpdatedAt = now

	if err := s.repo.CreateAuction(a); err != nil {
		return models.AuctionView{}, fmt.Errorf("service: failed to create auction for owner %s: %w", ownerID, err)
	}

	return s.view(a), nil
}

// UpdateAuction replaces the editable fields of an auction. Only its owner may do so.
func (s *Service) UpdateAuction(auctionID, ownerID string, in Input) (models.AuctionView, error) {
	if auctionID == "" {
		return models.AuctionView{}, fmt.Errorf("service: %w - empty auction ID", aggregationerrors.ErrInvalidAuction)
	}
	if strings.TrimSpace(ownerID) == "" {
		return models.AuctionView{}, fmt.Errorf("service: %w", aggregationerrors.ErrMissingOwner)
	}

	existing, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.AuctionView{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	if existing.OwnerID != ownerID {
		return models.AuctionView{}, fmt.Errorf("service: %w - auction %s", aggregationerrors.ErrNotOwner, auctionID)
	}
	if fieldErrs := Validate(in); len(fieldErrs) > 0 {
		return models.AuctionView{}, &ValidationError{Fields: fieldErrs}
	}

	updated := s.apply(existing, in)
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateAuction(updated); err != nil {
		return models.AuctionView{}, fmt.Errorf("service: failed to update auction %s: %w", auctionID, err)
	}

	return s.view(updated), nil
}

// GetAuction returns one auction with its current phase
func (s *Service) GetAuction(auctionID string) (models.AuctionView, error) {
	if auctionID == "" {
		return models.AuctionView{}, fmt.Errorf("service: %w - empty auction ID", aggregationerrors.ErrInvalidAuction)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.AuctionView{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return s.view(a), nil
}

// ListAuctions returns the auctions matching f, ordered by start time
func (s *Service) ListAuctions(f Filter) ([]models.AuctionView, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}

	auctions, err := s.repo.ListAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	now := s.now()
	name := strings.ToLower(strings.TrimSpace(f.AuctionItemName))

	views := make([]models.AuctionView, 0, len(auctions))
	for _, a := range auctions {
		phase := PhaseOf(a, now)
		switch {
		case !f.ShowAll && phase == models.PhaseEnded:
			continue
		case name != "" && !strings.Contains(strings.ToLower(a.AuctionItemName), name):
			continue
		case f.LowerBound != nil && a.MinBid < *f.LowerBound:
			continue
		case f.UpperBound != nil && a.MinBid > *f.UpperBound:
			continue
		case f.Category != "" && a.Category != f.Category:
			continue
		}
		views = append(views, s.viewAt(a, phase))
	}
	return views, nil
}

// ListAuctionsByOwner returns every auction of one owner, ended ones included
func (s *Service) ListAuctionsByOwner(ownerID string) ([]models.AuctionView, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("service: %w", aggregationerrors.ErrMissingOwner)
	}

	auctions, err := s.repo.GetAuctionsByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auctions for owner %s: %w", ownerID, err)
	}

	now := s.now()
	views := make([]models.AuctionView, 0, len(auctions))
	for _, a := range auctions {
		views = append(views, s.viewAt(a, PhaseOf(a, now)))
	}
	return views, nil
}

func validateFilter(f Filter) error {
	var problems []string
	if f.LowerBound != nil && *f.LowerBound < 0 {
		problems = append(problems, "lowerbound must be at least 0")
	}
	if f.UpperBound != nil && *f.UpperBound < 0 {
		problems = append(problems, "upperbound must be at least 0")
	}
	if f.LowerBound != nil && f.UpperBound != nil && *f.LowerBound > *f.UpperBound {
		problems = append(problems, "lowerbound must not exceed upperbound")
	}
	if f.Category != "" && !IsCategory(f.Category) {
		problems = append(problems, fmt.Sprintf("unknown category %q", f.Category))
	}
	if len(problems) > 0 {
		return fmt.Errorf("service: %w - %s", aggregationerrors.ErrInvalidFilter, strings.Join(problems, "; "))
	}
	return nil
}

func (s *Service) apply(a models.Auction, in Input) models.Auction {
	a.RoomDisplayName = in.RoomDisplayName
	a.AuctionItemName = in.AuctionItemName
	a.StartTime = in.StartTime
	a.EndTime = in.EndTime
	a.MinBid = in.MinBid
	a.Increment = in.Increment
	a.Category = in.Category
	a.Description = in.Description
	return a
}

func (s *Service) view(a models.Auction) models.AuctionView {
	return s.viewAt(a, PhaseOf(a, s.now()))
}

// viewAt renders the schedule in the reference zone; the instants themselves are unchanged
func (s *Service) viewAt(a models.Auction, phase models.AuctionPhase) models.AuctionView {
	a.StartTime = a.StartTime.In(s.loc)
	a.EndTime = a.EndTime.In(s.loc)
	return models.AuctionView{Auction: a, Phase: phase}
}

// IsValidationError extracts the field violations from err, if any
func IsValidationError(err error) ([]FieldError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
