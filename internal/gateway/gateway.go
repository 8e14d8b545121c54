package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"auction-gateway/internal/aggregationerrors"
	"auction-gateway/internal/metrics"
	"auction-gateway/internal/models"
	"auction-gateway/utils"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=gateway.go -destination=mock_caller.go -package=gateway

// Slot names of the aggregated payload
const (
	SlotCurrency       = "currency"
	SlotUser           = "user"
	SlotAuctionDetails = "auctionDetails"
)

// idPlaceholder is replaced by the escaped request id in a slot's path template
const idPlaceholder = "{id}"

// Caller performs one downstream call. *downstream.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, path, auth string) (models.ServiceOutcome, error)
}

// Slot binds a payload key to the downstream call that fills it.
// A slot with no Caller or an empty PathTemplate is reserved and always reported as null.
type Slot struct {
	Name         string
	PathTemplate string
	Caller       Caller
}

func (s Slot) configured() bool {
	return s.Caller != nil && strings.TrimSpace(s.PathTemplate) != ""
}

func (s Slot) path(requestID string) string {
	return strings.ReplaceAll(s.PathTemplate, idPlaceholder, url.PathEscape(requestID))
}

// Gateway fans one request out to every configured slot and merges the outcomes
type Gateway struct {
	slots []Slot
}

// NewGateway checks that slot names are present and unique
func NewGateway(slots ...Slot) (*Gateway, error) {
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if s.Name == "" {
			return nil, fmt.Errorf("gateway: %w - slot without a name", aggregationerrors.ErrOrchestration)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("gateway: %w - duplicate slot %q", aggregationerrors.ErrOrchestration, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return &Gateway{slots: append([]Slot(nil), slots...)}, nil
}

// Aggregate calls every configured slot concurrently with the same auth and waits for all of them.
// Downstream failures are reported inside the response; an error means the fan-out itself failed.
func (g *Gateway) Aggregate(ctx context.Context, requestID, auth string) (models.AggregatedResponse, error) {
	if strings.TrimSpace(requestID) == "" {
		metrics.RecordAggregation(false)
		return nil, fmt.Errorf("gateway: %w", aggregationerrors.ErrMissingRequestID)
	}

	outcomes := make([]*models.ServiceOutcome, len(g.slots))

	// plain Group: a failing slot must not cancel its siblings
	var eg errgroup.Group
	for i, slot := range g.slots {
		if !slot.configured() {
			continue
		}
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("gateway: slot %s: %w - panic: %v", slot.Name, aggregationerrors.ErrOrchestration, r)
				}
			}()

			outcome, err := slot.Caller.Call(ctx, slot.path(requestID), auth)
			if err != nil {
				return fmt.Errorf("gateway: slot %s: %w", slot.Name, err)
			}
			outcomes[i] = &outcome
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		metrics.RecordAggregation(false)
		utils.Error("gateway: aggregation failed", map[string]any{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, err
	}

	resp := make(models.AggregatedResponse, len(g.slots))
	for i, slot := range g.slots {
		resp[slot.Name] = outcomes[i]
	}

	metrics.RecordAggregation(true)
	return resp, nil
}

// SlotNames lists the payload keys in configuration order
func (g *Gateway) SlotNames() []string {
	names := make([]string, 0, len(g.slots))
	for _, s := range g.slots {
		names = append(names, s.Name)
	}
	return names
}
