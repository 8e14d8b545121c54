package aggregationerrors

import "errors"

// Gateway configuration and orchestration errors
var (
	ErrInvalidPath      = errors.New("invalid downstream path")
	ErrInvalidBaseURL   = errors.New("invalid downstream base url")
	ErrMissingRequestID = errors.New("missing request id")
	ErrOrchestration    = errors.New("aggregation failed")
)

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrAuctionExists   = errors.New("auction already exists")
)

// business logic errors
var (
	ErrInvalidAuction = errors.New("invalid auction")
	ErrNotOwner       = errors.New("only the owner may modify this auction")
	ErrMissingOwner   = errors.New("missing owner id")
	ErrInvalidFilter  = errors.New("invalid auction filter")
)
