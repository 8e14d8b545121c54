package models

import (
	"encoding/json"
	"time"
)

// AuctionPhase is the temporal classification of an auction. It is derived, never stored.
type AuctionPhase string

const (
	PhaseNotStarted AuctionPhase = "not_started"
	PhaseOngoing    AuctionPhase = "ongoing"
	PhaseEnded      AuctionPhase = "ended"
)

// Auction represents an auction room created by its owner
type Auction struct {
	AuctionID       string    `json:"auction_id"`
	RoomDisplayName string    `json:"room_display_name"`
	AuctionItemName string    `json:"auction_item_name"`
	OwnerID         string    `json:"owner_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MinBid          float64   `json:"minbid"`
	Increment       float64   `json:"increment"`
	Category        string    `json:"category"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AuctionView is an auction together with its phase at the time of the read
type AuctionView struct {
	Auction
	Phase AuctionPhase `json:"phase"`
}

// ServiceOutcome is the uniform envelope for one downstream call, success or failure
type ServiceOutcome struct {
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
}

// AggregatedResponse maps a slot name to its outcome. A nil outcome marks a slot with no configured call.
type AggregatedResponse map[string]*ServiceOutcome
