package helpers

import (
	"strconv"
	"strings"
	"time"

	"auction-gateway/internal/auction"
)

// Request/Response DTOs

// AuctionRequest is the create/edit payload. Times are strings so zone-less values can be read in the auction timezone.
type AuctionRequest struct {
	RoomDisplayName string   `json:"room_display_name"`
	AuctionItemName string   `json:"auction_item_name"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	MinBid          *float64 `json:"minbid"`
	Increment       *float64 `json:"increment"`
	Category        string   `json:"category"`
	Description     *string  `json:"description"`
}

// ListAuctionsQuery mirrors the filter form's fields
type ListAuctionsQuery struct {
	AuctionItemName string `form:"auction_item_name"`
	LowerBound      string `form:"lowerbound"`
	UpperBound      string `form:"upperbound"`
	Category        string `form:"category"`
	ShowAll         bool   `form:"show_all"`
}

// ToInput converts the payload for validation. Fields that cannot even be decoded are returned as
// field errors together with every rule violation of the remaining fields.
func (r AuctionRequest) ToInput(loc *time.Location) (auction.Input, []auction.FieldError) {
	in := auction.Input{
		RoomDisplayName: r.RoomDisplayName,
		AuctionItemName: r.AuctionItemName,
		Category:        r.Category,
	}
	if r.Description != nil {
		in.Description = *r.Description
	}

	var decodeErrs []auction.FieldError
	skip := map[string]bool{}

	parseTime := func(field, raw string) time.Time {
		if strings.TrimSpace(raw) == "" {
			return time.Time{}
		}
		t, err := auction.ParseInstant(raw, loc)
		if err != nil {
			decodeErrs = append(decodeErrs, auction.FieldError{Field: field, Rule: "datetime", Message: field + " must be an RFC 3339 or civil date-time"})
			skip[field] = true
			return time.Time{}
		}
		return t
	}
	in.StartTime = parseTime("start_time", r.StartTime)
	in.EndTime = parseTime("end_time", r.EndTime)

	requireAmount := func(field string, v *float64) float64 {
		if v == nil {
			decodeErrs = append(decodeErrs, auction.FieldError{Field: field, Rule: "required", Message: field + " is required"})
			skip[field] = true
			return 0
		}
		return *v
	}
	in.MinBid = requireAmount("minbid", r.MinBid)
	in.Increment = requireAmount("increment", r.Increment)

	if len(decodeErrs) == 0 {
		return in, nil
	}

	// an unparseable start would otherwise also surface as "required" or as a bogus ordering error
	for _, fe := range auction.Validate(in) {
		if skip[fe.Field] || (fe.Field == "end_time" && fe.Rule == "gtefield" && skip["start_time"]) {
			continue
		}
		decodeErrs = append(decodeErrs, fe)
	}
	return in, decodeErrs
}

// ToFilter parses the numeric bounds of the query
func (q ListAuctionsQuery) ToFilter() (auction.Filter, error) {
	f := auction.Filter{
		AuctionItemName: q.AuctionItemName,
		Category:        q.Category,
		ShowAll:         q.ShowAll,
	}

	var err error
	if f.LowerBound, err = parseBound(q.LowerBound); err != nil {
		return auction.Filter{}, err
	}
	if f.UpperBound, err = parseBound(q.UpperBound); err != nil {
		return auction.Filter{}, err
	}
	return f, nil
}

func parseBound(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
