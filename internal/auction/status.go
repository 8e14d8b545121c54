package auction

import (
	"fmt"
	"strings"
	"time"

	"auction-gateway/internal/models"
)

// civilLayouts are the zone-less forms accepted from the front-end, read as civil time in the reference zone
var civilLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Resolve classifies an auction at instant now. Both ends of the schedule count as ongoing.
// All three instants are normalised to UTC so callers in different zones agree on the boundaries.
func Resolve(start, end, now time.Time) models.AuctionPhase {
	start, end, now = start.UTC(), end.UTC(), now.UTC()

	switch {
	case now.Before(start):
		return models.PhaseNotStarted
	case now.After(end):
		return models.PhaseEnded
	default:
		return models.PhaseOngoing
	}
}

// PhaseOf is Resolve applied to an auction's schedule
func PhaseOf(a models.Auction, now time.Time) models.AuctionPhase {
	return Resolve(a.StartTime, a.EndTime, now)
}

// ParseInstant accepts RFC 3339 timestamps as-is and reads zone-less timestamps as civil time in loc
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse instant: empty value")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range civilLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse instant: %q is neither RFC 3339 nor a civil date-time", s)
}
