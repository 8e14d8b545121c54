package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAuctionRequest_ToInput(t *testing.T) {
	sgt := time.FixedZone("SGT", 8*3600)

	base := func() AuctionRequest {
		return AuctionRequest{
			RoomDisplayName: "Room",
			AuctionItemName: "Item",
			StartTime:       "2024-01-01T10:00:00Z",
			EndTime:         "2024-01-01T12:00:00Z",
			MinBid:          ptr(10.0),
			Increment:       ptr(1.0),
			Category:        "Art",
		}
	}

	tests := []struct {
		name       string
		mutate     func(r *AuctionRequest)
		wantFields []string
		check      func(t *testing.T, r AuctionRequest)
	}{
		{
			name:   "valid_rfc3339",
			mutate: func(r *AuctionRequest) { r.Description = ptr("vintage") },
			check: func(t *testing.T, r AuctionRequest) {
				in, errs := r.ToInput(sgt)
				require.Empty(t, errs)
				require.True(t, in.StartTime.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
				require.Equal(t, "vintage", in.Description)
			},
		},
		{
			name: "civil_time_read_in_zone",
			mutate: func(r *AuctionRequest) {
				r.StartTime = "2024-01-01T18:00"
				r.EndTime = "2024-01-01 20:00:00"
			},
			check: func(t *testing.T, r AuctionRequest) {
				in, errs := r.ToInput(sgt)
				require.Empty(t, errs)
				require.True(t, in.StartTime.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
				require.True(t, in.EndTime.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
			},
		},
		{
			name:       "unparseable_start_hides_ordering_error",
			mutate:     func(r *AuctionRequest) { r.StartTime = "yesterday" },
			wantFields: []string{"start_time"},
		},
		{
			name: "missing_amounts_and_other_violations_together",
			mutate: func(r *AuctionRequest) {
				r.MinBid = nil
				r.Increment = nil
				r.Category = "Weapons"
			},
			wantFields: []string{"minbid", "increment", "category"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := base()
			tc.mutate(&r)
			if tc.check != nil {
				tc.check(t, r)
				return
			}
			_, errs := r.ToInput(sgt)
			var fields []string
			for _, fe := range errs {
				fields = append(fields, fe.Field)
			}
			require.ElementsMatch(t, tc.wantFields, fields)
		})
	}
}

func TestListAuctionsQuery_ToFilter(t *testing.T) {
	f, err := ListAuctionsQuery{AuctionItemName: "lamp", LowerBound: "10", UpperBound: " 99.5 ", Category: "Home", ShowAll: true}.ToFilter()
	require.NoError(t, err)
	require.Equal(t, "lamp", f.AuctionItemName)
	require.NotNil(t, f.LowerBound)
	require.Equal(t, 10.0, *f.LowerBound)
	require.NotNil(t, f.UpperBound)
	require.Equal(t, 99.5, *f.UpperBound)
	require.Equal(t, "Home", f.Category)
	require.True(t, f.ShowAll)

	f, err = ListAuctionsQuery{}.ToFilter()
	require.NoError(t, err)
	require.Nil(t, f.LowerBound)
	require.Nil(t, f.UpperBound)

	_, err = ListAuctionsQuery{LowerBound: "ten"}.ToFilter()
	require.Error(t, err)
}
