package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-gateway/internal/aggregationerrors"
	"auction-gateway/internal/auction"
	model "auction-gateway/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var (
	start = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end   = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
)

func sampleView(id, owner string, phase model.AuctionPhase) model.AuctionView {
	return model.AuctionView{
		Auction: model.Auction{
			AuctionID:       id,
			RoomDisplayName: "Room",
			AuctionItemName: "Camera",
			OwnerID:         owner,
			StartTime:       start,
			EndTime:         end,
			MinBid:          10,
			Increment:       1,
			Category:        "Electronics",
		},
		Phase: phase,
	}
}

func validBody() map[string]any {
	return map[string]any{
		"room_display_name": "Room",
		"auction_item_name": "Camera",
		"start_time":        "2024-01-01T10:00:00Z",
		"end_time":          "2024-01-01T12:00:00Z",
		"minbid":            10,
		"increment":         1,
		"category":          "Electronics",
	}
}

func setupRouter(h *AuctionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auctiondetails", h.CreateAuctionHandler)
	router.GET("/api/auctiondetails", h.ListAuctionsHandler)
	router.GET("/api/auctiondetails/:auction_id", h.GetAuctionHandler)
	router.PUT("/api/auctiondetails/:auction_id", h.UpdateAuctionHandler)
	router.GET("/api/auctiondetails/owner/:owner_id", h.ListAuctionsByOwnerHandler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, url string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

// Test CreateAuctionHandler
func TestCreateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupRouter(NewAuctionHandler(mockService))

	tests := []struct {
		name           string
		body           any
		headers        map[string]string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		expectedFields []string
	}{
		{
			name:    "success",
			body:    validBody(),
			headers: map[string]string{"X-User-ID": "owner1"},
			mockSetup: func() {
				mockService.EXPECT().Location().Return(time.UTC)
				mockService.EXPECT().
					CreateAuction("owner1", gomock.Any()).
					DoAndReturn(func(owner string, in auction.Input) (model.AuctionView, error) {
						require.True(t, start.Equal(in.StartTime))
						require.True(t, end.Equal(in.EndTime))
						require.Equal(t, 10.0, in.MinBid)
						return sampleView("a1", owner, model.PhaseOngoing), nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "auction created successfully",
		},
		{
			name:           "invalid_json",
			body:           `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "end_before_start",
			body: func() map[string]any {
				b := validBody()
				b["end_time"] = "2024-01-01T09:00:00Z"
				return b
			}(),
			headers: map[string]string{"X-User-ID": "owner1"},
			mockSetup: func() {
				mockService.EXPECT().Location().Return(time.UTC)
				mockService.EXPECT().CreateAuction("owner1", gomock.Any()).
					Return(model.AuctionView{}, &auction.ValidationError{Fields: []auction.FieldError{{Field: "end_time", Rule: "gtefield", Message: "end_time can't be before start_time"}}})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "auction failed validation",
			expectedFields: []string{"end_time"},
		},
		{
			name: "undecodable_fields_reported_with_rule_violations",
			body: map[string]any{
				"room_display_name": "",
				"auction_item_name": "Camera",
				"start_time":        "someday",
				"end_time":          "2024-01-01T12:00:00Z",
				"increment":         1,
				"category":          "Electronics",
			},
			mockSetup: func() {
				mockService.EXPECT().Location().Return(time.UTC)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "auction failed validation",
			expectedFields: []string{"start_time", "minbid", "room_display_name"},
		},
		{
			name: "missing_owner",
			body: validBody(),
			mockSetup: func() {
				mockService.EXPECT().Location().Return(time.UTC)
				mockService.EXPECT().CreateAuction("", gomock.Any()).
					Return(model.AuctionView{}, fmt.Errorf("service: %w", aggregationerrors.ErrMissingOwner))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "missing user identity",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doRequest(t, router, http.MethodPost, "/api/auctiondetails", tc.body, tc.headers)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.expectedStatus == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, "a1", data["auction_id"])
				require.Equal(t, "owner1", data["owner_id"])
				require.Equal(t, "ongoing", data["phase"])
			}
			if tc.expectedFields != nil {
				errs := resp["errors"].([]any)
				got := make([]string, 0, len(errs))
				for _, e := range errs {
					got = append(got, e.(map[string]any)["field"].(string))
				}
				require.Equal(t, tc.expectedFields, got)
			}
		})
	}
}

// Test UpdateAuctionHandler
func TestUpdateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupRouter(NewAuctionHandler(mockService))

	tests := []struct {
		name           string
		auctionID      string
		owner          string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:      "owner_updates",
			auctionID: "a1",
			owner:     "owner1",
			mockSetup: func() {
				mockService.EXPECT().Location().Return(time.UTC)
				mockService.EXPECT().UpdateAuction("a1", "owner1", gomock.Any()).
					Return(sampleView("a1", "owner1", model.PhaseNotStarted), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction updated successfully",
		},
		{
			name:      "not_owner",
			auctionID: "a1",
			owner:     "owner2",
			mockSetup: func() {
				mockService.EXPECT().Location().Return(time.UTC)
				mockService.EXPECT().UpdateAuction("a1", "owner2", gomock.Any()).
					Return(model.AuctionView{}, fmt.Errorf("service: %w", aggregationerrors.ErrNotOwner))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "only the owner may modify this auction",
		},
		{
			name:      "not_found",
			auctionID: "zz",
			owner:     "owner1",
			mockSetup: func() {
				mockService.EXPECT().Location().Return(time.UTC)
				mockService.EXPECT().UpdateAuction("zz", "owner1", gomock.Any()).
					Return(model.AuctionView{}, fmt.Errorf("service: %w", aggregationerrors.ErrAuctionNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doRequest(t, router, http.MethodPut, "/api/auctiondetails/"+tc.auctionID, validBody(), map[string]string{"X-User-ID": tc.owner})
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])
		})
	}
}

// Test GetAuctionHandler
func TestGetAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupRouter(NewAuctionHandler(mockService))

	mockService.EXPECT().GetAuction("a1").Return(sampleView("a1", "owner1", model.PhaseEnded), nil)
	mockService.EXPECT().GetAuction("missing").Return(model.AuctionView{}, fmt.Errorf("service: %w", aggregationerrors.ErrAuctionNotFound))

	w, resp := doRequest(t, router, http.MethodGet, "/api/auctiondetails/a1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "ended", data["phase"])
	require.Equal(t, "2024-01-01T10:00:00Z", data["start_time"])

	w, resp = doRequest(t, router, http.MethodGet, "/api/auctiondetails/missing", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "auction not found", resp["message"])
}

// Test ListAuctionsHandler
func TestListAuctionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupRouter(NewAuctionHandler(mockService))

	lower, upper := 5.0, 50.0

	tests := []struct {
		name           string
		query          string
		mockSetup      func()
		expectedStatus int
		expectedCount  int
	}{
		{
			name:  "all_filters",
			query: "?auction_item_name=cam&lowerbound=5&upperbound=50&category=Electronics&show_all=true",
			mockSetup: func() {
				mockService.EXPECT().ListAuctions(auction.Filter{
					AuctionItemName: "cam",
					LowerBound:      &lower,
					UpperBound:      &upper,
					Category:        "Electronics",
					ShowAll:         true,
				}).Return([]model.AuctionView{sampleView("a1", "o1", model.PhaseOngoing), sampleView("a2", "o1", model.PhaseEnded)}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:  "no_filters",
			query: "",
			mockSetup: func() {
				mockService.EXPECT().ListAuctions(auction.Filter{}).Return([]model.AuctionView{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "non_numeric_bound",
			query:          "?lowerbound=cheap",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "rejected_filter",
			query: "?category=Cars",
			mockSetup: func() {
				mockService.EXPECT().ListAuctions(auction.Filter{Category: "Cars"}).
					Return(nil, fmt.Errorf("service: %w", aggregationerrors.ErrInvalidFilter))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doRequest(t, router, http.MethodGet, "/api/auctiondetails"+tc.query, nil, nil)
			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusOK {
				require.Len(t, resp["data"].([]any), tc.expectedCount)
			}
		})
	}
}

// Test ListAuctionsByOwnerHandler
func TestListAuctionsByOwnerHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupRouter(NewAuctionHandler(mockService))

	mockService.EXPECT().ListAuctionsByOwner("owner1").
		Return([]model.AuctionView{sampleView("a1", "owner1", model.PhaseNotStarted)}, nil)
	mockService.EXPECT().ListAuctionsByOwner("nobody").Return(nil, nil)
	mockService.EXPECT().ListAuctionsByOwner("broken").Return(nil, fmt.Errorf("service: db down"))

	w, resp := doRequest(t, router, http.MethodGet, "/api/auctiondetails/owner/owner1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)

	w, resp = doRequest(t, router, http.MethodGet, "/api/auctiondetails/owner/nobody", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"].([]any))

	w, resp = doRequest(t, router, http.MethodGet, "/api/auctiondetails/owner/broken", nil, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "internal server error", resp["message"])
}
