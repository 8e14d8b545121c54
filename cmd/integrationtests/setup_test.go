package integrationtests

import (
	"auction-gateway/internal/auction"
	"auction-gateway/internal/downstream"
	"auction-gateway/internal/gateway"
	model "auction-gateway/internal/models"
	"auction-gateway/internal/repository"
	"auction-gateway/internal/server"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// fixedNow is the clock every integration test runs against
var fixedNow = time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)

// TestEnv bundles a router with the repository behind it
type TestEnv struct {
	Router *gin.Engine
	Repo   *repository.MemoryRepo
}

// SetupTestRouter initializes the router with an in-memory repository and the given gateway slots.
func SetupTestRouter(t *testing.T, slots ...gateway.Slot) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	service := auction.NewAuctionService(repo, time.UTC, func() time.Time { return fixedNow })

	gw, err := gateway.NewGateway(slots...)
	if err != nil {
		t.Fatalf("failed to build gateway: %v", err)
	}

	return &TestEnv{
		Router: server.SetupRouter(service, gw, []string{"*"}),
		Repo:   repo,
	}
}

// SetupTestRouterWithAuctions initializes the router and seeds the repo with auctions.
func SetupTestRouterWithAuctions(t *testing.T, auctions ...model.Auction) *TestEnv {
	env := SetupTestRouter(t)
	for _, a := range auctions {
		env.Repo.AddAuction(a)
	}
	return env
}

// NewSlot builds a slot backed by a real downstream client pointed at baseURL
func NewSlot(t *testing.T, name, pathTemplate, baseURL string, timeout time.Duration) gateway.Slot {
	t.Helper()
	client, err := downstream.NewClient(name, downstream.Config{BaseURL: baseURL, Timeout: timeout})
	if err != nil {
		t.Fatalf("failed to build client %s: %v", name, err)
	}
	return gateway.Slot{Name: name, PathTemplate: pathTemplate, Caller: client}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router http.Handler, method, url string, body any, headers map[string]string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
