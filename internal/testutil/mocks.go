package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/mselser95/cowtrader/internal/safe"
	"github.com/mselser95/cowtrader/pkg/types"
)

// MockOrderBook is a mock HTTP server that simulates the CoW Protocol
// order book API.
type MockOrderBook struct {
	*httptest.Server

	Quote    types.QuoteResult
	OrderUID string

	// QuoteStatus / OrderStatus override the response codes (0 = OK).
	QuoteStatus int
	OrderStatus int

	mu          sync.Mutex
	Queries     []*types.QuoteQuery
	Submissions []*types.OrderSubmission
}

// NewMockOrderBook creates a mock order book returning the given quote
// and order uid.
func NewMockOrderBook(quoteResult types.QuoteResult, orderUID string) *MockOrderBook {
	mock := &MockOrderBook{
		Quote:    quoteResult,
		OrderUID: orderUID,
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/quote":
			if mock.QuoteStatus != 0 {
				http.Error(w, `{"errorType":"mock"}`, mock.QuoteStatus)
				return
			}

			var query types.QuoteQuery
			_ = json.NewDecoder(r.Body).Decode(&query)

			mock.mu.Lock()
			mock.Queries = append(mock.Queries, &query)
			mock.mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"quote": mock.Quote})

		case "/api/v1/orders":
			if mock.OrderStatus != 0 {
				http.Error(w, `{"errorType":"mock"}`, mock.OrderStatus)
				return
			}

			var submission types.OrderSubmission
			_ = json.NewDecoder(r.Body).Decode(&submission)

			mock.mu.Lock()
			mock.Submissions = append(mock.Submissions, &submission)
			mock.mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(mock.OrderUID)

		default:
			http.NotFound(w, r)
		}
	})

	mock.Server = httptest.NewServer(handler)
	return mock
}

// MockSafeService is a mock HTTP server that simulates the Safe
// transaction service.
type MockSafeService struct {
	*httptest.Server

	Info safe.Info

	mu        sync.Mutex
	Proposals []*safe.TxProposal
}

// NewMockSafeService creates a mock Safe service for one Safe.
func NewMockSafeService(info safe.Info) *MockSafeService {
	mock := &MockSafeService{Info: info}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/"):
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(mock.Info)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/multisig-transactions/"):
			var proposal safe.TxProposal
			_ = json.NewDecoder(r.Body).Decode(&proposal)

			mock.mu.Lock()
			mock.Proposals = append(mock.Proposals, &proposal)
			mock.mu.Unlock()

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))

		default:
			http.NotFound(w, r)
		}
	})

	mock.Server = httptest.NewServer(handler)
	return mock
}
