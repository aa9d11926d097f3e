package orderbook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/pkg/types"
)

// Client talks to the CoW Protocol order book API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new order book client for one network.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type quoteResponse struct {
	Quote      types.QuoteResult `json:"quote"`
	From       string            `json:"from"`
	Expiration string            `json:"expiration"`
}

// GetQuote requests a price quote for the query.
func (c *Client) GetQuote(ctx context.Context, query *types.QuoteQuery) (*types.QuoteResult, error) {
	var resp quoteResponse
	err := c.post(ctx, "/api/v1/quote", query, &resp)
	if err != nil {
		return nil, fmt.Errorf("request quote: %w", err)
	}

	QuotesRequestedTotal.Inc()
	c.logger.Info("quote-received",
		zap.String("sell-amount", resp.Quote.SellAmount),
		zap.String("buy-amount", resp.Quote.BuyAmount),
		zap.String("fee-amount", resp.Quote.FeeAmount))

	return &resp.Quote, nil
}

// CreateOrder posts a signed or pre-signed order and returns the order
// uid assigned by the book.
func (c *Client) CreateOrder(ctx context.Context, submission *types.OrderSubmission) (string, error) {
	// The order book returns the uid as a bare JSON string.
	var orderUID string
	err := c.post(ctx, "/api/v1/orders", submission, &orderUID)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	OrdersSubmittedTotal.Inc()
	c.logger.Info("order-created",
		zap.String("order-uid", orderUID),
		zap.String("signing-scheme", submission.SigningScheme))

	return orderUID, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &types.APIError{Service: "order book", Status: resp.StatusCode, Body: string(body)}
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	return nil
}
