package safe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/pkg/types"
)

// Info is the Safe metadata tracked by the transaction service.
type Info struct {
	Address   string   `json:"address"`
	Nonce     int64    `json:"nonce"`
	Threshold int      `json:"threshold"`
	Owners    []string `json:"owners"`
	Version   string   `json:"version"`
}

// TxProposal is a Safe transaction posted to the service together with
// the proposer's signature.
type TxProposal struct {
	Safe           string `json:"safe"`
	To             string `json:"to"`
	Value          string `json:"value"`
	Data           string `json:"data"`
	Operation      uint8  `json:"operation"`
	GasToken       string `json:"gasToken"`
	SafeTxGas      int64  `json:"safeTxGas"`
	BaseGas        int64  `json:"baseGas"`
	GasPrice       string `json:"gasPrice"`
	RefundReceiver string `json:"refundReceiver"`
	Nonce          int64  `json:"nonce"`
	SafeTxHash     string `json:"contractTransactionHash"`
	Sender         string `json:"sender"`
	Signature      string `json:"signature"`
	Origin         string `json:"origin"`
}

// Client talks to the Safe transaction service of one network.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Safe transaction service client.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GetSafeInfo fetches owners, threshold and nonce for a Safe.
func (c *Client) GetSafeInfo(ctx context.Context, safe common.Address) (*Info, error) {
	url := fmt.Sprintf("%s/api/v1/safes/%s/", c.baseURL, safe.Hex())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &types.APIError{Service: "safe service", Status: resp.StatusCode, Body: string(body)}
	}

	var info Info
	err = json.Unmarshal(body, &info)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &info, nil
}

// ProposeTransaction submits a signed transaction proposal. Other
// owners confirm it out of band; this client's responsibility ends at
// proposal.
func (c *Client) ProposeTransaction(ctx context.Context, safe common.Address, proposal *TxProposal) error {
	url := fmt.Sprintf("%s/api/v1/safes/%s/multisig-transactions/", c.baseURL, safe.Hex())

	reqBody, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("marshal proposal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &types.APIError{Service: "safe service", Status: resp.StatusCode, Body: string(body)}
	}

	ProposalsCreatedTotal.Inc()
	c.logger.Info("safe-proposal-created",
		zap.String("safe", proposal.Safe),
		zap.String("safe-tx-hash", proposal.SafeTxHash),
		zap.Int64("nonce", proposal.Nonce))

	return nil
}
