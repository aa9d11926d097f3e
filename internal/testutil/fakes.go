package testutil

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mselser95/cowtrader/internal/storage"
	"github.com/mselser95/cowtrader/internal/tokens"
	"github.com/mselser95/cowtrader/pkg/types"
)

// FakeChain is an in-memory chain state for flow tests.
type FakeChain struct {
	Balances   map[common.Address]*big.Int // keyed by owner
	Allowances map[common.Address]*big.Int // keyed by owner

	SentOps   []*types.OnchainOperation
	WaitCalls int

	BalanceCalls   int
	AllowanceCalls int
}

// NewFakeChain creates an empty fake chain.
func NewFakeChain() *FakeChain {
	return &FakeChain{
		Balances:   make(map[common.Address]*big.Int),
		Allowances: make(map[common.Address]*big.Int),
	}
}

// TokenBalance returns the configured balance for owner (zero when unset).
func (f *FakeChain) TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	f.BalanceCalls++
	if b, ok := f.Balances[owner]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

// Allowance returns the configured allowance for owner (zero when unset).
func (f *FakeChain) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	f.AllowanceCalls++
	if a, ok := f.Allowances[owner]; ok {
		return new(big.Int).Set(a), nil
	}
	return big.NewInt(0), nil
}

// ApproveOperation builds a fake approve operation.
func (f *FakeChain) ApproveOperation(token, spender common.Address, symbol string) (*types.OnchainOperation, error) {
	return &types.OnchainOperation{
		Description: fmt.Sprintf("Approve vault relayer to transfer %s", symbol),
		Tx: types.TxRequest{
			To:    token,
			Value: big.NewInt(0),
			Data:  []byte{0x09, 0x5e, 0xa7, 0xb3}, // approve selector
		},
	}, nil
}

// SendOperation records the operation and returns a deterministic hash.
func (f *FakeChain) SendOperation(ctx context.Context, key *ecdsa.PrivateKey, op *types.OnchainOperation) (common.Hash, error) {
	f.SentOps = append(f.SentOps, op)
	return common.BytesToHash([]byte(fmt.Sprintf("tx-%d", len(f.SentOps)))), nil
}

// WaitMined always succeeds immediately.
func (f *FakeChain) WaitMined(ctx context.Context, txHash common.Hash, confirmations uint64, timeout time.Duration) (*ethtypes.Receipt, error) {
	f.WaitCalls++
	return &ethtypes.Receipt{
		Status:      ethtypes.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(1),
	}, nil
}

// FakeTokens resolves every token to a fixed metadata.
type FakeTokens struct {
	Symbol   string
	Decimals uint8
	Calls    int
}

// Resolve returns the fixed metadata.
func (f *FakeTokens) Resolve(ctx context.Context, token common.Address) (*tokens.Metadata, error) {
	f.Calls++
	return &tokens.Metadata{Symbol: f.Symbol, Decimals: f.Decimals}, nil
}

// FakeStorage records submissions in memory.
type FakeStorage struct {
	Records []*storage.Record
}

// StoreSubmission appends the record.
func (f *FakeStorage) StoreSubmission(ctx context.Context, rec *storage.Record) error {
	f.Records = append(f.Records, rec)
	return nil
}

// ListSubmissions returns the stored records.
func (f *FakeStorage) ListSubmissions(ctx context.Context, limit int) ([]*storage.Record, error) {
	if limit > len(f.Records) {
		limit = len(f.Records)
	}
	return f.Records[:limit], nil
}

// Close is a no-op.
func (f *FakeStorage) Close() error {
	return nil
}
