package tokens

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/pkg/cache"
)

const metadataTTL = 1 * time.Hour

// Metadata is the display information for an ERC-20 token.
type Metadata struct {
	Symbol   string
	Decimals uint8
}

// ChainReader is the subset of the chain client the resolver needs.
type ChainReader interface {
	TokenSymbol(ctx context.Context, token common.Address) (string, error)
	TokenDecimals(ctx context.Context, token common.Address) (uint8, error)
}

// Resolver looks up token symbol and decimals, caching results so
// repeated runs against the same token pair stay cheap.
type Resolver struct {
	chainID int64
	reader  ChainReader
	cache   cache.Cache
	logger  *zap.Logger
}

// NewResolver creates a new token metadata resolver.
func NewResolver(chainID int64, reader ChainReader, c cache.Cache, logger *zap.Logger) *Resolver {
	return &Resolver{
		chainID: chainID,
		reader:  reader,
		cache:   c,
		logger:  logger,
	}
}

// Resolve returns the metadata for token, from cache when possible.
func (r *Resolver) Resolve(ctx context.Context, token common.Address) (*Metadata, error) {
	key := fmt.Sprintf("token:%d:%s", r.chainID, token.Hex())

	if cached, found := r.cache.Get(key); found {
		if meta, ok := cached.(*Metadata); ok {
			return meta, nil
		}
	}

	symbol, err := r.reader.TokenSymbol(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve symbol: %w", err)
	}

	decimals, err := r.reader.TokenDecimals(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve decimals: %w", err)
	}

	meta := &Metadata{Symbol: symbol, Decimals: decimals}
	r.cache.Set(key, meta, metadataTTL)

	r.logger.Debug("token-resolved",
		zap.String("token", token.Hex()),
		zap.String("symbol", symbol),
		zap.Uint8("decimals", decimals))

	return meta, nil
}

// FormatAmount renders a raw token amount as a decimal string using
// integer arithmetic only. Amounts can exceed the float53 range.
func FormatAmount(amount *big.Int, decimals uint8) string {
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(amount, divisor, new(big.Int))

	frac := strings.TrimRight(fmt.Sprintf("%0*s", decimals, rem.String()), "0")
	if frac == "" {
		return quo.String()
	}

	return fmt.Sprintf("%s.%s", quo.String(), frac)
}
