package flow

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/internal/networks"
	"github.com/mselser95/cowtrader/pkg/types"
)

// planPreparation inspects on-chain state and returns the preparatory
// operations the order needs: nothing, or exactly one unlimited
// approval of the vault relayer. Read-only and idempotent; re-running
// against unchanged state yields the same decision.
func (f *Flow) planPreparation(
	ctx context.Context,
	fromAccount common.Address,
	sellToken common.Address,
	sellAmountBeforeFee *big.Int,
	sellAmount *big.Int,
) ([]*types.OnchainOperation, error) {
	meta, err := f.tokens.Resolve(ctx, sellToken)
	if err != nil {
		return nil, err
	}

	// Balance first: an unfundable order must fail before any allowance
	// check or operation is constructed.
	balance, err := f.chain.TokenBalance(ctx, sellToken, fromAccount)
	if err != nil {
		return nil, err
	}

	if balance.Cmp(sellAmountBeforeFee) < 0 {
		return nil, &types.InsufficientBalanceError{
			Token:    meta.Symbol,
			Required: sellAmountBeforeFee,
			Actual:   balance,
		}
	}

	allowance, err := f.chain.Allowance(ctx, sellToken, fromAccount, networks.VaultRelayer)
	if err != nil {
		return nil, err
	}

	if allowance.Cmp(sellAmount) >= 0 {
		f.logger.Info("allowance-sufficient",
			zap.String("token", meta.Symbol),
			zap.String("allowance", allowance.String()))
		return nil, nil
	}

	f.logger.Info("approval-needed",
		zap.String("token", meta.Symbol),
		zap.String("allowance", allowance.String()),
		zap.String("required", sellAmount.String()))

	op, err := f.chain.ApproveOperation(sellToken, networks.VaultRelayer, meta.Symbol)
	if err != nil {
		return nil, err
	}

	return []*types.OnchainOperation{op}, nil
}
