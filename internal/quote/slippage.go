package quote

import (
	"fmt"
	"math/big"

	"github.com/mselser95/cowtrader/pkg/types"
)

const bipsDenominator = 10000

// DefaultSlippageBips is applied when neither the order file nor the
// environment overrides the tolerance (100 bips = 1%).
const DefaultSlippageBips = 100

// ResolveSlippageBips picks the slippage tolerance for the run: the
// order file wins over the configured default. Tolerances at or above
// 100% are rejected outright; a zero or negative limit price can never
// be what the trader meant.
func ResolveSlippageBips(def *types.OrderDefinition, configDefault int64) (int64, error) {
	bips := configDefault
	if def.Order.SlippageToleranceBips != "" {
		parsed, err := types.ParseUint(def.Order.SlippageToleranceBips)
		if err != nil {
			return 0, &types.ConfigError{Field: "order.slippageToleranceBips", Reason: err.Error()}
		}

		if !parsed.IsInt64() {
			return 0, &types.ConfigError{Field: "order.slippageToleranceBips", Reason: "value out of range"}
		}

		bips = parsed.Int64()
	}

	if bips < 0 || bips >= bipsDenominator {
		return 0, &types.ConfigError{
			Field:  "order.slippageToleranceBips",
			Reason: fmt.Sprintf("must be in [0, %d), got %d", bipsDenominator, bips),
		}
	}

	return bips, nil
}

// ApplySlippage converts a quoted buy amount into the executable limit
// amount: floor(buyAmount * (10000 - bips) / 10000), exact integer
// arithmetic throughout. Amounts routinely exceed the float53 range.
func ApplySlippage(buyAmountQuote *big.Int, bips int64) (*big.Int, error) {
	if bips < 0 || bips >= bipsDenominator {
		return nil, fmt.Errorf("slippage tolerance out of range: %d bips", bips)
	}

	protected := new(big.Int).Mul(buyAmountQuote, big.NewInt(bipsDenominator-bips))
	return protected.Quo(protected, big.NewInt(bipsDenominator)), nil
}
