package testutil

import "github.com/mselser95/cowtrader/pkg/types"

// Well-known mainnet token addresses used by fixtures.
const (
	FixtureWETH = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	FixtureUSDC = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	FixtureSafe = "0x1111111111111111111111111111111111111111"
)

// NewOrderDefinition builds a minimal valid order definition for the
// given account kind.
func NewOrderDefinition(kind types.AccountKind) *types.OrderDefinition {
	def := &types.OrderDefinition{
		ChainID: 1,
		Account: types.AccountConfig{AccountType: kind},
		Order: types.OrderParams{
			SellToken:           FixtureWETH,
			BuyToken:            FixtureUSDC,
			SellAmountBeforeFee: "1000000000000000000",
		},
	}

	if kind.IsSafe() {
		def.Account.SafeAddress = FixtureSafe
	}

	return def
}
