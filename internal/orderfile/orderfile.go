package orderfile

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goccy/go-json"

	"github.com/mselser95/cowtrader/pkg/types"
)

// Load reads and validates an order definition file. Every
// configuration error is caught here, before any network call.
// fallbackChainID fills in when the file has no chainId.
func Load(path string, fallbackChainID int64) (*types.OrderDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read order file: %w", err)
	}

	var def types.OrderDefinition
	err = json.Unmarshal(raw, &def)
	if err != nil {
		return nil, fmt.Errorf("parse order file: %w", err)
	}

	if def.ChainID == 0 {
		def.ChainID = fallbackChainID
	}

	err = Validate(&def)
	if err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate checks an order definition for configuration errors.
func Validate(def *types.OrderDefinition) error {
	if def.ChainID == 0 {
		return &types.ConfigError{Field: "chainId", Reason: "missing from order file and CHAIN_ID unset"}
	}

	err := def.Account.Validate()
	if err != nil {
		return err
	}

	if def.Account.SafeAddress != "" && !common.IsHexAddress(def.Account.SafeAddress) {
		return &types.ConfigError{Field: "account.safeAddress", Reason: fmt.Sprintf("not an address: %q", def.Account.SafeAddress)}
	}

	if !common.IsHexAddress(def.Order.SellToken) {
		return &types.ConfigError{Field: "order.sellToken", Reason: fmt.Sprintf("not an address: %q", def.Order.SellToken)}
	}

	if !common.IsHexAddress(def.Order.BuyToken) {
		return &types.ConfigError{Field: "order.buyToken", Reason: fmt.Sprintf("not an address: %q", def.Order.BuyToken)}
	}

	if def.Order.Receiver != "" && !common.IsHexAddress(def.Order.Receiver) {
		return &types.ConfigError{Field: "order.receiver", Reason: fmt.Sprintf("not an address: %q", def.Order.Receiver)}
	}

	sellAmount, err := types.ParseUint(def.Order.SellAmountBeforeFee)
	if err != nil {
		return &types.ConfigError{Field: "order.sellAmountBeforeFee", Reason: err.Error()}
	}

	if sellAmount.Sign() == 0 {
		return &types.ConfigError{Field: "order.sellAmountBeforeFee", Reason: "must be positive"}
	}

	return nil
}
