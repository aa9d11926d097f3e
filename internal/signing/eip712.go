package signing

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/mselser95/cowtrader/pkg/types"
)

// EIP-712 domain of the settlement contract. The domain is what ties a
// signature to one chain and one protocol deployment.
const (
	domainName    = "Gnosis Protocol"
	domainVersion = "v2"
)

//nolint:gochecknoglobals // static type definitions
var orderTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Order": {
		{Name: "sellToken", Type: "address"},
		{Name: "buyToken", Type: "address"},
		{Name: "receiver", Type: "address"},
		{Name: "sellAmount", Type: "uint256"},
		{Name: "buyAmount", Type: "uint256"},
		{Name: "validTo", Type: "uint32"},
		{Name: "appData", Type: "bytes32"},
		{Name: "feeAmount", Type: "uint256"},
		{Name: "kind", Type: "string"},
		{Name: "partiallyFillable", Type: "bool"},
		{Name: "sellTokenBalance", Type: "string"},
		{Name: "buyTokenBalance", Type: "string"},
	},
}

// orderTypedData assembles the EIP-712 payload for a raw order.
func orderTypedData(chainID int64, settlement common.Address, order *types.RawOrder) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       orderTypes,
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              domainName,
			Version:           domainVersion,
			ChainId:           math.NewHexOrDecimal256(chainID),
			VerifyingContract: settlement.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"sellToken":         order.SellToken,
			"buyToken":          order.BuyToken,
			"receiver":          order.Receiver,
			"sellAmount":        order.SellAmount,
			"buyAmount":         order.BuyAmount,
			"validTo":           strconv.FormatInt(order.ValidTo, 10),
			"appData":           order.AppData,
			"feeAmount":         order.FeeAmount,
			"kind":              order.Kind,
			"partiallyFillable": order.PartiallyFillable,
			"sellTokenBalance":  order.SellTokenBalance,
			"buyTokenBalance":   order.BuyTokenBalance,
		},
	}
}

// SignOrder produces the EIP-712 signature over a raw order that the
// order book accepts under signingScheme eip712.
func (w *Wallet) SignOrder(chainID int64, settlement common.Address, order *types.RawOrder) (string, error) {
	typedData := orderTypedData(chainID, settlement, order)

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return "", fmt.Errorf("hash order: %w", err)
	}

	return w.SignHash(hash)
}
