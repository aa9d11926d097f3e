package types

import (
	"fmt"
	"math/big"
)

// Order kinds and balance sources accepted by the order book API.
const (
	KindSell = "sell"

	BalanceERC20 = "erc20"

	PriceQualityOptimal = "optimal"
)

// Signing schemes accepted by the order book API.
const (
	SchemeEIP712  = "eip712"
	SchemePresign = "presign"
	SchemeEIP1271 = "eip1271"
)

// OrderDefinition is the order file loaded at startup. It is immutable
// for the duration of the run.
type OrderDefinition struct {
	ChainID int64         `json:"chainId"`
	Account AccountConfig `json:"account"`
	Order   OrderParams   `json:"order"`
}

// OrderParams is the user-supplied part of the order.
// Amounts are decimal strings so they survive JSON round-trips above
// the float53 range.
type OrderParams struct {
	SellToken             string `json:"sellToken"`
	BuyToken              string `json:"buyToken"`
	SellAmountBeforeFee   string `json:"sellAmountBeforeFee"`
	BuyAmount             string `json:"buyAmount,omitempty"`
	PartiallyFillable     bool   `json:"partiallyFillable,omitempty"`
	AppData               string `json:"appData,omitempty"`
	Receiver              string `json:"receiver,omitempty"`
	SlippageToleranceBips string `json:"slippageToleranceBips,omitempty"`
}

// QuoteQuery is the request sent to the quoting endpoint. Single-use,
// built once per run.
type QuoteQuery struct {
	SellToken           string `json:"sellToken"`
	BuyToken            string `json:"buyToken"`
	SellAmountBeforeFee string `json:"sellAmountBeforeFee"`
	Kind                string `json:"kind"`
	PartiallyFillable   bool   `json:"partiallyFillable"`
	SellTokenBalance    string `json:"sellTokenBalance"`
	BuyTokenBalance     string `json:"buyTokenBalance"`
	From                string `json:"from"`
	Receiver            string `json:"receiver"`
	AppData             string `json:"appData"`
	ValidTo             int64  `json:"validTo"`
}

// QuoteResult is the priced quote returned by the quoting endpoint.
type QuoteResult struct {
	SellAmount string `json:"sellAmount"`
	BuyAmount  string `json:"buyAmount"`
	FeeAmount  string `json:"feeAmount"`
}

// RawOrder is the exact order schema sent for signing and submission.
// It deliberately has no sellAmountBeforeFee field: that is a
// quoting-only parameter. ToRawOrder is the only way to build one from
// a quote.
type RawOrder struct {
	SellToken         string `json:"sellToken"`
	BuyToken          string `json:"buyToken"`
	SellAmount        string `json:"sellAmount"`
	BuyAmount         string `json:"buyAmount"`
	FeeAmount         string `json:"feeAmount"`
	Kind              string `json:"kind"`
	PartiallyFillable bool   `json:"partiallyFillable"`
	SellTokenBalance  string `json:"sellTokenBalance"`
	BuyTokenBalance   string `json:"buyTokenBalance"`
	Receiver          string `json:"receiver"`
	AppData           string `json:"appData"`
	ValidTo           int64  `json:"validTo"`
	PriceQuality      string `json:"priceQuality"`
}

// ToRawOrder converts a quote query plus quoted amounts into the order
// schema. buyAmount must already have slippage protection applied.
func (q *QuoteQuery) ToRawOrder(sellAmount, buyAmount, feeAmount string) *RawOrder {
	return &RawOrder{
		SellToken:         q.SellToken,
		BuyToken:          q.BuyToken,
		SellAmount:        sellAmount,
		BuyAmount:         buyAmount,
		FeeAmount:         feeAmount,
		Kind:              q.Kind,
		PartiallyFillable: q.PartiallyFillable,
		SellTokenBalance:  q.SellTokenBalance,
		BuyTokenBalance:   q.BuyTokenBalance,
		Receiver:          q.Receiver,
		AppData:           q.AppData,
		ValidTo:           q.ValidTo,
		PriceQuality:      PriceQualityOptimal,
	}
}

// OrderSubmission is the payload posted to the order book.
type OrderSubmission struct {
	*RawOrder
	From          string `json:"from"`
	Signature     string `json:"signature"`
	SigningScheme string `json:"signingScheme"`
}

// ParseUint parses a non-negative decimal integer string into a big.Int.
func ParseUint(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid unsigned integer %q", s)
	}

	if n.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}

	return n, nil
}
