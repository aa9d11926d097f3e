package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TxRequest is an unsigned transaction request.
type TxRequest struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// OnchainOperation is one preparatory on-chain step. Operations form an
// ordered sequence: an approval must precede the pre-signature that
// relies on the allowance it grants, so the order of the slice is the
// order of execution (or of bundling into a single Safe transaction).
type OnchainOperation struct {
	Description string
	Tx          TxRequest
}
