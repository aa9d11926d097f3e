package safe

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/mselser95/cowtrader/pkg/types"
)

// Safe transaction operation kinds.
const (
	OperationCall         uint8 = 0
	OperationDelegateCall uint8 = 1
)

// Tx is one Safe transaction awaiting threshold approval.
type Tx struct {
	To        common.Address
	Value     *big.Int
	Data      []byte
	Operation uint8
	Nonce     int64
}

//nolint:gochecknoglobals // static type definitions
var safeTxTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"SafeTx": {
		{Name: "to", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "data", Type: "bytes"},
		{Name: "operation", Type: "uint8"},
		{Name: "safeTxGas", Type: "uint256"},
		{Name: "baseGas", Type: "uint256"},
		{Name: "gasPrice", Type: "uint256"},
		{Name: "gasToken", Type: "address"},
		{Name: "refundReceiver", Type: "address"},
		{Name: "nonce", Type: "uint256"},
	},
}

// Hash computes the EIP-712 hash the Safe contract verifies owner
// signatures against. Gas fields are zero: execution is paid by
// whoever triggers it, never refunded from the Safe.
func (t *Tx) Hash(chainID int64, safe common.Address) (common.Hash, error) {
	typedData := apitypes.TypedData{
		Types:       safeTxTypes,
		PrimaryType: "SafeTx",
		Domain: apitypes.TypedDataDomain{
			ChainId:           math.NewHexOrDecimal256(chainID),
			VerifyingContract: safe.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"to":             t.To.Hex(),
			"value":          t.Value.String(),
			"data":           hexutil.Encode(t.Data),
			"operation":      strconv.Itoa(int(t.Operation)),
			"safeTxGas":      "0",
			"baseGas":        "0",
			"gasPrice":       "0",
			"gasToken":       common.Address{}.Hex(),
			"refundReceiver": common.Address{}.Hex(),
			"nonce":          strconv.FormatInt(t.Nonce, 10),
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("hash safe tx: %w", err)
	}

	return common.BytesToHash(hash), nil
}

// Proposal converts the transaction into the service wire format.
func (t *Tx) Proposal(safe common.Address, safeTxHash common.Hash, sender common.Address, signature string) *TxProposal {
	return &TxProposal{
		Safe:           safe.Hex(),
		To:             t.To.Hex(),
		Value:          t.Value.String(),
		Data:           hexutil.Encode(t.Data),
		Operation:      t.Operation,
		GasToken:       common.Address{}.Hex(),
		SafeTxGas:      0,
		BaseGas:        0,
		GasPrice:       "0",
		RefundReceiver: common.Address{}.Hex(),
		Nonce:          t.Nonce,
		SafeTxHash:     safeTxHash.Hex(),
		Sender:         sender.Hex(),
		Signature:      signature,
		Origin:         "cowtrader",
	}
}

// BundleOperations folds an ordered operation sequence into exactly one
// Safe transaction, preserving the sequence order. A single operation
// becomes a plain call; several are routed through MultiSendCallOnly as
// a delegatecall so they execute atomically.
func BundleOperations(ops []*types.OnchainOperation, multisend common.Address, nonce int64) (*Tx, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("no operations to bundle")
	}

	if len(ops) == 1 {
		return &Tx{
			To:        ops[0].Tx.To,
			Value:     new(big.Int).Set(ops[0].Tx.Value),
			Data:      ops[0].Tx.Data,
			Operation: OperationCall,
			Nonce:     nonce,
		}, nil
	}

	data, err := multiSendData(ops)
	if err != nil {
		return nil, err
	}

	return &Tx{
		To:        multisend,
		Value:     big.NewInt(0),
		Data:      data,
		Operation: OperationDelegateCall,
		Nonce:     nonce,
	}, nil
}
