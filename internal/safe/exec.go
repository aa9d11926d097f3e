package safe

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/mselser95/cowtrader/pkg/types"
)

const execTransactionABI = `[{"inputs":[
	{"name":"to","type":"address"},
	{"name":"value","type":"uint256"},
	{"name":"data","type":"bytes"},
	{"name":"operation","type":"uint8"},
	{"name":"safeTxGas","type":"uint256"},
	{"name":"baseGas","type":"uint256"},
	{"name":"gasPrice","type":"uint256"},
	{"name":"gasToken","type":"address"},
	{"name":"refundReceiver","type":"address"},
	{"name":"signatures","type":"bytes"}
],"name":"execTransaction","outputs":[{"name":"","type":"bool"}],"stateMutability":"payable","type":"function"}]`

// ExecOperation turns the transaction plus the collected owner
// signatures into the on-chain call that executes it. Only valid once
// the signature threshold is met; with a threshold of 1 the proposer's
// own signature suffices.
func (t *Tx) ExecOperation(safe common.Address, signatures []byte) (*types.OnchainOperation, error) {
	parsedABI, err := abi.JSON(strings.NewReader(execTransactionABI))
	if err != nil {
		return nil, fmt.Errorf("parse safe ABI: %w", err)
	}

	data, err := parsedABI.Pack("execTransaction",
		t.To,
		t.Value,
		t.Data,
		t.Operation,
		big.NewInt(0),
		big.NewInt(0),
		big.NewInt(0),
		common.Address{},
		common.Address{},
		signatures,
	)
	if err != nil {
		return nil, fmt.Errorf("pack execTransaction: %w", err)
	}

	return &types.OnchainOperation{
		Description: fmt.Sprintf("Execute Safe transaction with nonce %d", t.Nonce),
		Tx: types.TxRequest{
			To:    safe,
			Value: big.NewInt(0),
			Data:  data,
		},
	}, nil
}
