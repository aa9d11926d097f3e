package flow

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mselser95/cowtrader/pkg/types"
)

const setPreSignatureABI = `[{"inputs":[{"name":"orderUid","type":"bytes"},{"name":"signed","type":"bool"}],"name":"setPreSignature","outputs":[],"type":"function"}]`

// presignOperation builds the settlement call that marks an order uid
// as authorized on-chain.
func presignOperation(settlement common.Address, orderUID string) (*types.OnchainOperation, error) {
	uid, err := hexutil.Decode(orderUID)
	if err != nil {
		return nil, fmt.Errorf("decode order uid: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(setPreSignatureABI))
	if err != nil {
		return nil, fmt.Errorf("parse settlement ABI: %w", err)
	}

	data, err := parsedABI.Pack("setPreSignature", uid, true)
	if err != nil {
		return nil, fmt.Errorf("pack setPreSignature: %w", err)
	}

	return &types.OnchainOperation{
		Description: fmt.Sprintf("Pre-sign order %s", orderUID),
		Tx: types.TxRequest{
			To:    settlement,
			Value: big.NewInt(0),
			Data:  data,
		},
	}, nil
}
