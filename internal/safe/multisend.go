package safe

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/mselser95/cowtrader/pkg/types"
)

const multiSendABI = `[{"inputs":[{"name":"transactions","type":"bytes"}],"name":"multiSend","outputs":[],"stateMutability":"payable","type":"function"}]`

// multiSendData encodes an ordered operation sequence into one
// multiSend(bytes) call. Each packed entry is
// operation (1) ++ to (20) ++ value (32) ++ dataLength (32) ++ data,
// concatenated in sequence order.
func multiSendData(ops []*types.OnchainOperation) ([]byte, error) {
	var packed bytes.Buffer
	for _, op := range ops {
		packed.WriteByte(OperationCall)
		packed.Write(op.Tx.To.Bytes())
		packed.Write(common.LeftPadBytes(op.Tx.Value.Bytes(), 32))
		packed.Write(common.LeftPadBytes(big.NewInt(int64(len(op.Tx.Data))).Bytes(), 32))
		packed.Write(op.Tx.Data)
	}

	parsedABI, err := abi.JSON(strings.NewReader(multiSendABI))
	if err != nil {
		return nil, fmt.Errorf("parse multisend ABI: %w", err)
	}

	data, err := parsedABI.Pack("multiSend", packed.Bytes())
	if err != nil {
		return nil, fmt.Errorf("pack multisend call: %w", err)
	}

	return data, nil
}
