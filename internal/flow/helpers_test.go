package flow_test

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

func addr(hex string) common.Address {
	return common.HexToAddress(hex)
}

func amount(dec string) *big.Int {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("bad test amount " + dec)
	}
	return n
}
