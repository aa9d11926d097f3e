package chain

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestMaxUint256(t *testing.T) {
	// 2^256 - 1, i.e. 32 bytes of 0xff.
	raw := MaxUint256.Bytes()
	if len(raw) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(raw))
	}

	if !bytes.Equal(raw, bytes.Repeat([]byte{0xff}, 32)) {
		t.Errorf("unexpected value %x", raw)
	}
}

func TestApproveOperation(t *testing.T) {
	token := common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	spender := common.HexToAddress("0xC92E8bdf79f0507f65a392b0ab4667716BFE0110")

	client := &Client{}
	op, err := client.ApproveOperation(token, spender, "WETH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if op.Tx.To != token {
		t.Errorf("approve must target the token contract, got %s", op.Tx.To.Hex())
	}
	if op.Tx.Value.Sign() != 0 {
		t.Errorf("approve carries no value, got %s", op.Tx.Value)
	}

	// approve(address,uint256) selector, spender, then the unlimited
	// amount.
	if !bytes.Equal(op.Tx.Data[:4], []byte{0x09, 0x5e, 0xa7, 0xb3}) {
		t.Errorf("unexpected selector %x", op.Tx.Data[:4])
	}
	if !bytes.Contains(op.Tx.Data, spender.Bytes()) {
		t.Error("spender missing from call data")
	}
	if !bytes.Contains(op.Tx.Data, MaxUint256.Bytes()) {
		t.Error("approval amount is not unlimited")
	}

	if op.Description != "Approve vault relayer to transfer WETH" {
		t.Errorf("unexpected description %q", op.Description)
	}
}
