package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mselser95/cowtrader/internal/networks"
	"github.com/mselser95/cowtrader/internal/prompt"
	"github.com/mselser95/cowtrader/internal/safe"
	"github.com/mselser95/cowtrader/pkg/types"
)

// coordinateSafe authorizes the order through the Safe: the order is
// posted as a pre-sign order, then the pre-signature transaction is
// bundled with any preparatory operations into exactly one Safe
// transaction and proposed to the transaction service. Bundling is the
// point of coordinating at all: approval and pre-signature land
// atomically.
func (f *Flow) coordinateSafe(ctx context.Context, order *types.RawOrder, ops []*types.OnchainOperation, safeAddr common.Address) (*Result, error) {
	info, err := f.safes.GetSafeInfo(ctx, safeAddr)
	if err != nil {
		return nil, err
	}

	fmt.Printf("\nSafe %s (v%s)\n", info.Address, info.Version)
	fmt.Printf("  Owners:    %s\n", strings.Join(info.Owners, ", "))
	fmt.Printf("  Threshold: %d\n", info.Threshold)
	fmt.Printf("  Nonce:     %d\n", info.Nonce)

	// The order must exist in the book before the on-chain signal can
	// refer to it. For pre-sign orders the signature field carries the
	// trading account's own address.
	orderUID, err := f.book.CreateOrder(ctx, &types.OrderSubmission{
		RawOrder:      order,
		From:          safeAddr.Hex(),
		Signature:     safeAddr.Hex(),
		SigningScheme: types.SchemePresign,
	})
	if err != nil {
		return nil, err
	}

	presignOp, err := presignOperation(networks.Settlement, orderUID)
	if err != nil {
		return nil, err
	}

	// The pre-signature goes last: an approval in the sequence must
	// take effect before settlement may pull funds.
	ops = append(ops, presignOp)

	bundle, err := safe.BundleOperations(ops, networks.MultiSendCallOnly, info.Nonce)
	if err != nil {
		return nil, err
	}

	safeTxHash, err := bundle.Hash(f.network.ChainID, safeAddr)
	if err != nil {
		return nil, err
	}

	signature, err := f.signer.SignHash(safeTxHash.Bytes())
	if err != nil {
		return nil, err
	}

	err = f.safes.ProposeTransaction(ctx, safeAddr, bundle.Proposal(safeAddr, safeTxHash, f.signer.Address(), signature))
	if err != nil {
		return nil, err
	}

	result := &Result{
		OrderUID:    orderUID,
		ExplorerURL: f.network.ExplorerOrderURL(orderUID),
		Proposed:    true,
	}

	if info.Threshold > 1 {
		remaining := info.Threshold - 1
		fmt.Printf("\nProposal created. %d more owner signature(s) required before execution.\n", remaining)
		result.RemainingSignatures = remaining
		return result, nil
	}

	// A threshold of 1 means the proposer's signature already satisfies
	// the Safe; offer to execute right away.
	err = prompt.Gate(f.prompter, "Threshold is 1, execute the Safe transaction now?")
	if err != nil {
		return nil, err
	}

	sigBytes, err := hexutil.Decode(signature)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}

	execOp, err := bundle.ExecOperation(safeAddr, sigBytes)
	if err != nil {
		return nil, err
	}

	txHash, err := f.chain.SendOperation(ctx, f.signer.PrivateKey(), execOp)
	if err != nil {
		return nil, err
	}

	_, err = f.chain.WaitMined(ctx, txHash, f.cfg.TxConfirmations, f.cfg.TxWaitTimeout)
	if err != nil {
		return nil, err
	}

	result.Executed = true
	return result, nil
}
