package flow

import (
	"context"
	"fmt"

	"github.com/mselser95/cowtrader/internal/networks"
	"github.com/mselser95/cowtrader/internal/prompt"
	"github.com/mselser95/cowtrader/pkg/types"
)

// submitEOA authorizes the order with a direct EIP-712 signature. Any
// preparatory operations are each confirmed, sent and awaited first; a
// declined prompt aborts the whole run, because once planned the
// operations are not optional.
func (f *Flow) submitEOA(ctx context.Context, order *types.RawOrder, ops []*types.OnchainOperation) (*Result, error) {
	for _, op := range ops {
		err := prompt.Gate(f.prompter, fmt.Sprintf("Send transaction: %s?", op.Description))
		if err != nil {
			return nil, err
		}

		txHash, err := f.chain.SendOperation(ctx, f.signer.PrivateKey(), op)
		if err != nil {
			return nil, err
		}

		_, err = f.chain.WaitMined(ctx, txHash, f.cfg.TxConfirmations, f.cfg.TxWaitTimeout)
		if err != nil {
			return nil, err
		}
	}

	err := prompt.Gate(f.prompter, "Post the order to the order book?")
	if err != nil {
		return nil, err
	}

	signature, err := f.signer.SignOrder(f.network.ChainID, networks.Settlement, order)
	if err != nil {
		return nil, err
	}

	orderUID, err := f.book.CreateOrder(ctx, &types.OrderSubmission{
		RawOrder:      order,
		From:          f.signer.Address().Hex(),
		Signature:     signature,
		SigningScheme: types.SchemeEIP712,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		OrderUID:    orderUID,
		ExplorerURL: f.network.ExplorerOrderURL(orderUID),
	}, nil
}
