package flow

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/internal/networks"
	"github.com/mselser95/cowtrader/internal/prompt"
	"github.com/mselser95/cowtrader/internal/quote"
	"github.com/mselser95/cowtrader/internal/safe"
	"github.com/mselser95/cowtrader/internal/storage"
	"github.com/mselser95/cowtrader/internal/tokens"
	"github.com/mselser95/cowtrader/pkg/config"
	"github.com/mselser95/cowtrader/pkg/types"
)

// ChainClient is the on-chain surface the flow needs.
type ChainClient interface {
	TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	ApproveOperation(token, spender common.Address, symbol string) (*types.OnchainOperation, error)
	SendOperation(ctx context.Context, key *ecdsa.PrivateKey, op *types.OnchainOperation) (common.Hash, error)
	WaitMined(ctx context.Context, txHash common.Hash, confirmations uint64, timeout time.Duration) (*ethtypes.Receipt, error)
}

// OrderBook is the remote quoting and order submission surface.
type OrderBook interface {
	GetQuote(ctx context.Context, query *types.QuoteQuery) (*types.QuoteResult, error)
	CreateOrder(ctx context.Context, submission *types.OrderSubmission) (string, error)
}

// SafeService is the Safe transaction service surface.
type SafeService interface {
	GetSafeInfo(ctx context.Context, safeAddr common.Address) (*safe.Info, error)
	ProposeTransaction(ctx context.Context, safeAddr common.Address, proposal *safe.TxProposal) error
}

// TokenResolver resolves token display metadata.
type TokenResolver interface {
	Resolve(ctx context.Context, token common.Address) (*tokens.Metadata, error)
}

// Signer is the signing credential held for the run.
type Signer interface {
	Address() common.Address
	PrivateKey() *ecdsa.PrivateKey
	SignOrder(chainID int64, settlement common.Address, order *types.RawOrder) (string, error)
	SignHash(hash []byte) (string, error)
}

// Flow drives one order from definition to submission. Everything it
// touches is injected so tests can run the whole lifecycle against
// fakes.
type Flow struct {
	cfg      *config.Config
	network  *networks.Network
	chain    ChainClient
	book     OrderBook
	safes    SafeService
	tokens   TokenResolver
	signer   Signer
	prompter prompt.Prompter
	store    storage.Storage
	logger   *zap.Logger
	now      func() time.Time
}

// Config wires the flow's collaborators.
type Config struct {
	AppConfig *config.Config
	Network   *networks.Network
	Chain     ChainClient
	OrderBook OrderBook
	Safes     SafeService
	Tokens    TokenResolver
	Signer    Signer
	Prompter  prompt.Prompter
	Store     storage.Storage
	Logger    *zap.Logger
	Now       func() time.Time
}

// New creates a flow.
func New(cfg *Config) *Flow {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Flow{
		cfg:      cfg.AppConfig,
		network:  cfg.Network,
		chain:    cfg.Chain,
		book:     cfg.OrderBook,
		safes:    cfg.Safes,
		tokens:   cfg.Tokens,
		signer:   cfg.Signer,
		prompter: cfg.Prompter,
		store:    cfg.Store,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Result is the outcome of a completed run.
type Result struct {
	OrderUID    string
	ExplorerURL string

	// Safe coordination outcome. Executed is true when the proposal was
	// also executed on-chain (threshold 1); RemainingSignatures counts
	// the approvals still missing otherwise.
	Proposed            bool
	Executed            bool
	RemainingSignatures int
}

// Run executes the full order lifecycle: quote, protect, plan, authorize,
// submit. It is strictly sequential; the only cancellation points are
// the confirmation prompts.
func (f *Flow) Run(ctx context.Context, def *types.OrderDefinition) (*Result, error) {
	fromAccount, err := f.resolveTradingAccount(def)
	if err != nil {
		return nil, err
	}

	// Quoting.
	query := quote.BuildQuery(def, fromAccount.Hex(), f.cfg.AppData, f.now())
	f.logger.Info("quote-request", zap.Any("query", query))

	quoteResult, err := f.book.GetQuote(ctx, query)
	if err != nil {
		return nil, err
	}

	// Price protection.
	rawOrder, sellAmount, err := f.protectPrice(def, query, quoteResult)
	if err != nil {
		return nil, err
	}
	f.logger.Info("raw-order", zap.Any("order", rawOrder))

	// Preparatory planning.
	sellAmountBeforeFee, err := types.ParseUint(def.Order.SellAmountBeforeFee)
	if err != nil {
		return nil, &types.ConfigError{Field: "order.sellAmountBeforeFee", Reason: err.Error()}
	}

	sellToken := common.HexToAddress(def.Order.SellToken)
	ops, err := f.planPreparation(ctx, fromAccount, sellToken, sellAmountBeforeFee, sellAmount)
	if err != nil {
		return nil, err
	}
	f.logOperations(ops)

	// Authorization, dispatched on the account model. The switch is
	// exhaustive over the closed set; validation already rejected
	// anything else.
	var result *Result
	switch def.Account.AccountType {
	case types.AccountEOA:
		result, err = f.submitEOA(ctx, rawOrder, ops)

	case types.AccountSafePresign:
		result, err = f.coordinateSafe(ctx, rawOrder, ops, common.HexToAddress(def.Account.SafeAddress))

	case types.AccountSafeEIP1271:
		if len(ops) == 0 {
			// The gasless EIP-1271 submission path has no wire contract
			// yet. Failing beats silently degrading to a scheme the
			// order book would verify differently.
			return nil, fmt.Errorf("%w: direct EIP-1271 order submission", types.ErrNotImplemented)
		}

		fmt.Println("Preparatory transactions are required, so the pre-signature can be bundled")
		fmt.Println("into the same Safe transaction. Falling back to the pre-sign flow.")
		f.logger.Warn("eip1271-degraded-to-presign", zap.Int("pending-operations", len(ops)))
		result, err = f.coordinateSafe(ctx, rawOrder, ops, common.HexToAddress(def.Account.SafeAddress))

	default:
		return nil, &types.ConfigError{
			Field:  "account.accountType",
			Reason: fmt.Sprintf("unknown account type %q", def.Account.AccountType),
		}
	}

	if err != nil {
		return nil, err
	}

	f.record(ctx, def, rawOrder, result)

	fmt.Printf("\nOrder UID: %s\n", result.OrderUID)
	fmt.Printf("Explorer:  %s\n", result.ExplorerURL)

	return result, nil
}

// resolveTradingAccount picks the account that trades and funds the
// order: the Safe for contract wallets, the signer itself for EOAs.
func (f *Flow) resolveTradingAccount(def *types.OrderDefinition) (common.Address, error) {
	if def.Account.AccountType.IsSafe() {
		return common.HexToAddress(def.Account.SafeAddress), nil
	}

	return f.signer.Address(), nil
}

// protectPrice applies the slippage tolerance to the quoted buy amount
// and freezes the order schema. The sell amount passes through
// untouched: the quoter already deducted fees.
func (f *Flow) protectPrice(def *types.OrderDefinition, query *types.QuoteQuery, q *types.QuoteResult) (*types.RawOrder, *big.Int, error) {
	bips, err := quote.ResolveSlippageBips(def, f.cfg.SlippageBips)
	if err != nil {
		return nil, nil, err
	}

	buyAmountQuote, err := types.ParseUint(q.BuyAmount)
	if err != nil {
		return nil, nil, fmt.Errorf("quote buy amount: %w", err)
	}

	sellAmount, err := types.ParseUint(q.SellAmount)
	if err != nil {
		return nil, nil, fmt.Errorf("quote sell amount: %w", err)
	}

	protected, err := quote.ApplySlippage(buyAmountQuote, bips)
	if err != nil {
		return nil, nil, err
	}

	f.logger.Info("price-protected",
		zap.String("buy-amount-quote", buyAmountQuote.String()),
		zap.String("buy-amount-after-slippage", protected.String()),
		zap.Int64("slippage-bips", bips))

	return query.ToRawOrder(q.SellAmount, protected.String(), q.FeeAmount), sellAmount, nil
}

func (f *Flow) logOperations(ops []*types.OnchainOperation) {
	if len(ops) == 0 {
		f.logger.Info("no-preparatory-operations")
		return
	}

	for i, op := range ops {
		f.logger.Info("preparatory-operation",
			zap.Int("index", i),
			zap.String("description", op.Description),
			zap.String("to", op.Tx.To.Hex()))
	}
}

// record persists the submission for the history command. Failure to
// record is logged, not fatal: the order is already in the book.
func (f *Flow) record(ctx context.Context, def *types.OrderDefinition, order *types.RawOrder, result *Result) {
	scheme := types.SchemeEIP712
	if def.Account.AccountType.IsSafe() {
		scheme = types.SchemePresign
	}

	err := f.store.StoreSubmission(ctx, &storage.Record{
		ID:            uuid.NewString(),
		OrderUID:      result.OrderUID,
		ChainID:       def.ChainID,
		AccountType:   string(def.Account.AccountType),
		SellToken:     order.SellToken,
		BuyToken:      order.BuyToken,
		SellAmount:    order.SellAmount,
		BuyAmount:     order.BuyAmount,
		FeeAmount:     order.FeeAmount,
		SigningScheme: scheme,
		ExplorerURL:   result.ExplorerURL,
		SubmittedAt:   f.now(),
	})
	if err != nil {
		f.logger.Warn("store-submission-failed", zap.Error(err))
	}
}
