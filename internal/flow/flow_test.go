package flow_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/internal/flow"
	"github.com/mselser95/cowtrader/internal/networks"
	"github.com/mselser95/cowtrader/internal/orderbook"
	"github.com/mselser95/cowtrader/internal/safe"
	"github.com/mselser95/cowtrader/internal/signing"
	"github.com/mselser95/cowtrader/internal/testutil"
	"github.com/mselser95/cowtrader/pkg/config"
	"github.com/mselser95/cowtrader/pkg/types"
)

const (
	testMnemonic = "tag volcano eight thank tide danger coast health above argue embrace heavy"
	testSigner   = "0xC49926C4124cEe1cbA0Ea94Ea31a6c12318df947"

	// 56-byte order uid: digest ++ owner ++ validTo.
	testOrderUID = "0x" +
		"abababababababababababababababababababababababababababababababab" +
		"cdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcd" +
		"69690000"
)

type harness struct {
	chain    *testutil.FakeChain
	book     *testutil.MockOrderBook
	safes    *testutil.MockSafeService
	tokens   *testutil.FakeTokens
	prompter *testutil.ScriptedPrompter
	store    *testutil.FakeStorage
	flow     *flow.Flow
}

func newHarness(t *testing.T, safeInfo safe.Info, answers ...bool) *harness {
	t.Helper()

	book := testutil.NewMockOrderBook(types.QuoteResult{
		SellAmount: "999000000000000000",
		BuyAmount:  "2000000000",
		FeeAmount:  "1000000000000000",
	}, testOrderUID)
	t.Cleanup(book.Close)

	safes := testutil.NewMockSafeService(safeInfo)
	t.Cleanup(safes.Close)

	wallet, err := signing.NewWalletFromMnemonic(testMnemonic)
	require.NoError(t, err)

	network, err := networks.ForChain(1)
	require.NoError(t, err)

	h := &harness{
		chain:    testutil.NewFakeChain(),
		book:     book,
		safes:    safes,
		tokens:   &testutil.FakeTokens{Symbol: "WETH", Decimals: 18},
		prompter: testutil.NewScriptedPrompter(answers...),
		store:    &testutil.FakeStorage{},
	}

	logger := zap.NewNop()
	h.flow = flow.New(&flow.Config{
		AppConfig: &config.Config{
			AppData:         "0x0000000000000000000000000000000000000000000000000000000000000000",
			SlippageBips:    100,
			TxConfirmations: 1,
			TxWaitTimeout:   time.Minute,
		},
		Network:   network,
		Chain:     h.chain,
		OrderBook: orderbook.NewClient(book.URL, logger),
		Safes:     safe.NewClient(safes.URL, logger),
		Tokens:    h.tokens,
		Signer:    wallet,
		Prompter:  h.prompter,
		Store:     h.store,
		Logger:    logger,
		Now:       func() time.Time { return time.UnixMilli(1700000000000) },
	})

	return h
}

// fund gives the trading account enough sell token to cover the fixture
// order, and optionally an unlimited vault relayer allowance.
func (h *harness) fund(owner string, approved bool) {
	addr := addr(owner)
	h.chain.Balances[addr] = amount("2000000000000000000")
	if approved {
		h.chain.Allowances[addr] = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	}
}

func TestRun_EOA_NoApprovalNeeded(t *testing.T) {
	h := newHarness(t, safe.Info{}, true) // post the order
	h.fund(testSigner, true)

	def := testutil.NewOrderDefinition(types.AccountEOA)
	result, err := h.flow.Run(context.Background(), def)
	require.NoError(t, err)

	assert.Empty(t, h.chain.SentOps, "no preparatory transactions expected")
	assert.Len(t, h.prompter.Questions, 1)

	require.Len(t, h.book.Submissions, 1)
	submission := h.book.Submissions[0]
	assert.Equal(t, types.SchemeEIP712, submission.SigningScheme)
	assert.Equal(t, testSigner, submission.From)
	assert.Equal(t, "1980000000", submission.BuyAmount, "1% slippage off the quoted 2000000000")
	assert.Equal(t, "999000000000000000", submission.SellAmount, "sell amount passes through unchanged")
	assert.NotEmpty(t, submission.Signature)

	assert.Equal(t, testOrderUID, result.OrderUID)
	assert.Equal(t, "https://explorer.cow.fi/orders/"+testOrderUID, result.ExplorerURL)

	require.Len(t, h.store.Records, 1)
	assert.Equal(t, types.SchemeEIP712, h.store.Records[0].SigningScheme)
	assert.Equal(t, testOrderUID, h.store.Records[0].OrderUID)
}

func TestRun_EOA_ApprovalThenOrder(t *testing.T) {
	h := newHarness(t, safe.Info{}, true, true) // send approval, post order
	h.fund(testSigner, false)

	def := testutil.NewOrderDefinition(types.AccountEOA)
	_, err := h.flow.Run(context.Background(), def)
	require.NoError(t, err)

	require.Len(t, h.chain.SentOps, 1)
	assert.Contains(t, h.chain.SentOps[0].Description, "Approve")
	assert.Equal(t, 1, h.chain.WaitCalls, "approval must be awaited before signing")

	require.Len(t, h.prompter.Questions, 2)
	assert.Contains(t, h.prompter.Questions[0], "Approve")
	assert.Contains(t, h.prompter.Questions[1], "order book")

	require.Len(t, h.book.Submissions, 1)
}

func TestRun_EOA_DeclinedApproval(t *testing.T) {
	h := newHarness(t, safe.Info{}, false)
	h.fund(testSigner, false)

	def := testutil.NewOrderDefinition(types.AccountEOA)
	_, err := h.flow.Run(context.Background(), def)
	require.ErrorIs(t, err, types.ErrUserDeclined)

	assert.Empty(t, h.chain.SentOps)
	assert.Empty(t, h.book.Submissions)
	assert.Empty(t, h.store.Records)
	assert.Equal(t, types.ExitDeclined, types.ExitCode(err))
}

func TestRun_EOA_DeclinedOrderPost(t *testing.T) {
	h := newHarness(t, safe.Info{}, false)
	h.fund(testSigner, true)

	def := testutil.NewOrderDefinition(types.AccountEOA)
	_, err := h.flow.Run(context.Background(), def)
	require.ErrorIs(t, err, types.ErrUserDeclined)

	assert.Empty(t, h.book.Submissions)
}

func TestRun_InsufficientBalance(t *testing.T) {
	h := newHarness(t, safe.Info{})
	// No funding at all.

	def := testutil.NewOrderDefinition(types.AccountEOA)
	_, err := h.flow.Run(context.Background(), def)

	var balErr *types.InsufficientBalanceError
	require.ErrorAs(t, err, &balErr)
	assert.Equal(t, "WETH", balErr.Token)

	assert.Zero(t, h.chain.AllowanceCalls, "allowance must not be read for an unfundable order")
	assert.Empty(t, h.book.Submissions)
	assert.Equal(t, types.ExitRuntimeFail, types.ExitCode(err))
}

func TestRun_UnknownAccountType(t *testing.T) {
	h := newHarness(t, safe.Info{})
	h.fund(testSigner, true)

	def := testutil.NewOrderDefinition(types.AccountEOA)
	def.Account.AccountType = "LEDGER"

	_, err := h.flow.Run(context.Background(), def)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "account.accountType", cfgErr.Field)
}

func TestRun_EIP1271_WithoutOperations_NotImplemented(t *testing.T) {
	h := newHarness(t, safe.Info{})
	h.fund(testutil.FixtureSafe, true)

	def := testutil.NewOrderDefinition(types.AccountSafeEIP1271)
	_, err := h.flow.Run(context.Background(), def)

	require.ErrorIs(t, err, types.ErrNotImplemented)
	assert.Empty(t, h.book.Submissions, "nothing may reach the order book")
	assert.Empty(t, h.safes.Proposals)
}

func TestRun_EIP1271_WithOperations_DegradesToPresign(t *testing.T) {
	info := safe.Info{
		Address:   testutil.FixtureSafe,
		Nonce:     3,
		Threshold: 2,
		Owners:    []string{testSigner, "0x2222222222222222222222222222222222222222"},
		Version:   "1.3.0",
	}
	h := newHarness(t, info)
	h.fund(testutil.FixtureSafe, false) // approval needed, so the bundle path applies

	def := testutil.NewOrderDefinition(types.AccountSafeEIP1271)
	result, err := h.flow.Run(context.Background(), def)
	require.NoError(t, err)

	assert.True(t, result.Proposed)
	assert.False(t, result.Executed)

	require.Len(t, h.book.Submissions, 1)
	assert.Equal(t, types.SchemePresign, h.book.Submissions[0].SigningScheme)
	require.Len(t, h.safes.Proposals, 1)
}
