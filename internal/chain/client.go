package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/pkg/types"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"}
]`

const receiptPollInterval = 2 * time.Second

// MaxUint256 is the one-time approval amount: approving the maximum
// representable value avoids repeated approvals on future orders.
//
//nolint:gochecknoglobals // constant value
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

//nolint:gochecknoglobals // parsed once from a literal
var erc20 = mustParseABI(erc20ABI)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}

// Client wraps an Ethereum RPC connection with the reads and writes the
// order flow needs.
type Client struct {
	eth     *ethclient.Client
	chainID *big.Int
	logger  *zap.Logger
}

// NewClient dials the RPC endpoint and verifies it serves the expected
// chain.
func NewClient(ctx context.Context, rpcURL string, chainID int64, logger *zap.Logger) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial RPC: %w", err)
	}

	remoteID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("get chain ID: %w", err)
	}

	if remoteID.Int64() != chainID {
		eth.Close()
		return nil, &types.ConfigError{
			Field:  "chainId",
			Reason: fmt.Sprintf("RPC endpoint serves chain %d, order file wants %d", remoteID.Int64(), chainID),
		}
	}

	return &Client{
		eth:     eth,
		chainID: remoteID,
		logger:  logger,
	}, nil
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// ChainID returns the chain id the client is connected to.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// NativeBalance fetches the native token balance of an address.
func (c *Client) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	balance, err := c.eth.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("get native balance: %w", err)
	}

	return balance, nil
}

// TokenBalance fetches the ERC-20 balance of owner.
func (c *Client) TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	result, err := c.callERC20(ctx, token, "balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("get token balance: %w", err)
	}

	return new(big.Int).SetBytes(result), nil
}

// Allowance fetches the ERC-20 allowance granted by owner to spender.
func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	result, err := c.callERC20(ctx, token, "allowance", owner, spender)
	if err != nil {
		return nil, fmt.Errorf("get allowance: %w", err)
	}

	return new(big.Int).SetBytes(result), nil
}

// TokenSymbol fetches the ERC-20 symbol.
func (c *Client) TokenSymbol(ctx context.Context, token common.Address) (string, error) {
	result, err := c.callERC20(ctx, token, "symbol")
	if err != nil {
		return "", fmt.Errorf("get token symbol: %w", err)
	}

	var symbol string
	err = erc20.UnpackIntoInterface(&symbol, "symbol", result)
	if err != nil {
		return "", fmt.Errorf("unpack symbol: %w", err)
	}

	return symbol, nil
}

// TokenDecimals fetches the ERC-20 decimals.
func (c *Client) TokenDecimals(ctx context.Context, token common.Address) (uint8, error) {
	result, err := c.callERC20(ctx, token, "decimals")
	if err != nil {
		return 0, fmt.Errorf("get token decimals: %w", err)
	}

	var decimals uint8
	err = erc20.UnpackIntoInterface(&decimals, "decimals", result)
	if err != nil {
		return 0, fmt.Errorf("unpack decimals: %w", err)
	}

	return decimals, nil
}

// ApproveOperation builds the preparatory operation granting spender an
// unlimited allowance on token.
func (c *Client) ApproveOperation(token, spender common.Address, symbol string) (*types.OnchainOperation, error) {
	data, err := erc20.Pack("approve", spender, MaxUint256)
	if err != nil {
		return nil, fmt.Errorf("pack approve call: %w", err)
	}

	return &types.OnchainOperation{
		Description: fmt.Sprintf("Approve vault relayer to transfer %s", symbol),
		Tx: types.TxRequest{
			To:    token,
			Value: big.NewInt(0),
			Data:  data,
		},
	}, nil
}

// SendOperation signs and broadcasts one on-chain operation from the
// given key. It returns the transaction hash without waiting for
// inclusion.
func (c *Client) SendOperation(ctx context.Context, key *ecdsa.PrivateKey, op *types.OnchainOperation) (common.Hash, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := c.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("get nonce: %w", err)
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("get gas price: %w", err)
	}

	gasLimit, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &op.Tx.To,
		Value: op.Tx.Value,
		Data:  op.Tx.Data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}

	tx := ethtypes.NewTransaction(nonce, op.Tx.To, op.Tx.Value, gasLimit, gasPrice, op.Tx.Data)

	signedTx, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(c.chainID), key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign transaction: %w", err)
	}

	err = c.eth.SendTransaction(ctx, signedTx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}

	TransactionsSentTotal.Inc()
	c.logger.Info("transaction-sent",
		zap.String("description", op.Description),
		zap.String("tx-hash", signedTx.Hash().Hex()),
		zap.Uint64("nonce", nonce))

	return signedTx.Hash(), nil
}

// WaitMined blocks until the transaction is included and buried under
// the requested number of confirmations, or until timeout elapses. A
// timeout yields a StuckTransactionError: the transaction may still
// mine later, and re-running the flow is safe because preparatory
// planning re-reads on-chain state.
func (c *Client) WaitMined(ctx context.Context, txHash common.Hash, confirmations uint64, timeout time.Duration) (*ethtypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	receipt, err := c.pollReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", txHash.Hex())
	}

	for confirmations > 1 {
		head, err := c.eth.BlockNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("get block number: %w", err)
		}

		if head >= receipt.BlockNumber.Uint64()+confirmations-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, &types.StuckTransactionError{TxHash: txHash.Hex()}
		case <-time.After(receiptPollInterval):
		}
	}

	TransactionsConfirmedTotal.Inc()
	c.logger.Info("transaction-confirmed",
		zap.String("tx-hash", txHash.Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
		zap.Uint64("gas-used", receipt.GasUsed))

	return receipt, nil
}

func (c *Client) pollReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	for {
		receipt, err := c.eth.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, &types.StuckTransactionError{TxHash: txHash.Hex()}
		case <-time.After(receiptPollInterval):
		}
	}
}

func (c *Client) callERC20(ctx context.Context, token common.Address, method string, args ...interface{}) ([]byte, error) {
	data, err := erc20.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	msg := ethereum.CallMsg{
		To:   &token,
		Data: data,
	}

	result, err := c.eth.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call contract: %w", err)
	}

	return result, nil
}
