package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mselser95/cowtrader/internal/chain"
	"github.com/mselser95/cowtrader/internal/networks"
	"github.com/mselser95/cowtrader/internal/orderfile"
	"github.com/mselser95/cowtrader/internal/signing"
	"github.com/mselser95/cowtrader/internal/tokens"
	"github.com/mselser95/cowtrader/pkg/cache"
	"github.com/mselser95/cowtrader/pkg/config"
	"github.com/mselser95/cowtrader/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var balanceCmd = &cobra.Command{
	Use:   "balance <order.json>",
	Short: "Check the trading account's balance and allowance",
	Long: `Display the trading account's state for the order described by the
order file: native balance (for gas), sell token balance, and the
allowance already granted to the protocol's vault relayer.

Read-only; no transaction is sent.`,
	RunE: runBalance,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		_ = cmd.Usage()
		os.Exit(types.ExitUsage)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logger, err := config.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	def, err := orderfile.Load(args[0], cfg.ChainID)
	if err != nil {
		return err
	}

	network, err := networks.ForChain(def.ChainID)
	if err != nil {
		return err
	}

	rpcURL, err := network.RPCURL(cfg)
	if err != nil {
		return err
	}

	var account common.Address
	if def.Account.AccountType.IsSafe() {
		account = common.HexToAddress(def.Account.SafeAddress)
	} else {
		wallet, err := signing.NewWalletFromMnemonic(cfg.Mnemonic)
		if err != nil {
			return err
		}
		account = wallet.Address()
	}

	ctx := context.Background()

	chainClient, err := chain.NewClient(ctx, rpcURL, def.ChainID, logger)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	tokenCache, err := cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer tokenCache.Close()

	resolver := tokens.NewResolver(def.ChainID, chainClient, tokenCache, logger)

	sellToken := common.HexToAddress(def.Order.SellToken)
	meta, err := resolver.Resolve(ctx, sellToken)
	if err != nil {
		return err
	}

	native, err := chainClient.NativeBalance(ctx, account)
	if err != nil {
		return err
	}

	balance, err := chainClient.TokenBalance(ctx, sellToken, account)
	if err != nil {
		return err
	}

	allowance, err := chainClient.Allowance(ctx, sellToken, account, networks.VaultRelayer)
	if err != nil {
		return err
	}

	fmt.Printf("=== Account State (%s) ===\n\n", network.Name)
	fmt.Printf("Trading Account: %s (%s)\n", account.Hex(), def.Account.AccountType)
	fmt.Printf("Native Balance:  %s\n", tokens.FormatAmount(native, 18))
	fmt.Printf("%s Balance:   %s\n", meta.Symbol, tokens.FormatAmount(balance, meta.Decimals))
	if allowance.Cmp(chain.MaxUint256) >= 0 {
		fmt.Printf("%s Allowance: unlimited\n", meta.Symbol)
	} else {
		fmt.Printf("%s Allowance: %s\n", meta.Symbol, tokens.FormatAmount(allowance, meta.Decimals))
	}

	return nil
}
