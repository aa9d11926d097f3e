package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mselser95/cowtrader/internal/chain"
	"github.com/mselser95/cowtrader/internal/flow"
	"github.com/mselser95/cowtrader/internal/networks"
	"github.com/mselser95/cowtrader/internal/orderbook"
	"github.com/mselser95/cowtrader/internal/orderfile"
	"github.com/mselser95/cowtrader/internal/prompt"
	"github.com/mselser95/cowtrader/internal/safe"
	"github.com/mselser95/cowtrader/internal/signing"
	"github.com/mselser95/cowtrader/internal/storage"
	"github.com/mselser95/cowtrader/internal/tokens"
	"github.com/mselser95/cowtrader/pkg/cache"
	"github.com/mselser95/cowtrader/pkg/config"
	"github.com/mselser95/cowtrader/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var submitCmd = &cobra.Command{
	Use:   "submit <order.json>",
	Short: "Quote, authorize and submit a limit order",
	Long: `Submit a limit sell order described by a JSON order file.

The flow is: quote the order against the order book, apply slippage
tolerance to the quoted buy amount, check balance and vault-relayer
allowance, execute or bundle any required approval, authorize the order
for the configured account model, and post it.

Every transaction send and the final order posting are gated behind an
interactive confirmation prompt.`,
	RunE: runSubmit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		_ = cmd.Usage()
		os.Exit(types.ExitUsage)
	}

	err := submit(args[0])
	switch {
	case errors.Is(err, types.ErrUserDeclined):
		fmt.Println("\nOkay, nothing was submitted. Bye!")
		os.Exit(types.ExitDeclined)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(types.ExitRuntimeFail)
	}

	return nil
}

func submit(orderPath string) error {
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

	def, err := orderfile.Load(orderPath, cfg.ChainID)
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

	wallet, err := signing.NewWalletFromMnemonic(cfg.Mnemonic)
	if err != nil {
		return err
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

	store, err := newStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	logger.Info("submitting-order",
		zap.String("network", network.Name),
		zap.String("account-type", string(def.Account.AccountType)),
		zap.String("signer", wallet.Address().Hex()))

	f := flow.New(&flow.Config{
		AppConfig: cfg,
		Network:   network,
		Chain:     chainClient,
		OrderBook: orderbook.NewClient(network.OrderBookURL, logger),
		Safes:     safe.NewClient(network.SafeServiceURL, logger),
		Tokens:    tokens.NewResolver(def.ChainID, chainClient, tokenCache, logger),
		Signer:    wallet,
		Prompter:  prompt.NewConsolePrompter(os.Stdin, os.Stdout),
		Store:     store,
		Logger:    logger,
	})

	_, err = f.Run(ctx, def)
	return err
}

func newStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		return storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
	}

	return storage.NewConsoleStorage(logger), nil
}
