package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mselser95/cowtrader/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List recently submitted orders",
		Long: `List orders recorded by this tool, newest first.

Requires STORAGE_MODE=postgres; console storage keeps no history.`,
		RunE: runHistory,
	}

	historyLimit int
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of submissions to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	store, err := newStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListSubmissions(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No recorded submissions.")
		return nil
	}

	fmt.Printf("=== Recent Submissions ===\n\n")
	for _, rec := range records {
		fmt.Printf("%s  chain=%d  %s  %s\n", rec.SubmittedAt.Format("2006-01-02 15:04"), rec.ChainID, rec.AccountType, rec.SigningScheme)
		fmt.Printf("  Order UID: %s\n", rec.OrderUID)
		fmt.Printf("  Sell %s of %s for at least %s of %s\n", rec.SellAmount, rec.SellToken, rec.BuyAmount, rec.BuyToken)
		fmt.Printf("  %s\n\n", rec.ExplorerURL)
	}

	return nil
}
