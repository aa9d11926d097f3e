package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by pretty-printing to console. It
// keeps no history.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	return &ConsoleStorage{
		logger: logger,
	}
}

// StoreSubmission pretty-prints a submitted order to console.
func (c *ConsoleStorage) StoreSubmission(ctx context.Context, rec *Record) error {
	fmt.Println("\n" + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📨 ORDER SUBMITTED\n")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Order UID:  %s\n", rec.OrderUID)
	fmt.Printf("Chain:      %d\n", rec.ChainID)
	fmt.Printf("Account:    %s\n", rec.AccountType)
	fmt.Printf("Scheme:     %s\n", rec.SigningScheme)
	fmt.Printf("Sell:       %s of %s\n", rec.SellAmount, rec.SellToken)
	fmt.Printf("Buy (min):  %s of %s\n", rec.BuyAmount, rec.BuyToken)
	fmt.Printf("Fee:        %s\n", rec.FeeAmount)
	fmt.Printf("Time:       %s\n", rec.SubmittedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Explorer:   %s\n", rec.ExplorerURL)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	return nil
}

// ListSubmissions returns nothing: console storage keeps no history.
func (c *ConsoleStorage) ListSubmissions(ctx context.Context, limit int) ([]*Record, error) {
	c.logger.Info("console-storage-has-no-history")
	return nil, nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	return nil
}
