package storage

import (
	"context"
	"time"
)

// Record is one submitted order, kept for local history.
type Record struct {
	ID            string
	OrderUID      string
	ChainID       int64
	AccountType   string
	SellToken     string
	BuyToken      string
	SellAmount    string
	BuyAmount     string
	FeeAmount     string
	SigningScheme string
	ExplorerURL   string
	SubmittedAt   time.Time
}

// Storage is the interface for recording order submissions.
type Storage interface {
	// StoreSubmission records a submitted order.
	StoreSubmission(ctx context.Context, rec *Record) error

	// ListSubmissions returns the most recent submissions, newest first.
	ListSubmissions(ctx context.Context, limit int) ([]*Record, error)

	// Close closes the storage connection.
	Close() error
}
