package storage

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockStorage(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &PostgresStorage{db: db, logger: zap.NewNop()}, mock
}

func sampleRecord() *Record {
	return &Record{
		ID:            "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		OrderUID:      "0xabc",
		ChainID:       1,
		AccountType:   "EOA",
		SellToken:     "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		BuyToken:      "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		SellAmount:    "999000000000000000",
		BuyAmount:     "162931912199872",
		FeeAmount:     "1000000000000000",
		SigningScheme: "eip712",
		ExplorerURL:   "https://explorer.cow.fi/orders/0xabc",
		SubmittedAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStoreSubmission(t *testing.T) {
	store, mock := newMockStorage(t)
	rec := sampleRecord()

	mock.ExpectExec("INSERT INTO order_submissions").
		WithArgs(
			rec.ID, rec.OrderUID, rec.ChainID, rec.AccountType,
			rec.SellToken, rec.BuyToken, rec.SellAmount, rec.BuyAmount, rec.FeeAmount,
			rec.SigningScheme, rec.ExplorerURL, rec.SubmittedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.StoreSubmission(context.Background(), rec)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSubmission_Error(t *testing.T) {
	store, mock := newMockStorage(t)
	rec := sampleRecord()

	mock.ExpectExec("INSERT INTO order_submissions").
		WillReturnError(assert.AnError)

	err := store.StoreSubmission(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert submission")
}

func TestListSubmissions(t *testing.T) {
	store, mock := newMockStorage(t)
	rec := sampleRecord()

	rows := sqlmock.NewRows([]string{
		"id", "order_uid", "chain_id", "account_type",
		"sell_token", "buy_token", "sell_amount", "buy_amount", "fee_amount",
		"signing_scheme", "explorer_url", "submitted_at",
	}).AddRow(
		rec.ID, rec.OrderUID, rec.ChainID, rec.AccountType,
		rec.SellToken, rec.BuyToken, rec.SellAmount, rec.BuyAmount, rec.FeeAmount,
		rec.SigningScheme, rec.ExplorerURL, rec.SubmittedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM order_submissions").
		WithArgs(20).
		WillReturnRows(rows)

	records, err := store.ListSubmissions(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, rec.OrderUID, records[0].OrderUID)
	assert.Equal(t, rec.SigningScheme, records[0].SigningScheme)
	assert.Equal(t, rec.SubmittedAt, records[0].SubmittedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListSubmissions_Empty(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT (.+) FROM order_submissions").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_uid", "chain_id", "account_type",
			"sell_token", "buy_token", "sell_amount", "buy_amount", "fee_amount",
			"signing_scheme", "explorer_url", "submitted_at",
		}))

	records, err := store.ListSubmissions(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}
