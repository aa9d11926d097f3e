package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreSubmission records a submitted order in PostgreSQL.
func (p *PostgresStorage) StoreSubmission(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO order_submissions (
			id, order_uid, chain_id, account_type,
			sell_token, buy_token, sell_amount, buy_amount, fee_amount,
			signing_scheme, explorer_url, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		rec.ID,
		rec.OrderUID,
		rec.ChainID,
		rec.AccountType,
		rec.SellToken,
		rec.BuyToken,
		rec.SellAmount,
		rec.BuyAmount,
		rec.FeeAmount,
		rec.SigningScheme,
		rec.ExplorerURL,
		rec.SubmittedAt,
	)

	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	p.logger.Debug("submission-stored",
		zap.String("record-id", rec.ID),
		zap.String("order-uid", rec.OrderUID))

	return nil
}

// ListSubmissions returns the most recent submissions, newest first.
func (p *PostgresStorage) ListSubmissions(ctx context.Context, limit int) ([]*Record, error) {
	query := `
		SELECT id, order_uid, chain_id, account_type,
			sell_token, buy_token, sell_amount, buy_amount, fee_amount,
			signing_scheme, explorer_url, submitted_at
		FROM order_submissions
		ORDER BY submitted_at DESC
		LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		err = rows.Scan(
			&rec.ID,
			&rec.OrderUID,
			&rec.ChainID,
			&rec.AccountType,
			&rec.SellToken,
			&rec.BuyToken,
			&rec.SellAmount,
			&rec.BuyAmount,
			&rec.FeeAmount,
			&rec.SigningScheme,
			&rec.ExplorerURL,
			&rec.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}

		records = append(records, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	return records, nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
