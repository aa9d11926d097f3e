package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default order metadata hash used when the order file does not carry
// its own appData.
const defaultAppData = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string

	// Signing
	Mnemonic string

	// Chain
	ChainID   int64 // fallback when the order file has no chainId
	InfuraKey string
	RPCURL    string

	// Order defaults
	AppData      string
	SlippageBips int64

	// Transaction confirmation
	TxConfirmations uint64
	TxWaitTimeout   time.Duration

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),

		// Signing
		Mnemonic: os.Getenv("MNEMONIC"),

		// Chain
		ChainID:   getInt64OrDefault("CHAIN_ID", 0),
		InfuraKey: os.Getenv("INFURA_KEY"),
		RPCURL:    os.Getenv("RPC_URL"),

		// Order defaults
		AppData:      getEnvOrDefault("APP_DATA", defaultAppData),
		SlippageBips: getInt64OrDefault("SLIPPAGE_BIPS", 100),

		// Transaction confirmation defaults
		TxConfirmations: uint64(getInt64OrDefault("TX_CONFIRMATIONS", 1)),
		TxWaitTimeout:   getDurationOrDefault("TX_WAIT_TIMEOUT", 5*time.Minute),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "cowtrader"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "cowtrader123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "cowtrader"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.SlippageBips < 0 || c.SlippageBips >= 10000 {
		return fmt.Errorf("SLIPPAGE_BIPS must be in [0, 10000), got %d", c.SlippageBips)
	}

	if c.StorageMode != "postgres" && c.StorageMode != "console" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres' or 'console', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
