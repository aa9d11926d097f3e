package orderfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mselser95/cowtrader/internal/testutil"
	"github.com/mselser95/cowtrader/pkg/types"
)

func writeOrderFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "order.json")
	err := os.WriteFile(path, []byte(contents), 0o600)
	if err != nil {
		t.Fatalf("write order file: %v", err)
	}

	return path
}

func TestLoad_EOA(t *testing.T) {
	path := writeOrderFile(t, `{
		"chainId": 1,
		"account": {"accountType": "EOA"},
		"order": {
			"sellToken": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
			"buyToken": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			"sellAmountBeforeFee": "1000000000000000000"
		}
	}`)

	def, err := Load(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.ChainID != 1 {
		t.Errorf("chainId: got %d", def.ChainID)
	}
	if def.Account.AccountType != types.AccountEOA {
		t.Errorf("accountType: got %s", def.Account.AccountType)
	}
}

func TestLoad_ChainIDFallback(t *testing.T) {
	path := writeOrderFile(t, `{
		"account": {"accountType": "EOA"},
		"order": {
			"sellToken": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
			"buyToken": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			"sellAmountBeforeFee": "1"
		}
	}`)

	def, err := Load(path, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.ChainID != 100 {
		t.Errorf("expected fallback chain id 100, got %d", def.ChainID)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), 1)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeOrderFile(t, `{"chainId": `)

	_, err := Load(path, 1)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(def *types.OrderDefinition)
		badField string
	}{
		{
			name:     "missing chain id",
			mutate:   func(def *types.OrderDefinition) { def.ChainID = 0 },
			badField: "chainId",
		},
		{
			name:     "unknown account type",
			mutate:   func(def *types.OrderDefinition) { def.Account.AccountType = "LEDGER" },
			badField: "account.accountType",
		},
		{
			name: "safe without address",
			mutate: func(def *types.OrderDefinition) {
				def.Account.AccountType = types.AccountSafePresign
				def.Account.SafeAddress = ""
			},
			badField: "account.safeAddress",
		},
		{
			name: "safe address not hex",
			mutate: func(def *types.OrderDefinition) {
				def.Account.AccountType = types.AccountSafePresign
				def.Account.SafeAddress = "vitalik.eth"
			},
			badField: "account.safeAddress",
		},
		{
			name:     "sell token not an address",
			mutate:   func(def *types.OrderDefinition) { def.Order.SellToken = "WETH" },
			badField: "order.sellToken",
		},
		{
			name:     "buy token not an address",
			mutate:   func(def *types.OrderDefinition) { def.Order.BuyToken = "0x123" },
			badField: "order.buyToken",
		},
		{
			name:     "receiver not an address",
			mutate:   func(def *types.OrderDefinition) { def.Order.Receiver = "me" },
			badField: "order.receiver",
		},
		{
			name:     "zero sell amount",
			mutate:   func(def *types.OrderDefinition) { def.Order.SellAmountBeforeFee = "0" },
			badField: "order.sellAmountBeforeFee",
		},
		{
			name:     "negative sell amount",
			mutate:   func(def *types.OrderDefinition) { def.Order.SellAmountBeforeFee = "-5" },
			badField: "order.sellAmountBeforeFee",
		},
		{
			name:     "non-numeric sell amount",
			mutate:   func(def *types.OrderDefinition) { def.Order.SellAmountBeforeFee = "1.5e18" },
			badField: "order.sellAmountBeforeFee",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := testutil.NewOrderDefinition(types.AccountEOA)
			tc.mutate(def)

			err := Validate(def)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var cfgErr *types.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if cfgErr.Field != tc.badField {
				t.Errorf("expected field %q, got %q", tc.badField, cfgErr.Field)
			}
		})
	}
}

func TestValidate_AcceptsAllAccountKinds(t *testing.T) {
	for _, kind := range []types.AccountKind{types.AccountEOA, types.AccountSafePresign, types.AccountSafeEIP1271} {
		def := testutil.NewOrderDefinition(kind)
		if err := Validate(def); err != nil {
			t.Errorf("%s: unexpected error: %v", kind, err)
		}
	}
}
