package types

import "fmt"

// AccountKind identifies how the trading account authorizes orders.
// The set is closed: anything else is rejected during validation,
// before any network call is made.
type AccountKind string

const (
	// AccountEOA is a plain externally-owned account. It signs orders
	// off-chain with EIP-712 and sends its own transactions.
	AccountEOA AccountKind = "EOA"

	// AccountSafePresign is a Safe contract wallet that authorizes
	// orders with an on-chain pre-signature transaction, collected and
	// executed through the Safe transaction service.
	AccountSafePresign AccountKind = "SAFE_WITH_EOA_PRESIGN"

	// AccountSafeEIP1271 is a Safe contract wallet intended to
	// authorize orders off-chain via EIP-1271 signature validation.
	AccountSafeEIP1271 AccountKind = "SAFE_WITH_EOA_EIP1271"
)

// Valid reports whether k is one of the defined account kinds.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountEOA, AccountSafePresign, AccountSafeEIP1271:
		return true
	default:
		return false
	}
}

// IsSafe reports whether the trading account is a Safe contract wallet.
func (k AccountKind) IsSafe() bool {
	return k == AccountSafePresign || k == AccountSafeEIP1271
}

// AccountConfig describes the trading account in the order file.
type AccountConfig struct {
	AccountType AccountKind `json:"accountType"`
	SafeAddress string      `json:"safeAddress,omitempty"`
}

// Validate checks the account section for configuration errors.
func (a *AccountConfig) Validate() error {
	if !a.AccountType.Valid() {
		return &ConfigError{Field: "account.accountType", Reason: fmt.Sprintf("unknown account type %q", a.AccountType)}
	}

	if a.AccountType.IsSafe() && a.SafeAddress == "" {
		return &ConfigError{Field: "account.safeAddress", Reason: fmt.Sprintf("required for account type %s", a.AccountType)}
	}

	return nil
}
