package signing

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"

	"github.com/mselser95/cowtrader/pkg/types"
)

// Standard Ethereum BIP-44 path, first account.
const derivationPath = "m/44'/60'/0'/0/0"

// Wallet holds the signing credential for the run.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewWalletFromMnemonic derives the signing key from a BIP-39 mnemonic.
func NewWalletFromMnemonic(mnemonic string) (*Wallet, error) {
	if mnemonic == "" {
		return nil, &types.ConfigError{Field: "MNEMONIC", Reason: "required for EOA and Safe pre-sign account types"}
	}

	hd, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("parse mnemonic: %w", err)
	}

	account, err := hd.Derive(hdwallet.MustParseDerivationPath(derivationPath), false)
	if err != nil {
		return nil, fmt.Errorf("derive account: %w", err)
	}

	key, err := hd.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("extract private key: %w", err)
	}

	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the wallet's account address.
func (w *Wallet) Address() common.Address {
	return w.address
}

// PrivateKey returns the raw signing key for transaction signing.
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey {
	return w.key
}

// SignHash produces a 65-byte [R || S || V] signature over a 32-byte
// digest, with V adjusted to the Ethereum convention (27/28).
func (w *Wallet) SignHash(hash []byte) (string, error) {
	sig, err := crypto.Sign(hash, w.key)
	if err != nil {
		return "", fmt.Errorf("sign hash: %w", err)
	}

	sig[64] += 27
	return hexutil.Encode(sig), nil
}
