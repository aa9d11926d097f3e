package networks

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mselser95/cowtrader/pkg/config"
	"github.com/mselser95/cowtrader/pkg/types"
)

// Protocol contract addresses. Deployed at the same address on every
// supported chain.
var (
	// Settlement is the GPv2Settlement contract. It verifies order
	// signatures and holds the pre-signature registry.
	Settlement = common.HexToAddress("0x9008D19f58AAbD9eD0D60971565AA8510560ab41")

	// VaultRelayer is the contract that pulls approved sell tokens from
	// the trader during settlement. ERC-20 approvals target it, not the
	// settlement contract.
	VaultRelayer = common.HexToAddress("0xC92E8bdf79f0507f65a392b0ab4667716BFE0110")

	// MultiSendCallOnly is the Safe v1.3.0 batching contract used to
	// bundle preparatory operations into one Safe transaction.
	MultiSendCallOnly = common.HexToAddress("0x40A2aCCbd92BCA938b02010E17A5b8929b49130D")
)

// Network describes one supported chain.
type Network struct {
	ChainID        int64
	Name           string
	OrderBookURL   string
	ExplorerBase   string
	SafeServiceURL string
	InfuraSlug     string // empty when Infura does not serve the chain
	DefaultRPC     string
}

//nolint:gochecknoglobals // static registry
var supported = map[int64]*Network{
	1: {
		ChainID:        1,
		Name:           "mainnet",
		OrderBookURL:   "https://api.cow.fi/mainnet",
		ExplorerBase:   "https://explorer.cow.fi",
		SafeServiceURL: "https://safe-transaction-mainnet.safe.global",
		InfuraSlug:     "mainnet",
	},
	100: {
		ChainID:        100,
		Name:           "gnosis",
		OrderBookURL:   "https://api.cow.fi/xdai",
		ExplorerBase:   "https://explorer.cow.fi/gc",
		SafeServiceURL: "https://safe-transaction-gnosis-chain.safe.global",
		DefaultRPC:     "https://rpc.gnosischain.com",
	},
	11155111: {
		ChainID:        11155111,
		Name:           "sepolia",
		OrderBookURL:   "https://api.cow.fi/sepolia",
		ExplorerBase:   "https://explorer.cow.fi/sepolia",
		SafeServiceURL: "https://safe-transaction-sepolia.safe.global",
		InfuraSlug:     "sepolia",
	},
}

// ForChain resolves a chain id against the supported set. Unknown
// chains are configuration errors.
func ForChain(chainID int64) (*Network, error) {
	n, ok := supported[chainID]
	if !ok {
		return nil, &types.ConfigError{Field: "chainId", Reason: fmt.Sprintf("unsupported chain id %d", chainID)}
	}

	return n, nil
}

// RPCURL resolves the blockchain RPC endpoint for this network from
// configuration. RPC_URL wins over INFURA_KEY.
func (n *Network) RPCURL(cfg *config.Config) (string, error) {
	if cfg.RPCURL != "" {
		return cfg.RPCURL, nil
	}

	if cfg.InfuraKey != "" && n.InfuraSlug != "" {
		return fmt.Sprintf("https://%s.infura.io/v3/%s", n.InfuraSlug, cfg.InfuraKey), nil
	}

	if n.DefaultRPC != "" {
		return n.DefaultRPC, nil
	}

	return "", &types.ConfigError{Field: "RPC_URL", Reason: fmt.Sprintf("no RPC endpoint available for %s", n.Name)}
}

// ExplorerOrderURL formats the stable explorer link for an order uid.
func (n *Network) ExplorerOrderURL(orderUID string) string {
	return fmt.Sprintf("%s/orders/%s", n.ExplorerBase, orderUID)
}
