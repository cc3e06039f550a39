package constants

const (
	ClusterMainnetBeta = "mainnet-beta"
	ClusterTestnet     = "testnet"
	ClusterCustom      = "custom"
)

var (
	ValidClusters = []string{ClusterMainnetBeta, ClusterTestnet, ClusterCustom}

	ClusterRPCURLs = map[string]string{
		ClusterMainnetBeta: "https://api.mainnet-beta.solana.com",
		ClusterTestnet:     "https://api.testnet.solana.com",
	}

	// ClusterGenesisHashes holds the well-known genesis hash per built-in
	// cluster, used to warn when an endpoint answers for a different network.
	ClusterGenesisHashes = map[string]string{
		ClusterMainnetBeta: "5eykt4UsFv8P8NJdTREpY1vzqKqZKvdpKuc147dw2N9d",
		ClusterTestnet:     "4uhcVJyU9pJkvQyS88uRDiswHXSCkY3zQawwpjk2NsNY",
	}

	// ClusterEnvVars maps built-in clusters to the environment variable that
	// overrides their default RPC endpoint.
	ClusterEnvVars = map[string]string{
		ClusterMainnetBeta: "MAINNET_BETA_RPC_URL",
		ClusterTestnet:     "TESTNET_RPC_URL",
	}
)

// DefaultCustomURL is assumed when Custom is selected without an explicit
// endpoint, matching a locally run validator.
const DefaultCustomURL = "http://localhost:8899"

// Query parameter names on the selection surface.
const (
	QueryParamCluster   = "cluster"
	QueryParamCustomURL = "customUrl"
)

func IsValidCluster(name string) bool {
	for _, c := range ValidClusters {
		if c == name {
			return true
		}
	}
	return false
}
