// Package cluster defines the known network targets and resolves a selection
// to a concrete RPC endpoint.
package cluster

import (
	"fmt"

	"github.com/solfront/solana-cluster-provider/internal/constants"
)

// Cluster is a named network target. The set of clusters is closed.
type Cluster string

const (
	MainnetBeta Cluster = constants.ClusterMainnetBeta
	Testnet     Cluster = constants.ClusterTestnet
	Custom      Cluster = constants.ClusterCustom
)

// Parse maps a cluster name to its Cluster value.
func Parse(name string) (Cluster, error) {
	if !constants.IsValidCluster(name) {
		return "", fmt.Errorf("invalid cluster name %q, must be one of: %v", name, constants.ValidClusters)
	}
	return Cluster(name), nil
}

func (c Cluster) String() string { return string(c) }

// DisplayName is the human-readable name shown to consumers.
func (c Cluster) DisplayName() string {
	switch c {
	case MainnetBeta:
		return "Mainnet Beta"
	case Testnet:
		return "Testnet"
	case Custom:
		return "Custom"
	}
	return string(c)
}

// IsCustom reports whether the cluster endpoint is user-supplied.
func (c Cluster) IsCustom() bool { return c == Custom }

// GenesisHash returns the expected genesis hash for a built-in cluster, or
// "" when none is known (custom clusters).
func (c Cluster) GenesisHash() string {
	return constants.ClusterGenesisHashes[string(c)]
}
