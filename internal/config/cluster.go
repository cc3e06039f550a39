package config

import (
	"fmt"

	"github.com/solfront/solana-cluster-provider/internal/constants"
)

type Cluster struct {
	// Default is the cluster selected at startup when no selection was
	// persisted from a previous run.
	Default string `koanf:"default"`
	// CustomURL is the endpoint used when Default is "custom".
	CustomURL string `koanf:"custom_url"`
}

func (c *Cluster) Validate() error {
	if !constants.IsValidCluster(c.Default) {
		return fmt.Errorf("invalid cluster name %q, must be one of: %v", c.Default, constants.ValidClusters)
	}
	if c.Default == constants.ClusterCustom && c.CustomURL == "" {
		return fmt.Errorf("cluster.custom_url is required when cluster.default is %q", constants.ClusterCustom)
	}
	return nil
}
