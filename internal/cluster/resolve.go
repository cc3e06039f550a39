package cluster

import (
	"os"
	"strings"

	"github.com/solfront/solana-cluster-provider/internal/constants"
)

var localHostnames = map[string]bool{
	"":          true,
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
}

// ResolveURL maps a selection to a concrete endpoint string.
//
// Custom returns the raw user-supplied URL. Built-in clusters return the
// environment override when set, else the built-in default; the default host
// is rewritten from the public api gateway to the explorer-api gateway unless
// hostname is a local one. No validation happens here - malformed URLs
// surface when the connection is attempted.
func ResolveURL(c Cluster, customURL string, hostname string) string {
	if c.IsCustom() {
		return customURL
	}

	if env := constants.ClusterEnvVars[string(c)]; env != "" {
		if override := os.Getenv(env); override != "" {
			return override
		}
	}

	url := constants.ClusterRPCURLs[string(c)]
	if localHostnames[hostname] {
		return url
	}
	return strings.Replace(url, "api.", "explorer-api.", 1)
}
