package cluster

import (
	"net/url"

	"github.com/solfront/solana-cluster-provider/internal/constants"
)

// EncodeQuery renders a selection as its canonical query parameters.
// MainnetBeta is the default and is omitted; a custom selection carries the
// endpoint in the customUrl parameter.
func EncodeQuery(c Cluster, customURL string) url.Values {
	values := url.Values{}
	switch {
	case c.IsCustom():
		values.Set(constants.QueryParamCluster, string(Custom))
		values.Set(constants.QueryParamCustomURL, customURL)
	case c != MainnetBeta:
		values.Set(constants.QueryParamCluster, string(c))
	}
	return values
}

// ParseQuery reads a selection from query parameters. A non-empty customUrl
// parameter selects Custom regardless of the cluster parameter; an unknown
// or absent cluster parameter falls back to MainnetBeta.
func ParseQuery(values url.Values) (Cluster, string) {
	if customURL := values.Get(constants.QueryParamCustomURL); customURL != "" {
		return Custom, customURL
	}

	c, err := Parse(values.Get(constants.QueryParamCluster))
	if err != nil {
		return MainnetBeta, ""
	}
	if c.IsCustom() {
		return Custom, constants.DefaultCustomURL
	}
	return c, ""
}
