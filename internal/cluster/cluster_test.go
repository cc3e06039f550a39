package cluster

import (
	"net/url"
	"testing"

	"github.com/solfront/solana-cluster-provider/internal/constants"
)

func TestParse(t *testing.T) {
	for _, name := range constants.ValidClusters {
		c, err := Parse(name)
		if err != nil {
			t.Errorf("Parse(%q): %v", name, err)
		}
		if c.String() != name {
			t.Errorf("Parse(%q) = %q", name, c)
		}
	}

	if _, err := Parse("devnet-beta"); err == nil {
		t.Error("expected error for unknown cluster name")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty cluster name")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		cluster  Cluster
		expected string
	}{
		{MainnetBeta, "Mainnet Beta"},
		{Testnet, "Testnet"},
		{Custom, "Custom"},
	}
	for _, tt := range tests {
		if got := tt.cluster.DisplayName(); got != tt.expected {
			t.Errorf("%s.DisplayName() = %q, want %q", tt.cluster, got, tt.expected)
		}
	}
}

func TestGenesisHash(t *testing.T) {
	if MainnetBeta.GenesisHash() != "5eykt4UsFv8P8NJdTREpY1vzqKqZKvdpKuc147dw2N9d" {
		t.Errorf("unexpected mainnet-beta genesis hash %q", MainnetBeta.GenesisHash())
	}
	if Custom.GenesisHash() != "" {
		t.Errorf("expected empty genesis hash for custom, got %q", Custom.GenesisHash())
	}
}

func TestResolveURL_Custom(t *testing.T) {
	got := ResolveURL(Custom, "http://10.0.0.5:8899", "explorer.example.com")
	if got != "http://10.0.0.5:8899" {
		t.Errorf("custom URL returned %q, want raw user URL", got)
	}

	// Custom never hits env overrides or rewriting, even a malformed one.
	if got := ResolveURL(Custom, "not a url", "localhost"); got != "not a url" {
		t.Errorf("expected raw passthrough, got %q", got)
	}
}

func TestResolveURL_Defaults(t *testing.T) {
	if got := ResolveURL(MainnetBeta, "", "localhost"); got != "https://api.mainnet-beta.solana.com" {
		t.Errorf("mainnet-beta local = %q", got)
	}
	if got := ResolveURL(Testnet, "", "127.0.0.1"); got != "https://api.testnet.solana.com" {
		t.Errorf("testnet local = %q", got)
	}
}

func TestResolveURL_NonLocalRewrite(t *testing.T) {
	if got := ResolveURL(MainnetBeta, "", "explorer.example.com"); got != "https://explorer-api.mainnet-beta.solana.com" {
		t.Errorf("mainnet-beta non-local = %q", got)
	}
	if got := ResolveURL(Testnet, "", "explorer.example.com"); got != "https://explorer-api.testnet.solana.com" {
		t.Errorf("testnet non-local = %q", got)
	}
}

func TestResolveURL_EnvOverride(t *testing.T) {
	t.Setenv("MAINNET_BETA_RPC_URL", "https://rpc.internal:8899")

	// Env overrides win and are never rewritten.
	if got := ResolveURL(MainnetBeta, "", "explorer.example.com"); got != "https://rpc.internal:8899" {
		t.Errorf("override = %q", got)
	}

	// Other clusters are unaffected.
	if got := ResolveURL(Testnet, "", "localhost"); got != "https://api.testnet.solana.com" {
		t.Errorf("testnet = %q", got)
	}
}

func TestResolveURL_Deterministic(t *testing.T) {
	first := ResolveURL(Testnet, "", "explorer.example.com")
	for i := 0; i < 5; i++ {
		if got := ResolveURL(Testnet, "", "explorer.example.com"); got != first {
			t.Fatalf("resolution not deterministic: %q then %q", first, got)
		}
	}
}

func TestEncodeQuery(t *testing.T) {
	if q := EncodeQuery(MainnetBeta, ""); len(q) != 0 {
		t.Errorf("mainnet-beta should encode to empty query, got %v", q)
	}

	q := EncodeQuery(Testnet, "")
	if q.Get("cluster") != "testnet" {
		t.Errorf("testnet query = %v", q)
	}
	if q.Has("customUrl") {
		t.Errorf("testnet query should not carry customUrl, got %v", q)
	}

	q = EncodeQuery(Custom, "http://10.0.0.5:8899")
	if q.Get("cluster") != "custom" || q.Get("customUrl") != "http://10.0.0.5:8899" {
		t.Errorf("custom query = %v", q)
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		cluster   Cluster
		customURL string
	}{
		{"empty defaults to mainnet", "", MainnetBeta, ""},
		{"testnet", "cluster=testnet", Testnet, ""},
		{"unknown falls back", "cluster=devnet-beta", MainnetBeta, ""},
		{"customUrl implies custom", "customUrl=http%3A%2F%2F10.0.0.5%3A8899", Custom, "http://10.0.0.5:8899"},
		{"custom without url gets default", "cluster=custom", Custom, "http://localhost:8899"},
		{"customUrl wins over cluster param", "cluster=testnet&customUrl=http%3A%2F%2F10.0.0.5%3A8899", Custom, "http://10.0.0.5:8899"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			c, customURL := ParseQuery(values)
			if c != tt.cluster || customURL != tt.customURL {
				t.Errorf("ParseQuery(%q) = (%s, %q), want (%s, %q)", tt.query, c, customURL, tt.cluster, tt.customURL)
			}
		})
	}
}

func TestQueryRoundTrip(t *testing.T) {
	selections := []struct {
		cluster   Cluster
		customURL string
	}{
		{MainnetBeta, ""},
		{Testnet, ""},
		{Custom, "http://validator.internal:8899"},
	}
	for _, sel := range selections {
		c, customURL := ParseQuery(EncodeQuery(sel.cluster, sel.customURL))
		if c != sel.cluster || customURL != sel.customURL {
			t.Errorf("round trip (%s, %q) = (%s, %q)", sel.cluster, sel.customURL, c, customURL)
		}
	}
}
