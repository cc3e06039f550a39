package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile_WithDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yml")
	content := `
settings:
  path: /tmp/provider/settings.db
`
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c := New()
	if err := c.LoadFromFile(cfgFile); err != nil {
		t.Fatal(err)
	}

	// Check defaults are applied
	if c.Log.Level != "info" {
		t.Errorf("expected log.level=info, got %q", c.Log.Level)
	}
	if c.Log.Format != "text" {
		t.Errorf("expected log.format=text, got %q", c.Log.Format)
	}
	if c.Cluster.Default != "mainnet-beta" {
		t.Errorf("expected cluster.default=mainnet-beta, got %q", c.Cluster.Default)
	}
	if c.Server.ListenAddr != "127.0.0.1:8700" {
		t.Errorf("expected default listen_addr, got %q", c.Server.ListenAddr)
	}
	if c.Server.PublicHostname != "localhost" {
		t.Errorf("expected default public_hostname, got %q", c.Server.PublicHostname)
	}
	if c.Settings.Path != "/tmp/provider/settings.db" {
		t.Errorf("expected settings.path from file, got %q", c.Settings.Path)
	}
	if c.Report.Enabled {
		t.Error("expected report.enabled=false by default")
	}
}

func TestLoadFromFile_OverrideDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yml")
	content := `
log:
  level: debug
  format: json
cluster:
  default: testnet
server:
  listen_addr: "0.0.0.0:9000"
  public_hostname: explorer.example.com
report:
  enabled: true
  dsn: "https://key@o0.ingest.sentry.io/0"
  environment: staging
hooks:
  on_failure:
    - name: page
      cmd: notify
      args: ["{{ .Cluster }}", "{{ .Error }}"]
`
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c := New()
	if err := c.LoadFromFile(cfgFile); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	if c.Log.Level != "debug" || c.Log.Format != "json" {
		t.Errorf("log overrides not applied: %+v", c.Log)
	}
	if c.Cluster.Default != "testnet" {
		t.Errorf("expected cluster.default=testnet, got %q", c.Cluster.Default)
	}
	if c.Server.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("expected listen_addr override, got %q", c.Server.ListenAddr)
	}
	if c.Server.PublicHostname != "explorer.example.com" {
		t.Errorf("expected public_hostname override, got %q", c.Server.PublicHostname)
	}
	if !c.Report.Enabled || c.Report.Environment != "staging" {
		t.Errorf("report overrides not applied: %+v", c.Report)
	}
	if len(c.Hooks.OnFailure) != 1 || c.Hooks.OnFailure[0].Name != "page" {
		t.Errorf("hooks not parsed: %+v", c.Hooks)
	}
}

func TestLoadFromFile_MissingFileUsesDefaults(t *testing.T) {
	c := New()
	if err := c.LoadFromFile(filepath.Join(t.TempDir(), "nope.yml")); err != nil {
		t.Fatal(err)
	}
	if c.Cluster.Default != "mainnet-beta" {
		t.Errorf("expected defaults, got %q", c.Cluster.Default)
	}
}

func TestValidate_InvalidCluster(t *testing.T) {
	c := New()
	if err := c.LoadFromFile(filepath.Join(t.TempDir(), "nope.yml")); err != nil {
		t.Fatal(err)
	}
	c.Cluster.Default = "devnet-beta"
	if err := c.Validate(); err == nil {
		t.Error("expected error for invalid cluster name")
	}
}

func TestValidate_CustomRequiresURL(t *testing.T) {
	c := New()
	if err := c.LoadFromFile(filepath.Join(t.TempDir(), "nope.yml")); err != nil {
		t.Fatal(err)
	}
	c.Cluster.Default = "custom"
	if err := c.Validate(); err == nil {
		t.Error("expected error for custom default without custom_url")
	}

	c.Cluster.CustomURL = "http://localhost:8899"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ReportRequiresDSN(t *testing.T) {
	c := New()
	if err := c.LoadFromFile(filepath.Join(t.TempDir(), "nope.yml")); err != nil {
		t.Fatal(err)
	}
	c.Report.Enabled = true
	if err := c.Validate(); err == nil {
		t.Error("expected error for report.enabled without dsn")
	}
}
