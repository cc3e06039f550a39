package config

import "fmt"

type Report struct {
	// Enabled turns on failure reporting for built-in clusters.
	Enabled bool `koanf:"enabled"`
	// DSN is the error tracker project DSN.
	DSN string `koanf:"dsn"`
	// Environment tags reported events, e.g. "production" or "staging".
	Environment string `koanf:"environment"`
}

func (r *Report) Validate() error {
	if r.Enabled && r.DSN == "" {
		return fmt.Errorf("report.dsn is required when report.enabled is true")
	}
	return nil
}
