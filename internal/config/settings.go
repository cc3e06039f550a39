package config

import "fmt"

type Settings struct {
	// Path is the location of the persisted settings database.
	Path string `koanf:"path"`
}

func (s *Settings) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("settings.path is required")
	}
	return nil
}
