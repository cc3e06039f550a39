package config

import "fmt"

type Server struct {
	// ListenAddr is the host:port the status API binds to.
	ListenAddr string `koanf:"listen_addr"`
	// PublicHostname is the hostname the provider is served under. Anything
	// other than a local hostname switches the built-in cluster defaults to
	// their explorer-api gateways.
	PublicHostname string `koanf:"public_hostname"`
}

func (s *Server) Validate() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	return nil
}
