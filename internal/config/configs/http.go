package configs

import "fmt"

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Host is the interface to bind to; empty means all interfaces.
	Host string `env:"HOST" envDefault:""`
	// Port is the TCP port the HTTP server will listen on.
	Port uint16 `env:"PORT" envDefault:"8080"`
}

// ListenAddr renders the host:port pair for http.Server.
func (c HTTP) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
