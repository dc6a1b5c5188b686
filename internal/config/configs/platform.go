package configs

import (
	"net/url"
	"time"
)

// Platform configures the client for the seller-platform proxy that fronts
// the third-party advertising API.
type Platform struct {
	// Addr is the base URL of the proxy.
	Addr url.URL `env:"ADDRESS" envDefault:"http://localhost:9090"`
	// Timeout bounds every request; there are no client-side retries.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
