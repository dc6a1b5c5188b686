package config

import (
	"github.com/caarlos0/env/v11"

	"ads-scheduler/internal/config/configs"
)

// Config aggregates all configuration sections of the service. Fields are
// populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server (HTTP_ prefix).
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger (LOG_ prefix).
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection (PSQL_ prefix).
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Redis configures the change-notifier backend (REDIS_ prefix).
	Redis configs.Redis `envPrefix:"REDIS_"`

	// Platform configures the seller-platform proxy client (PLATFORM_
	// prefix).
	Platform configs.Platform `envPrefix:"PLATFORM_"`

	// Executor configures the cadence worker (EXECUTOR_ prefix).
	Executor configs.Executor `envPrefix:"EXECUTOR_"`

	// Schedule configures creation-side policy (SCHEDULE_ prefix).
	Schedule configs.Schedule `envPrefix:"SCHEDULE_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
