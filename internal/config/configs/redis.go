package configs

// Redis holds connection settings for the Redis instance backing the
// change notifier.
type Redis struct {
	// Addr is the host:port of the Redis server.
	Addr string `env:"ADDRESS" envDefault:"localhost:6379"`
	// Password is optional; empty means no AUTH.
	Password string `env:"PASSWORD" envDefault:""`
	// DB selects the logical Redis database.
	DB int `env:"DB" envDefault:"0"`
}
