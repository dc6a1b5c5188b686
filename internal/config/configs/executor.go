package configs

import "time"

// Executor configures the cadence worker that applies due schedules.
type Executor struct {
	// Enabled turns the in-process executor on. Disable it when a separate
	// deployment owns execution.
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// Interval is the scan cadence. It should be shorter than a half-hour
	// slot; re-fires within a slot are suppressed.
	Interval time.Duration `env:"INTERVAL" envDefault:"1m"`
	// ItemDelay spaces out platform calls within one tick.
	ItemDelay time.Duration `env:"ITEM_DELAY" envDefault:"500ms"`
}

// Schedule configures creation-side policy.
type Schedule struct {
	// MinAutoBudget is the lowest budget the auto variant accepts, in
	// integer currency units.
	MinAutoBudget int64 `env:"MIN_AUTO_BUDGET" envDefault:"100000"`
	// AutoItemDelay spaces out the sequential inserts of the auto path.
	AutoItemDelay time.Duration `env:"AUTO_ITEM_DELAY" envDefault:"500ms"`
}
