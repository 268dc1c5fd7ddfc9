package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// Tuning holds process-level knobs for the library. A library has no business
// reading config files, so only environment overrides are honored.
type Tuning struct {
	// MaxWorkers is the worker count of the default apply executor.
	MaxWorkers int `mapstructure:"max_workers"`

	// QueueSize is the task buffer of the default apply executor.
	QueueSize int `mapstructure:"queue_size"`
}

// Load reads tuning from RAGGED_* environment variables, falling back to
// defaults sized from the host.
func Load() Tuning {
	v := viper.New()

	// Set defaults
	v.SetDefault("max_workers", runtime.NumCPU())
	v.SetDefault("queue_size", 256)

	// Enable environment variable overrides
	v.SetEnvPrefix("RAGGED")
	v.AutomaticEnv()

	t := Tuning{
		MaxWorkers: v.GetInt("max_workers"),
		QueueSize:  v.GetInt("queue_size"),
	}
	if t.MaxWorkers <= 0 {
		t.MaxWorkers = runtime.NumCPU()
	}
	if t.QueueSize <= 0 {
		t.QueueSize = 256
	}

	return t
}
