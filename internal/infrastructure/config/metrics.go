package config

// MetricsConfig holds metrics collection and export configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath is where metrics are written after each run, in the
	// Prometheus text format
	TextfilePath string `mapstructure:"textfile_path" validate:"required,promfile"`
}
