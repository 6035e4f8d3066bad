// Package config provides configuration for the reef tracing tools.
//
// Configuration is layered: built-in defaults, then REEF_* environment
// variables, then command-line flags (applied by the CLI).
package config

// Config holds the settings of the reef-trace tool.
type Config struct {
	// LogLevel sets the logging level (trace, debug, info, warn, error).
	LogLevel string `env:"REEF_LOG_LEVEL"`
	// LogPretty enables human-readable console log output.
	LogPretty bool `env:"REEF_LOG_PRETTY"`
	// Service is the service.name reported on exported traces.
	Service string `env:"REEF_SERVICE"`
	// Sinks selects the probe consumers to attach (log, stats, otlp).
	Sinks []string `env:"REEF_SINKS"`
	// OTLPOut is the file the otlp sink writes JSON traces to;
	// "-" means stdout.
	OTLPOut string `env:"REEF_OTLP_OUT"`
	// MaxDepth bounds the interpreter call stack.
	MaxDepth int `env:"REEF_MAX_DEPTH"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Service:  "reef",
		Sinks:    []string{"stats"},
		OTLPOut:  "-",
		MaxDepth: 256,
	}
}

// Load returns the defaults with environment overrides applied.
func Load() (Config, error) {
	cfg := Default()
	if err := FromEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
