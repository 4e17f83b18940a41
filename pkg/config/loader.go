package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper for configuration management.
// Precedence: environment variables > config file > defaults.
type ViperLoader struct {
	configFile string
	envPrefix  string
}

// NewViperLoader creates a new ViperLoader.
// configFile: path to configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "HTTPMETRICS")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	if envPrefix == "" {
		envPrefix = "HTTPMETRICS"
	}
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// Load loads configuration with precedence: ENV > file > defaults
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("service.name", defaults.Service.Name)
	v.SetDefault("service.version", defaults.Service.Version)
	v.SetDefault("service.environment", defaults.Service.Environment)
	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.endpoint", defaults.Metrics.Endpoint)
	v.SetDefault("metrics.interval", defaults.Metrics.Interval)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	v.SetEnvPrefix(l.envPrefix)
	l.bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// bindEnvVars explicitly binds environment variables for nested structs
func (l *ViperLoader) bindEnvVars(v *viper.Viper) {
	v.BindEnv("service.name", l.prefixed("SERVICE_NAME"))
	v.BindEnv("service.version", l.prefixed("SERVICE_VERSION"))
	v.BindEnv("service.environment", l.prefixed("SERVICE_ENVIRONMENT"))
	v.BindEnv("metrics.enabled", l.prefixed("METRICS_ENABLED"))
	v.BindEnv("metrics.endpoint", l.prefixed("METRICS_ENDPOINT"))
	v.BindEnv("metrics.interval", l.prefixed("METRICS_INTERVAL"))
	v.BindEnv("logging.level", l.prefixed("LOGGING_LEVEL"))
	v.BindEnv("logging.format", l.prefixed("LOGGING_FORMAT"))
}

func (l *ViperLoader) prefixed(name string) string {
	return l.envPrefix + "_" + name
}

// Validate checks the loaded configuration for inconsistencies.
func (l *ViperLoader) Validate(cfg *Config) error {
	if cfg.Service.Name == "" {
		return fmt.Errorf("service.name must not be empty")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Endpoint == "" {
		return fmt.Errorf("metrics.endpoint is required when metrics are enabled")
	}
	if cfg.Metrics.Interval < 0 {
		return fmt.Errorf("metrics.interval must not be negative")
	}
	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown logging.format %q", cfg.Logging.Format)
	}
	return nil
}
