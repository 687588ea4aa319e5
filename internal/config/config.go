// Package config loads application configuration from a yaml file, a
// local .env file, and environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Currency   CurrencyConfig   `mapstructure:"currency"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds sqlite configuration.
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// ClassifierConfig selects and configures the optional external
// classification service.
type ClassifierConfig struct {
	Provider    string        `mapstructure:"provider"` // none or openai
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CurrencyConfig holds display currency settings.
type CurrencyConfig struct {
	Code string `mapstructure:"code"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration from configPath plus environment overrides.
// A .env file in the working directory is loaded first when present.
func Load(configPath string) (*Config, error) {
	_ = gotenv.Load() // optional

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("database.path", "data/vantage.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("classifier.provider", "none")
	viper.SetDefault("classifier.model", "gpt-4o-mini")
	viper.SetDefault("classifier.temperature", 0.2)
	viper.SetDefault("classifier.timeout", 10*time.Second)

	viper.SetDefault("currency.code", "USD")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

func bindEnvVars() {
	// Credentials come from the environment, never the yaml file.
	viper.BindEnv("classifier.api_key", "OPENAI_API_KEY")
	viper.BindEnv("classifier.provider", "CLASSIFIER_PROVIDER")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("currency.code", "CURRENCY_CODE")
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.Classifier.Provider {
	case "none":
	case "openai":
		if c.Classifier.APIKey == "" {
			return fmt.Errorf("classifier.api_key is required when classifier.provider is openai")
		}
	default:
		return fmt.Errorf("unknown classifier.provider %q", c.Classifier.Provider)
	}

	if c.Currency.Code == "" {
		return fmt.Errorf("currency.code is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
