package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"adaeze/payTerm/internal/catalog"
	"adaeze/payTerm/internal/payment"
)

// AppConfig carries everything the clients and views need at startup.
// Values come from config.yaml under the data directory, overridden by
// PAYTERM_* environment variables.
type AppConfig struct {
	Environment string        `mapstructure:"environment"`
	CatalogURL  string        `mapstructure:"catalog_url"`
	PaymentURL  string        `mapstructure:"payment_url"`
	APIToken    string        `mapstructure:"api_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RetryCount  int           `mapstructure:"retry_count"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	LogFile     string        `mapstructure:"log_file"`
}

func Load() (*AppConfig, error) {
	return LoadFrom(defaultConfigDir())
}

// LoadFrom reads config.yaml from dir if present; a missing file means
// defaults plus environment.
func LoadFrom(dir string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("environment", "live")
	v.SetDefault("catalog_url", "")
	v.SetDefault("payment_url", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("retry_count", 3)
	v.SetDefault("retry_delay", 2*time.Second)
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("PAYTERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *AppConfig) Validate() error {
	switch c.Environment {
	case "live", "sandbox":
	default:
		return fmt.Errorf("invalid environment: %s (must be 'live' or 'sandbox')", c.Environment)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.RetryCount < 0 {
		return fmt.Errorf("retry count must be non-negative, got: %d", c.RetryCount)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %v", c.CacheTTL)
	}

	return nil
}

func (c *AppConfig) ToCatalogConfig() catalog.Config {
	environment := catalog.Live
	if c.Environment == "sandbox" {
		environment = catalog.Sandbox
	}

	return catalog.Config{
		Environment: environment,
		BaseURL:     c.CatalogURL,
		APIToken:    c.APIToken,
		Timeout:     c.Timeout,
		RetryCount:  c.RetryCount,
		RetryDelay:  c.RetryDelay,
		CacheTTL:    c.CacheTTL,
	}
}

func (c *AppConfig) ToPaymentConfig() payment.Config {
	environment := payment.Live
	if c.Environment == "sandbox" {
		environment = payment.Sandbox
	}

	baseURL := c.PaymentURL
	if baseURL == "" {
		baseURL = c.CatalogURL
	}

	return payment.Config{
		Environment: environment,
		BaseURL:     baseURL,
		APIToken:    c.APIToken,
		Timeout:     c.Timeout,
		RetryCount:  c.RetryCount,
		RetryDelay:  c.RetryDelay,
	}
}

func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".payterm")
}

func IsDebugEnabled() bool {
	return os.Getenv("PAYTERM_DEBUG") == "true" || os.Getenv("PAYTERM_DEBUG") == "1"
}
