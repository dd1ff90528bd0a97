package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full node configuration, loaded from config.yaml with
// AUCTION_-prefixed environment overrides (AUCTION_DATABASE_HOST etc).
type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		DBName   string `mapstructure:"dbname"`
	} `mapstructure:"database"`

	Mirror struct {
		Provider             string `mapstructure:"provider"`
		BaseURL              string `mapstructure:"base_url"`
		QueryIntervalSeconds int    `mapstructure:"query_interval_seconds"`
	} `mapstructure:"mirror"`

	Ledger struct {
		Network     string `mapstructure:"network"`
		OperatorID  string `mapstructure:"operator_id"`
		OperatorKey string `mapstructure:"operator_key"`
		AuctionKey  string `mapstructure:"auction_key"`
	} `mapstructure:"ledger"`

	App struct {
		Port                    int `mapstructure:"port"`
		ClosureIntervalSeconds  int `mapstructure:"closure_interval_seconds"`
		RefundIntervalSeconds   int `mapstructure:"refund_interval_seconds"`
		ExecutorIntervalSeconds int `mapstructure:"executor_interval_seconds"`
	} `mapstructure:"app"`
}

// DSN renders the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.DBName)
}

// MirrorInterval returns the per-auction watcher polling interval.
func (c *Config) MirrorInterval() time.Duration {
	return time.Duration(c.Mirror.QueryIntervalSeconds) * time.Second
}

// ClosureInterval bounds the window in which a late bid can still be
// accepted after an auction's end timestamp.
func (c *Config) ClosureInterval() time.Duration {
	return time.Duration(c.App.ClosureIntervalSeconds) * time.Second
}

func (c *Config) RefundInterval() time.Duration {
	return time.Duration(c.App.RefundIntervalSeconds) * time.Second
}

func (c *Config) ExecutorInterval() time.Duration {
	return time.Duration(c.App.ExecutorIntervalSeconds) * time.Second
}

// Load reads configuration from the given directory and validates it.
// Missing ledger credentials are a startup failure, not something to
// discover on the first outbound transaction.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetDefault("mirror.provider", "hedera")
	v.SetDefault("mirror.query_interval_seconds", 10)
	v.SetDefault("ledger.network", "testnet")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.closure_interval_seconds", 10)
	v.SetDefault("app.refund_interval_seconds", 10)
	v.SetDefault("app.executor_interval_seconds", 10)

	v.SetEnvPrefix("AUCTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// config file optional when everything comes from the environment
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Mirror.BaseURL == "" {
		return fmt.Errorf("config: mirror.base_url is required")
	}
	if c.Ledger.OperatorID == "" || c.Ledger.OperatorKey == "" {
		return fmt.Errorf("config: ledger operator credentials are required")
	}
	if c.Ledger.AuctionKey == "" {
		return fmt.Errorf("config: ledger.auction_key is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	return nil
}
