package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"klinechart/pkg/binance"

	"github.com/spf13/viper"
)

type Config struct {
	Binance  BinanceConfig  `mapstructure:"binance"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type BinanceConfig struct {
	REST RESTConfig `mapstructure:"rest"`
	WS   WSConfig   `mapstructure:"ws"`
}

type RESTConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Discover    bool          `mapstructure:"discover"`     // replace chart.symbols with exchange pairs
	QuoteAsset  string        `mapstructure:"quote_asset"`  // e.g. "USDT"
	RefreshCron string        `mapstructure:"refresh_cron"` // cron spec, evaluated in UTC
}

type WSConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ChartConfig holds the initial selection and the selector options.
type ChartConfig struct {
	Symbol    string   `mapstructure:"symbol"`
	Interval  string   `mapstructure:"interval"`
	Symbols   []string `mapstructure:"symbols"`
	Intervals []string `mapstructure:"intervals"`
}

type CacheConfig struct {
	Driver     string        `mapstructure:"driver"` // "file", "sqlite" or "postgres"
	Path       string        `mapstructure:"path"`   // directory for "file", database file for "sqlite"
	Key        string        `mapstructure:"key"`
	MaxCandles int           `mapstructure:"max_candles"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
	Console     bool   `mapstructure:"console"`     // also write to stdout
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("binance.ws.base_url", "wss://stream.binance.com:9443/ws/")
	v.SetDefault("binance.rest.base_url", "https://api.binance.com")
	v.SetDefault("binance.rest.timeout", 10*time.Second)
	v.SetDefault("binance.rest.discover", false)
	v.SetDefault("binance.rest.quote_asset", "USDT")
	v.SetDefault("binance.rest.refresh_cron", "@midnight")

	v.SetDefault("chart.symbol", "ethusdt")
	v.SetDefault("chart.interval", "1m")
	v.SetDefault("chart.symbols", []string{"ethusdt", "btcusdt", "bnbusdt", "solusdt", "xrpusdt"})
	v.SetDefault("chart.intervals", []string{"1m", "5m", "15m", "1h"})

	v.SetDefault("cache.driver", "file")
	v.SetDefault("cache.path", "data")
	v.SetDefault("cache.key", "cryptoData")
	v.SetDefault("cache.max_candles", 50)
	v.SetDefault("cache.timeout", 2*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_file", "logs/klinechart.log")
	v.SetDefault("log.environment", "dev")
	v.SetDefault("log.console", false)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.dbname", "klinechart")
	v.SetDefault("postgres.ssm_prefix", "KLINECHART_DB_")
}

// Load loads application configuration using Viper.
// It reads config.yaml (from path, or ./config and $HOME/.klinechart when path
// is empty) and overrides with KLINECHART_* environment variables.
// A missing config file is not an error unless path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // config.yaml
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.klinechart")
	}

	// Support environment variables with dot notation (e.g., KLINECHART_CHART_SYMBOL)
	v.SetEnvPrefix("KLINECHART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Select overrides the initial symbol and/or interval; empty values keep
// the configured ones.
func (cfg *Config) Select(symbol, interval string) error {
	if symbol != "" {
		cfg.Chart.Symbol = symbol
	}
	if interval != "" {
		cfg.Chart.Interval = interval
	}
	return cfg.normalize()
}

// normalize lower-cases symbols, checks intervals and makes sure the
// initial selection is one of the selector options.
func (cfg *Config) normalize() error {
	cfg.Chart.Symbol = binance.NormalizeSymbol(cfg.Chart.Symbol)
	if cfg.Chart.Symbol == "" {
		return errors.New("chart.symbol must not be empty")
	}
	for i, s := range cfg.Chart.Symbols {
		cfg.Chart.Symbols[i] = binance.NormalizeSymbol(s)
	}
	cfg.Chart.Symbols = ensureOption(cfg.Chart.Symbols, cfg.Chart.Symbol)

	for _, iv := range append([]string{cfg.Chart.Interval}, cfg.Chart.Intervals...) {
		if _, err := binance.ParseKlineInterval(iv); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
	}
	cfg.Chart.Intervals = ensureOption(cfg.Chart.Intervals, cfg.Chart.Interval)

	switch cfg.Cache.Driver {
	case "file", "sqlite", "postgres":
	default:
		return fmt.Errorf("cache.driver: unsupported driver %q", cfg.Cache.Driver)
	}
	if cfg.Cache.MaxCandles <= 0 {
		return fmt.Errorf("cache.max_candles must be positive, got %d", cfg.Cache.MaxCandles)
	}
	if cfg.Cache.Key == "" {
		return errors.New("cache.key must not be empty")
	}
	return nil
}

func ensureOption(options []string, v string) []string {
	for _, o := range options {
		if o == v {
			return options
		}
	}
	return append([]string{v}, options...)
}
