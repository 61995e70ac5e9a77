// Package config holds the immutable runtime configuration: the commodity
// table, upstream endpoints, fetch knobs and the failure policy. A Config is
// built once at startup and passed down; nothing mutates it afterwards.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Failure policies for a generate run.
const (
	// OnFailureFallback writes the fixed fallback document and exits 0, so
	// the downstream commit step always finds the output file.
	OnFailureFallback = "fallback"
	// OnFailureFail exits non-zero without writing a partial document.
	OnFailureFail = "fail"
)

// Commodity maps one ticker entry to its upstream series.
type Commodity struct {
	Key      string `mapstructure:"key"`
	Label    string `mapstructure:"label"`
	SeriesID string `mapstructure:"series_id"`
	// CentsPerPound marks series quoted in US cents per pound instead of
	// USD per tonne.
	CentsPerPound bool `mapstructure:"cents_per_pound"`
}

// Config is the complete application configuration.
type Config struct {
	Commodities []Commodity `mapstructure:"commodities"`

	ObservationStart string `mapstructure:"observation_start"`
	AverageYear      string `mapstructure:"average_year"`
	OutputPath       string `mapstructure:"output_path"`
	OnFailure        string `mapstructure:"on_failure"`

	FRED   FRED   `mapstructure:"fred"`
	Rates  Rates  `mapstructure:"rates"`
	Fetch  Fetch  `mapstructure:"fetch"`
	Server Server `mapstructure:"server"`
}

// FRED holds the observations endpoint settings. The API key is read from
// the environment only (TICKER_FRED_API_KEY), never from a file default.
type FRED struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// Rates holds the exchange-rate endpoint settings.
type Rates struct {
	BaseURL      string  `mapstructure:"base_url"`
	Base         string  `mapstructure:"base"`
	Symbol       string  `mapstructure:"symbol"`
	FallbackRate float64 `mapstructure:"fallback_rate"`
}

// Fetch holds the shared HTTP fetch knobs.
type Fetch struct {
	TimeoutSec   int `mapstructure:"timeout_sec"`
	Retries      int `mapstructure:"retries"`
	RetryDelayMs int `mapstructure:"retry_delay_ms"`
}

func (f Fetch) Timeout() time.Duration    { return time.Duration(f.TimeoutSec) * time.Second }
func (f Fetch) RetryDelay() time.Duration { return time.Duration(f.RetryDelayMs) * time.Millisecond }

// Server holds the settings of the serving binary.
type Server struct {
	Port              string `mapstructure:"port"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
	CacheTTLSec       int    `mapstructure:"cache_ttl_sec"`
}

// Load reads configuration from defaults, an optional ticker.yaml in the
// working directory and TICKER_* environment variables, lowest precedence
// first.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("ticker")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TICKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file, defaults plus env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if len(cfg.Commodities) == 0 {
		cfg.Commodities = DefaultCommodities()
	}
	overrideFromEnv(&cfg)

	switch cfg.OnFailure {
	case OnFailureFallback, OnFailureFail:
	default:
		return nil, fmt.Errorf("on_failure must be %q or %q, got %q", OnFailureFallback, OnFailureFail, cfg.OnFailure)
	}
	return &cfg, nil
}

// DefaultCommodities is the fixed series mapping the ticker was built for.
func DefaultCommodities() []Commodity {
	return []Commodity{
		{Key: "cocoa", Label: "Kakao", SeriesID: "PCOCOUSDM"},
		{Key: "sugar", Label: "Zucker", SeriesID: "PSUGAISAUSDM", CentsPerPound: true},
		{Key: "wheat", Label: "Weizen", SeriesID: "PWHEAMTUSDM"},
		{Key: "corn", Label: "Mais", SeriesID: "PMAIZMTUSDM"},
		{Key: "rice", Label: "Reis", SeriesID: "PRICENPQUSDM"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("observation_start", "2023-01-01")
	v.SetDefault("average_year", "2024")
	v.SetDefault("output_path", "ticker.json")
	v.SetDefault("on_failure", OnFailureFallback)

	v.SetDefault("fred.base_url", "https://api.stlouisfed.org/fred")

	v.SetDefault("rates.base_url", "https://api.frankfurter.app/latest")
	v.SetDefault("rates.base", "USD")
	v.SetDefault("rates.symbol", "EUR")
	v.SetDefault("rates.fallback_rate", 0.92)

	v.SetDefault("fetch.timeout_sec", 10)
	v.SetDefault("fetch.retries", 2)
	v.SetDefault("fetch.retry_delay_ms", 500)

	v.SetDefault("server.port", "8200")
	v.SetDefault("server.request_timeout_sec", 10)
	v.SetDefault("server.cache_ttl_sec", 5)
}

// overrideFromEnv explicitly reads sensitive keys from the environment.
// AutomaticEnv only resolves keys that have defaults, which a credential
// must not have.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("TICKER_FRED_API_KEY"); key != "" {
		cfg.FRED.APIKey = key
	}
}
