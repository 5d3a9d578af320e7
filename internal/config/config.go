package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Polling   PollingConfig   `mapstructure:"polling"`
	Search    SearchConfig    `mapstructure:"search"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`

	// AllowedOrigins lists browser origins allowed to call the API; "*" allows any
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UpstreamConfig selects how the finance host is reached and how politely.
type UpstreamConfig struct {
	Mode         string        `mapstructure:"mode"` // "direct" or "relay"
	BaseURL      string        `mapstructure:"base_url"`
	RelayURL     string        `mapstructure:"relay_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
	IndexDelay   time.Duration `mapstructure:"index_delay"`
	UserAgent    string        `mapstructure:"user_agent"`
}

type WatchlistConfig struct {
	Backend string   `mapstructure:"backend"` // "memory", "file", "sqlite" or "s3"
	Key     string   `mapstructure:"key"`
	Path    string   `mapstructure:"path"` // For file
	DSN     string   `mapstructure:"dsn"`  // For sqlite
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// PollingConfig holds the refresh period of each view.
type PollingConfig struct {
	Detail    time.Duration `mapstructure:"detail"`
	Watchlist time.Duration `mapstructure:"watchlist"`
	Summary   time.Duration `mapstructure:"summary"`
	Listing   time.Duration `mapstructure:"listing"`
}

type SearchConfig struct {
	Threshold      float64 `mapstructure:"threshold"`
	MinMatchLength int     `mapstructure:"min_match_length"`
	Limit          int     `mapstructure:"limit"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file. Keys missing from the file keep their
// Defaults value.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)

	v.SetDefault("upstream.mode", d.Upstream.Mode)
	v.SetDefault("upstream.base_url", d.Upstream.BaseURL)
	v.SetDefault("upstream.relay_url", d.Upstream.RelayURL)
	v.SetDefault("upstream.timeout", d.Upstream.Timeout)
	v.SetDefault("upstream.request_delay", d.Upstream.RequestDelay)
	v.SetDefault("upstream.index_delay", d.Upstream.IndexDelay)
	v.SetDefault("upstream.user_agent", d.Upstream.UserAgent)

	v.SetDefault("watchlist.backend", d.Watchlist.Backend)
	v.SetDefault("watchlist.key", d.Watchlist.Key)
	v.SetDefault("watchlist.path", d.Watchlist.Path)
	v.SetDefault("watchlist.dsn", d.Watchlist.DSN)

	v.SetDefault("polling.detail", d.Polling.Detail)
	v.SetDefault("polling.watchlist", d.Polling.Watchlist)
	v.SetDefault("polling.summary", d.Polling.Summary)
	v.SetDefault("polling.listing", d.Polling.Listing)

	v.SetDefault("search.threshold", d.Search.Threshold)
	v.SetDefault("search.min_match_length", d.Search.MinMatchLength)
	v.SetDefault("search.limit", d.Search.Limit)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",

			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Upstream: UpstreamConfig{
			Mode:         "direct",
			BaseURL:      "https://query1.finance.yahoo.com",
			RelayURL:     "https://api.allorigins.win/raw",
			Timeout:      10 * time.Second,
			RequestDelay: 100 * time.Millisecond,
			IndexDelay:   200 * time.Millisecond,
			UserAgent:    "Mozilla/5.0",
		},
		Watchlist: WatchlistConfig{
			Backend: "file",
			Key:     "stockTracker_watchlist",
			Path:    "./data",
			DSN:     "./data/stockdeck.db",
		},
		Polling: PollingConfig{
			Detail:    time.Minute,
			Watchlist: time.Minute,
			Summary:   2 * time.Minute,
			Listing:   5 * time.Minute,
		},
		Search: SearchConfig{
			Threshold:      0.4,
			MinMatchLength: 2,
			Limit:          10,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	// Upstream validation
	switch c.Upstream.Mode {
	case "", "direct":
	case "relay":
		if c.Upstream.RelayURL == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("upstream relay_url required when mode is relay"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("upstream mode must be direct or relay, got %q", c.Upstream.Mode))
	}
	for name, d := range map[string]time.Duration{
		"timeout":       c.Upstream.Timeout,
		"request_delay": c.Upstream.RequestDelay,
		"index_delay":   c.Upstream.IndexDelay,
	} {
		if d < 0 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("upstream %s cannot be negative, got %s", name, d))
		}
	}

	// Watchlist validation
	switch c.Watchlist.Backend {
	case "", "memory":
	case "file":
		if c.Watchlist.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("watchlist path required when backend is file"))
		}
	case "sqlite":
		if c.Watchlist.DSN == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("watchlist dsn required when backend is sqlite"))
		}
	case "s3":
		if c.Watchlist.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("watchlist s3 bucket required when backend is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown watchlist backend %q", c.Watchlist.Backend))
	}

	// Polling validation
	for name, d := range map[string]time.Duration{
		"detail":    c.Polling.Detail,
		"watchlist": c.Polling.Watchlist,
		"summary":   c.Polling.Summary,
		"listing":   c.Polling.Listing,
	} {
		if d != 0 && d < time.Second {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("polling %s must be at least 1s, got %s", name, d))
		}
	}

	// Search validation
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("search threshold must be between 0 and 1, got %f", c.Search.Threshold))
	}
	if c.Search.MinMatchLength < 0 || c.Search.Limit < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("search min_match_length and limit cannot be negative"))
	}

	return nil
}
