package model

import "time"

// Config is the complete aidtrace configuration
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	FX        FXConfig        `yaml:"fx" mapstructure:"fx"`
	Enrich    EnrichConfig    `yaml:"enrich" mapstructure:"enrich"`
	Acquire   AcquireConfig   `yaml:"acquire" mapstructure:"acquire"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Translate TranslateConfig `yaml:"translate" mapstructure:"translate"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// HTTPConfig controls outbound document requests
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxAttempts       int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	Backoff           time.Duration `yaml:"backoff" mapstructure:"backoff"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// FXConfig controls exchange-rate lookups
type FXConfig struct {
	Remote  bool          `yaml:"remote" mapstructure:"remote"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// EnrichConfig bounds the enrichment run
type EnrichConfig struct {
	MaxRecords       int           `yaml:"max_records" mapstructure:"max_records"`
	Workers          int           `yaml:"workers" mapstructure:"workers"`
	Budget           time.Duration `yaml:"budget" mapstructure:"budget"` // soft; shapes scheduling only
	MaxURLsPerRecord int           `yaml:"max_urls_per_record" mapstructure:"max_urls_per_record"`
}

// AcquireConfig toggles document decoders
type AcquireConfig struct {
	SkipPDF bool `yaml:"skip_pdf" mapstructure:"skip_pdf"`
}

// CacheConfig controls the on-disk document cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// TranslateConfig configures the optional query translator
type TranslateConfig struct {
	Provider string        `yaml:"provider" mapstructure:"provider"` // "" or "openai"
	Model    string        `yaml:"model,omitempty" mapstructure:"model"`
	BaseURL  string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey   string        `yaml:"-" mapstructure:"api_key"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           7 * time.Second,
			UserAgent:         "Mozilla/5.0 (compatible; AidScraper/1.0)",
			MaxBodyBytes:      8 << 20,
			MaxAttempts:       3,
			Backoff:           300 * time.Millisecond,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		FX: FXConfig{
			Remote:  true,
			BaseURL: "https://api.exchangerate.host",
			Timeout: 5 * time.Second,
		},
		Enrich: EnrichConfig{
			MaxRecords:       8,
			Workers:          8,
			Budget:           90 * time.Second,
			MaxURLsPerRecord: 3,
		},
		Acquire: AcquireConfig{
			SkipPDF: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".aidscrape_cache",
		},
		Translate: TranslateConfig{
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
