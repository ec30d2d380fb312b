package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Provider struct {
		BaseURL   string        `yaml:"base_url"`
		APIKey    string        `yaml:"api_key"`
		Timeout   time.Duration `yaml:"timeout"`
		Sentiment struct {
			PacingInterval time.Duration `yaml:"pacing_interval"`
			MaxSentences   int           `yaml:"max_sentences"`
			MinSentenceLen int           `yaml:"min_sentence_len"`
			MaxSentenceLen int           `yaml:"max_sentence_len"`
		} `yaml:"sentiment"`
	} `yaml:"provider"`
	Chart struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"chart"`
	Cache struct {
		TTL struct {
			Indicators time.Duration `yaml:"indicators"`
			Earnings   time.Duration `yaml:"earnings"`
			Trend      time.Duration `yaml:"trend"`
		} `yaml:"ttl"`
		TrendMaxEntries int `yaml:"trend_max_entries"`
		Redis           struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled"`
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"ratelimit"`
	Web struct {
		StaticDir string `yaml:"static_dir"`
	} `yaml:"web"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKETDATA_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("CHART_BASE_URL"); v != "" {
		c.Chart.BaseURL = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Provider.Timeout <= 0 {
		c.Provider.Timeout = 10 * time.Second
	}
	if c.Chart.Timeout <= 0 {
		c.Chart.Timeout = 10 * time.Second
	}
	if c.Provider.Sentiment.PacingInterval <= 0 {
		c.Provider.Sentiment.PacingInterval = 150 * time.Millisecond
	}
	if c.Provider.Sentiment.MaxSentences <= 0 {
		c.Provider.Sentiment.MaxSentences = 20
	}
	if c.Provider.Sentiment.MinSentenceLen <= 0 {
		c.Provider.Sentiment.MinSentenceLen = 20
	}
	if c.Provider.Sentiment.MaxSentenceLen <= 0 {
		c.Provider.Sentiment.MaxSentenceLen = 500
	}
	if c.Cache.TTL.Indicators <= 0 {
		c.Cache.TTL.Indicators = time.Hour
	}
	if c.Cache.TTL.Earnings <= 0 {
		c.Cache.TTL.Earnings = 24 * time.Hour
	}
	if c.Cache.TTL.Trend <= 0 {
		c.Cache.TTL.Trend = 5 * time.Minute
	}
	if c.Cache.TrendMaxEntries <= 0 {
		c.Cache.TrendMaxEntries = 100
	}
}

// Validate checks if the configuration is valid.
// The provider API key is deliberately not required here: a missing key is
// reported per request as a configuration error, not at startup.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Chart.BaseURL == "" {
		return fmt.Errorf("chart.base_url is required")
	}
	return nil
}
