package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/dayscribe/internal/client/suggest"
)

// APIKeyEnvVar overrides the API key from the config file when set.
const APIKeyEnvVar = "ANTHROPIC_API_KEY"

// Config holds runtime settings for the Dayscribe CLI.
//
// SimulatedLatency is the artificial pause applied to login, register and
// logout. SuggestTimeout bounds one suggestion request; zero or less
// means no deadline.
type Config struct {
	DataDir   string
	DBFile    string
	LogLevel  string
	LogFormat string

	SimulatedLatency time.Duration
	SuggestTimeout   time.Duration

	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ""
	c.DBFile = "dayscribe.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SimulatedLatency = 500 * time.Millisecond
	c.SuggestTimeout = 30 * time.Second
	c.AnthropicModel = suggest.DefaultModel
	c.AnthropicBaseURL = suggest.DefaultBaseURL
}

// SuggestionsEnabled reports whether an API key is available.
func (c *Config) SuggestionsEnabled() bool {
	return c.AnthropicAPIKey != ""
}

// LoadConfig builds a Config from defaults, then the config file, then the
// environment, then command-line flags. Later sources win.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv(cfg *Config) {
	if key := os.Getenv(APIKeyEnvVar); key != "" {
		cfg.AnthropicAPIKey = key
	}
}
