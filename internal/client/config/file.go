package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/dayscribe/internal/flagx"
	"github.com/dmitrijs2005/dayscribe/internal/timex"
)

// fileConfig is the on-disk shape shared by JSON and TOML. Pointer fields
// distinguish "absent" from "zero".
type fileConfig struct {
	DataDir          *string         `json:"data_dir" toml:"data_dir"`
	DBFile           *string         `json:"db_file" toml:"db_file"`
	LogLevel         *string         `json:"log_level" toml:"log_level"`
	LogFormat        *string         `json:"log_format" toml:"log_format"`
	SimulatedLatency *timex.Duration `json:"simulated_latency" toml:"simulated_latency"`
	SuggestTimeout   *timex.Duration `json:"suggest_timeout" toml:"suggest_timeout"`
	AnthropicAPIKey  *string         `json:"anthropic_api_key" toml:"anthropic_api_key"`
	AnthropicModel   *string         `json:"anthropic_model" toml:"anthropic_model"`
	AnthropicBaseURL *string         `json:"anthropic_base_url" toml:"anthropic_base_url"`
}

// parseFile overlays cfg with the config file resolved by flagx.ConfigFile.
// No file configured is not an error.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFile()
	if path == "" {
		return nil
	}
	return loadFile(cfg, path)
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse json config %s: %w", path, err)
		}
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DBFile, fc.DBFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.AnthropicAPIKey, fc.AnthropicAPIKey)
	setString(&cfg.AnthropicModel, fc.AnthropicModel)
	setString(&cfg.AnthropicBaseURL, fc.AnthropicBaseURL)

	if fc.SimulatedLatency != nil {
		cfg.SimulatedLatency = fc.SimulatedLatency.Duration
	}
	if fc.SuggestTimeout != nil {
		cfg.SuggestTimeout = fc.SuggestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
