package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dayscribe/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// listed here are looked at, so -c / -config do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-f", "-m", "-latency"})

	fs := flag.NewFlagSet("dayscribe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.AnthropicModel, "m", cfg.AnthropicModel, "suggestion model")
	fs.DurationVar(&cfg.SimulatedLatency, "latency", cfg.SimulatedLatency, "simulated auth delay")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
