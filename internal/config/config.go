// Package config defines the CLI structure and configuration for wheeler.
package config

import (
	"github.com/wheeler-host/wheeler/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"WHEELER_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"WHEELER_LOG_FILE"`
	RawFile string `help:"Raw packet/report log file path (default: none)" env:"WHEELER_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Config string `help:"Configuration file path" env:"WHEELER_CONFIG"`

	Daemon    cmd.Daemon        `cmd:"" help:"Run the Wheeler bridge daemon"`
	Send      cmd.Send          `cmd:"" help:"Stream test control packets at a running daemon"`
	ConfigGen cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
