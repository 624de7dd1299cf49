// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings.
// Debug output wins over quiet mode.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug, flags.Trace:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the machine options matching the program flags.
func MachineOptions(logger *log.Logger, flags options.Flags) []machine.Option {
	opts := []machine.Option{
		machine.WithLogger(logger),
		machine.WithRandom(machine.NewRandom(flags.Seed)),
	}
	if flags.Trace {
		opts = append(opts, machine.WithTrace())
	}
	return opts
}
