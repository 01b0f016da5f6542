// Package cli implements the structmc command-line interface.
//
// This package provides commands for running MCMC structure-learning
// chains from a TOML configuration, rendering stored runs as DOT or SVG,
// serving finished runs over HTTP, and inspecting score-table files. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// appName is the application name used for directories and display.
const appName = "structmc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}
