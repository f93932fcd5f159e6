// Package cli implements the layoutctl command-line interface.
// Grounded on matzehuels-stacktower's internal/cli/cli.go: a CLI struct
// carries shared state (just a logger here) and a RootCommand method
// wires every subcommand onto a single cobra.Command tree.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphlayout/layered/config"
	"github.com/graphlayout/layered/logging"
)

// Log levels re-exported so main.go doesn't need to import charmbracelet/log directly.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared across subcommands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI with a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: logging.New(w, level)}
}

// SetLogLevel updates the logger's level in place.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the layoutctl root command with every subcommand
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "layoutctl",
		Short:        "layoutctl computes hierarchical layouts for directed graphs",
		Long:         `layoutctl runs the Sugiyama-style layered layout engine against a graph read from DOT or JSON, and writes the positioned result as JSON.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults to config.Default())")

	root.AddCommand(c.runCommand(&configPath))
	root.AddCommand(c.serveCommand(&configPath))
	root.AddCommand(c.getCommand())

	return root
}

// loadConfig resolves --config into a config.Config, falling back to
// config.Default() when no path was given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
