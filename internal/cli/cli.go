// Package cli implements the tooltip command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/buildinfo"
	"github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/tooltip"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tooltip"

	// configFileName is the default config file inside the config directory.
	configFileName = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a new CLI instance with a default logger. Logs go to w;
// command output goes to stdout unless redirected with SetOutput.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tooltip places floating annotations next to targets",
		Long:         `Tooltip computes where a floating annotation goes next to a target rectangle, flipping it to the opposite side or alignment when it would leave the viewport.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.flipsCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/tooltip/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the path of the default config file.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig reads the config at path. With an empty path the default
// config file is used when it exists, else the built-in defaults.
func loadConfig(path string, logger *log.Logger) (tooltip.Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return tooltip.DefaultConfig(), nil
		}
		path = p
	}

	cfg, err := tooltip.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, errors.ErrCodeNotFound) {
			logger.Debug("no config file, using defaults", "path", path)
			return tooltip.DefaultConfig(), nil
		}
		return tooltip.Config{}, err
	}
	logger.Debug("loaded config", "path", path)
	return cfg, nil
}
