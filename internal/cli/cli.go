// Package cli implements the quiverview command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quiverview/pkg/buildinfo"
	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/layout"
	"github.com/matzehuels/quiverview/pkg/observability"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "quiverview"

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

	configPath string
	logFile    string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Quiverview views and edits quivers",
		Long: `Quiverview is a terminal viewer and editor for quivers: directed multigraphs
with parallel arrows and self-loops, written as Quiver([nodes], [[src, dst, label], ...]).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := logHooks{logger: c.Logger}
			observability.SetViewerHooks(hooks)
			observability.SetEditHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/quiverview/config.toml)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "write logs to this file while the viewer is running")

	// Register all subcommands
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadConfig reads the --config file, the user config or the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		if err := errors.ValidatePath(c.configPath); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "layout", cfg.Layout.Engine)
	return cfg, nil
}

// newProvider returns the layout provider selected by cfg.
func newProvider(cfg config.Config) (layout.Provider, error) {
	return layout.FromConfig(cfg.Layout)
}

// sampleQuiver is shown when the viewer starts without a file: three
// parallel arrows 1→2, a path 1→3→2 and a 2-cycle between 3 and 4.
func sampleQuiver(cfg config.View) *quiver.Quiver {
	q := quiver.New(quiver.WithLoopAngle(cfg.LoopAngle))
	for _, e := range [][2]string{{"1", "2"}, {"1", "2"}, {"1", "2"}, {"1", "3"}, {"3", "2"}, {"3", "4"}, {"4", "3"}} {
		q.EnsureNode(e[0])
		q.EnsureNode(e[1])
		q.AddEdge(e[0], e[1], "")
	}
	return q
}
