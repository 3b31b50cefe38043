package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texbox/internal/config"
	"github.com/matzehuels/texbox/pkg/buildinfo"
	"github.com/matzehuels/texbox/pkg/cache"
	"github.com/matzehuels/texbox/pkg/pipeline"
	"github.com/matzehuels/texbox/pkg/tex"
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

	// ConfigPath names an explicit config file; empty searches the
	// default locations.
	ConfigPath string

	// Out receives command output (artifacts written to stdout, dumps).
	Out io.Writer

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "texbox",
		Short:        "texbox typesets LaTeX math as boxes and glue",
		Long:         `texbox parses LaTeX math markup, lays it out with TeX's boxes-and-glue rules and renders the result as SVG, PNG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/texbox/texbox.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.symbolsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Shared Resources
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// newEngine creates a typesetting engine logging through the CLI logger.
func (c *CLI) newEngine() (*tex.Engine, error) {
	return tex.New(tex.WithLogger(c.Logger))
}

// newRunner creates a pipeline runner over the configured cache backend.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	e, err := c.newEngine()
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(cmd, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(e, store, nil, c.Logger), nil
}

// newCache opens the configured backend. An unreachable remote backend
// degrades to no caching so the command still runs; misconfiguration is
// still an error.
func (c *CLI) newCache(cmd *cobra.Command, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(cmd.Context(), cfg.CacheOptions())
	if err != nil {
		if errors.Is(err, cache.ErrNetwork) {
			c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "err", err)
			return cache.NewNullCache(), nil
		}
		return nil, err
	}
	return store, nil
}
