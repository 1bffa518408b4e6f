// Package cli implements the pageflow command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvollbrecht/pageflow/pkg/buildinfo"
	"github.com/mvollbrecht/pageflow/pkg/cache"
	"github.com/mvollbrecht/pageflow/pkg/pipeline"
)

// ============================================================================
// Constants
// ============================================================================

// appName is the application name used for directories and display.
const appName = "pageflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ============================================================================
// CLI - Central CLI State
// ============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config
// file loaded if one exists.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
	}
	cfg, err := LoadConfig("")
	if err != nil {
		c.Logger.Warn("ignoring config file", "error", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pageflow",
		Short:        "Pageflow paginates two-column papers and renders page previews",
		Long:         `Pageflow is a CLI tool for laying out IEEE-style two-column conference papers: it estimates element heights, distributes content across pages, and renders per-page previews.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ============================================================================
// Runner Factory
// ============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := c.Config.CacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// ============================================================================
// Paths
// ============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pageflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// ============================================================================
// Options Helpers
// ============================================================================

// pipelineOptions builds pipeline options from the config defaults.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Estimator: c.Config.Estimator,
		Scale:     c.Config.Scale,
		Logger:    c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
