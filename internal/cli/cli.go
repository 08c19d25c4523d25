// Package cli implements the breadboard command-line interface.
//
// This package provides commands for simulating circuit files, rendering
// them as diagrams, generating circuits and firmware with the AI
// collaborator, and managing stored designs. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - simulate: Run digital simulation over a circuit file
//   - render: Generate SVG, PNG, or DOT diagrams
//   - generate: Turn a prompt into a circuit design and Arduino firmware
//   - verify: Report wiring problems in a circuit file
//   - designs: List, save, load, and delete stored designs
//   - serve: Run the HTTP editing API
//   - cache: Manage the generation cache
//   - tui: Browse stored designs interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arclabs/breadboard/pkg/buildinfo"
	"github.com/arclabs/breadboard/pkg/cache"
	"github.com/arclabs/breadboard/pkg/config"
	"github.com/arclabs/breadboard/pkg/gen"
	"github.com/arclabs/breadboard/pkg/pipeline"
	"github.com/arclabs/breadboard/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "breadboard"

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
	Config config.Config
}

// New creates a new CLI instance with a default logger and the user's
// configuration. Config load failures fall back to defaults; the command
// that actually needs the broken setting surfaces the error.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	return &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Breadboard designs and simulates Arduino circuits",
		Long:         `Breadboard is a circuit design tool: build Arduino circuits from parts or plain-language prompts, simulate their digital behavior, and render wiring diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.designsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ca, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ca, nil, c.newGenerator(ca), c.Logger), nil
}

// newGenerator builds the AI generator from configuration. The generator
// itself reports a missing API key when first used.
func (c *CLI) newGenerator(ca cache.Cache) *gen.Generator {
	return gen.New(gen.Options{
		Client: gen.NewClient(c.Config.API.Key, c.Config.API.Model, c.Config.API.URL),
		Cache:  ca,
		Logger: c.Logger,
		TTL:    time.Duration(c.Config.Cache.TTLHours) * time.Hour,
	})
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "redis" {
		return cache.NewRedisCache(context.Background(),
			c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newStore builds the design store. An explicit backend overrides the
// configured one.
func (c *CLI) newStore(cmd *cobra.Command, backend string) (store.Store, error) {
	if backend == "" {
		backend = c.Config.Store.Backend
	}
	if backend == "mongo" {
		return store.NewMongoStore(cmd.Context(), c.Config.Store.MongoURI, c.Config.Store.MongoDatabase)
	}
	return store.NewFileStore(c.Config.Store.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/breadboard/).
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
