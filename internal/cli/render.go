package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arclabs/breadboard/pkg/cache"
	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "png", "dot"
	showStates bool     // simulate first and annotate pins with their states
	ticks      int      // simulation steps when --states is set
	noCache    bool     // bypass the artifact cache
}

// renderCommand creates the render command for generating circuit diagrams
// from a saved circuit file.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{ticks: pipeline.DefaultTicks}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a circuit file to a wiring diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.showStates, "states", false, "simulate first and annotate pins with their states")
	cmd.Flags().IntVar(&opts.ticks, "ticks", opts.ticks, "simulation steps when --states is set")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If output
// has a format extension (.svg, .png, .dot), it strips that extension.
// This is used when generating multiple files (e.g., circuit.svg,
// circuit.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the circuit, optionally simulates it, and renders it to
// the requested formats.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	c.Logger.Infof("Rendering %s", input)

	circ, err := circuit.ReadFile(input)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded circuit: %d components, %d connections",
		len(circ.Components()), len(circ.Connections()))

	if opts.showStates {
		for range opts.ticks {
			circ.SimulateStep()
		}
		c.Logger.Debugf("Simulated %d tick(s) for state annotations", opts.ticks)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var hash string
	if encoded, err := circuit.Marshal(circ.Data()); err == nil {
		hash = cache.Hash(encoded)
	}

	artifacts, hit, err := runner.RenderWithCacheInfo(cmd.Context(), circ, hash, pipeline.Options{
		Formats:    opts.formats,
		ShowStates: opts.showStates,
		Refresh:    opts.noCache,
	})
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(circ.Components()), len(circ.Connections()), hit)
	return nil
}
