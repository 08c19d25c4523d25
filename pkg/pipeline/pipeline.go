// Package pipeline provides the core design pipeline for Breadboard.
//
// This package implements the complete generate → materialize → simulate →
// render pipeline used by both the CLI and the API server. Centralizing it
// keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Generate: Turn a natural-language prompt into a circuit design
//     (skipped when a design is supplied directly)
//  2. Materialize: Build a live circuit from the design
//  3. Simulate: Run digital simulation ticks over the circuit
//  4. Render: Produce diagram output in various formats (DOT, SVG, PNG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, generator, logger)
//	opts := pipeline.Options{
//	    Prompt:  "an led on pin 13",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arclabs/breadboard/pkg/cache"
	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTicks is the number of simulation steps run when none are
	// requested. One tick fully settles any circuit without pressed
	// buttons.
	DefaultTicks = 1

	// MaxTicks bounds simulation work per request.
	MaxTicks = 1000
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the design pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options. Exactly one of Prompt or Design must be set:
	// Prompt runs AI generation, Design skips straight to materialize.
	Prompt string        `json:"prompt,omitempty"`
	Design *circuit.Data `json:"design,omitempty"`

	// Simulate options
	Ticks        int  `json:"ticks,omitempty"`
	SkipSimulate bool `json:"skip_simulate,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowStates bool     `json:"show_states,omitempty"`

	// Refresh bypasses the render cache (generation caching is owned by
	// the Generator and controlled at construction time).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the circuit design that was materialized.
	Data circuit.Data

	// Circuit is the live circuit built from Data, simulated in place.
	Circuit *circuit.Circuit

	// Simulation is the pin-state snapshot after the final tick. Zero
	// when simulation was skipped.
	Simulation circuit.SimulationState

	// CircuitHash is the content hash of the design.
	CircuitHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount  int
	ConnectionCount int
	GenerateTime    time.Duration
	SimulateTime    time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the design came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateRenderFormat(format)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	o.SetSimulateDefaults()
	if err := o.ValidateForSimulate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks required fields for the generate stage.
func (o *Options) ValidateForGenerate() error {
	if o.Prompt == "" && o.Design == nil {
		return errors.New(errors.ErrCodeInvalidInput, "prompt or design is required")
	}
	if o.Prompt != "" && o.Design != nil {
		return errors.New(errors.ErrCodeInvalidInput, "prompt and design are mutually exclusive")
	}
	if o.Prompt != "" {
		if err := errors.ValidatePrompt(o.Prompt); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// SetSimulateDefaults sets default values for simulation.
func (o *Options) SetSimulateDefaults() {
	if o.Ticks == 0 {
		o.Ticks = DefaultTicks
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForSimulate validates simulation options.
func (o *Options) ValidateForSimulate() error {
	o.SetSimulateDefaults()
	if o.Ticks < 0 || o.Ticks > MaxTicks {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must be between 1 and %d", MaxTicks)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShowStates: o.ShowStates,
	}
}
