package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arclabs/breadboard/pkg/cache"
	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/gen"
	"github.com/arclabs/breadboard/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, generator, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Generator *gen.Generator
	Logger    *log.Logger
}

// NewRunner creates a runner with the given cache, keyer, and generator.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The generator may be nil when only design-based pipelines are run.
func NewRunner(c cache.Cache, keyer cache.Keyer, generator *gen.Generator, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Generator: generator,
		Logger:    logger,
	}
}

// Execute runs the complete generate → materialize → simulate → render
// pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate (or take the supplied design)
	genStart := time.Now()
	data, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Data = data
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.GenerateHit = genHit

	// Compute the design hash for cache keys and API responses
	if encoded, err := circuit.Marshal(data); err == nil {
		result.CircuitHash = cache.Hash(encoded)
	}

	// Stage 2: Materialize
	c := circuit.New()
	c.UpdateFromData(data)
	result.Circuit = c
	result.Stats.ComponentCount = len(c.Components())
	result.Stats.ConnectionCount = len(c.Connections())

	r.Logger.Info("materialized circuit",
		"components", result.Stats.ComponentCount,
		"connections", result.Stats.ConnectionCount,
		"duration", result.Stats.GenerateTime)

	// Stage 3: Simulate
	if !opts.SkipSimulate {
		simStart := time.Now()
		for range opts.Ticks {
			c.SimulateStep()
		}
		result.Simulation = c.SimulationState()
		result.Stats.SimulateTime = time.Since(simStart)

		r.Logger.Info("simulated circuit",
			"ticks", opts.Ticks,
			"duration", result.Stats.SimulateTime)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, result.CircuitHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo produces the circuit design and reports whether it
// came from cache. A supplied design passes through untouched.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (circuit.Data, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return circuit.Data{}, false, err
	}
	if opts.Design != nil {
		return *opts.Design, false, nil
	}
	if r.Generator == nil {
		return circuit.Data{}, false, fmt.Errorf("prompt given but no generator configured")
	}

	// The Generator owns generation caching; peek at the same key so the
	// result can report the hit.
	key := r.Keyer.CircuitKey(r.Generator.Model(), opts.Prompt)
	_, hit, _ := r.Cache.Get(ctx, key)

	data, err := r.Generator.GenerateCircuit(ctx, opts.Prompt)
	if err != nil {
		return circuit.Data{}, false, err
	}
	return data, hit, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (circuit.Data, error) {
	data, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return data, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The circuitHash keys the cache; pass the hash of the design
// the circuit was materialized from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *circuit.Circuit, circuitHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	if !opts.Refresh && circuitHash != "" {
		artifacts := make(map[string][]byte)
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(circuitHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	dot := render.ToDOT(c, render.Options{ShowStates: opts.ShowStates})
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(dot)
		case FormatPNG:
			data, err = render.RenderPNG(dot)
		}
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
	}

	// Cache each format
	if circuitHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(circuitHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c *circuit.Circuit, circuitHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, circuitHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
