package gen

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arclabs/breadboard/pkg/cache"
	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/errors"
)

// Generator wraps the model client with validation and caching. Identical
// prompts against the same model are served from cache so iterating on a
// design doesn't burn quota.
type Generator struct {
	client *Client
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	ttl    time.Duration
}

// Options configures a Generator.
type Options struct {
	// Client is the model client. Required.
	Client *Client
	// Cache stores generation results; nil disables caching.
	Cache cache.Cache
	// Keyer generates cache keys; nil uses the default keyer.
	Keyer cache.Keyer
	// Logger receives progress logs; nil discards them.
	Logger *log.Logger
	// TTL bounds cache entry lifetime; 0 means no expiry.
	TTL time.Duration
}

// New creates a Generator.
func New(opts Options) *Generator {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Generator{
		client: opts.Client,
		cache:  opts.Cache,
		keyer:  opts.Keyer,
		logger: opts.Logger,
		ttl:    opts.TTL,
	}
}

// Model reports the model name the generator calls.
func (g *Generator) Model() string { return g.client.Model() }

// GenerateCircuit turns a natural-language description into a circuit
// design. The result is only ever a fully parsed design; a response the
// parser rejects is not cached and not returned.
func (g *Generator) GenerateCircuit(ctx context.Context, prompt string) (circuit.Data, error) {
	if err := errors.ValidatePrompt(prompt); err != nil {
		return circuit.Data{}, err
	}

	key := g.keyer.CircuitKey(g.client.Model(), prompt)
	if data, ok, _ := g.cache.Get(ctx, key); ok {
		g.logger.Debug("circuit generation cache hit")
		if d, err := circuit.Unmarshal(data); err == nil {
			return d, nil
		}
		// Unreadable entry, fall through to regeneration.
		_ = g.cache.Delete(ctx, key)
	}

	g.logger.Info("generating circuit", "model", g.client.Model())
	text, err := g.client.GenerateContent(ctx, CircuitPrompt(prompt))
	if err != nil {
		return circuit.Data{}, err
	}

	d, err := ParseCircuit(text)
	if err != nil {
		return circuit.Data{}, err
	}

	if encoded, err := circuit.Marshal(d); err == nil {
		_ = g.cache.Set(ctx, key, encoded, g.ttl)
	}
	return d, nil
}

// GenerateCode produces Arduino firmware for a circuit design.
func (g *Generator) GenerateCode(ctx context.Context, d circuit.Data) (string, error) {
	if len(d.Components) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "cannot generate code for an empty circuit")
	}

	encoded, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash circuit")
	}
	key := g.keyer.CodeKey(g.client.Model(), cache.Hash(encoded))
	if data, ok, _ := g.cache.Get(ctx, key); ok {
		g.logger.Debug("code generation cache hit")
		return string(data), nil
	}

	g.logger.Info("generating firmware", "model", g.client.Model(), "components", len(d.Components))
	text, err := g.client.GenerateContent(ctx, CodePrompt(d))
	if err != nil {
		return "", err
	}

	code := ExtractCode(text)
	if code == "" {
		return "", errors.New(errors.ErrCodeBadResponse, "model returned no code")
	}
	_ = g.cache.Set(ctx, key, []byte(code), g.ttl)
	return code, nil
}

// GenerateCodeFromText produces Arduino firmware straight from a user
// request, with no circuit design in between.
func (g *Generator) GenerateCodeFromText(ctx context.Context, prompt string) (string, error) {
	if err := errors.ValidatePrompt(prompt); err != nil {
		return "", err
	}

	key := g.keyer.CodeKey(g.client.Model(), cache.Hash([]byte(prompt)))
	if data, ok, _ := g.cache.Get(ctx, key); ok {
		g.logger.Debug("code generation cache hit")
		return string(data), nil
	}

	text, err := g.client.GenerateContent(ctx, CodePromptFromText(prompt))
	if err != nil {
		return "", err
	}

	code := ExtractCode(text)
	if code == "" {
		return "", errors.New(errors.ErrCodeBadResponse, "model returned no code")
	}
	_ = g.cache.Set(ctx, key, []byte(code), g.ttl)
	return code, nil
}
