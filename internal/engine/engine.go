// Package engine wires the registry, synthesizer, formatter and
// resolver behind one entry point. Each request runs start to finish
// on the calling goroutine; the registry is the only shared state.
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/Lumos-Labs-HQ/mockforge/internal/format"
	"github.com/Lumos-Labs-HQ/mockforge/internal/resolve"
	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
	"github.com/Lumos-Labs-HQ/mockforge/internal/sqlsafe"
	"github.com/Lumos-Labs-HQ/mockforge/internal/synth"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

type Options struct {
	// MaxRecords caps the record count of a single request.
	MaxRecords int

	// DefaultFormat applies when a request has no format tag.
	DefaultFormat types.Format

	// Interpreter handles the free-text path. Nil selects the offline
	// pattern interpreter.
	Interpreter resolve.Interpreter

	Logger *zap.Logger
}

type Engine struct {
	registry  *schema.Registry
	synth     *synth.Synthesizer
	formatter *format.Formatter
	resolver  *resolve.Resolver
	logger    *zap.Logger
}

func New(opts Options) *Engine {
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = 1000
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = types.FormatSQL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	registry := schema.NewRegistry(opts.Logger)
	return &Engine{
		registry:  registry,
		synth:     synth.New(registry, opts.MaxRecords, opts.Logger),
		formatter: format.New(sqlsafe.NewGuard(registry)),
		resolver:  resolve.New(registry, opts.MaxRecords, opts.DefaultFormat, opts.Interpreter),
		logger:    opts.Logger,
	}
}

// Registry exposes the schema registry for custom schema registration
// and listing.
func (e *Engine) Registry() *schema.Registry {
	return e.registry
}

// Generate runs one structured request through resolution, synthesis
// and rendering.
func (e *Engine) Generate(req types.GenerationRequest) (*types.Artifact, error) {
	resolved, err := e.resolver.Resolve(req)
	if err != nil {
		return nil, err
	}
	batch, err := e.synth.Generate(resolved, nil)
	if err != nil {
		return nil, err
	}

	artifact, err := e.formatter.Render(batch, resolved.Format)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("artifact rendered",
		zap.String("schema", resolved.Schema),
		zap.Int("records", len(batch.Records)),
		zap.String("format", string(resolved.Format)),
		zap.Int("bytes", len(artifact.Data)))
	return artifact, nil
}

// GenerateFromText interprets free text and runs the result. The
// context covers the interpreter call, which may leave the process.
func (e *Engine) GenerateFromText(ctx context.Context, text string) (*types.Artifact, error) {
	resolved, err := e.resolver.ResolveText(ctx, text)
	if err != nil {
		return nil, err
	}
	batch, err := e.synth.Generate(resolved, nil)
	if err != nil {
		return nil, err
	}
	return e.formatter.Render(batch, resolved.Format)
}

// GenerateDataset generates several related batches in dependency
// order so foreign keys resolve to rows that exist in the dataset, and
// renders each batch with its own format tag. Artifacts follow
// generation order.
func (e *Engine) GenerateDataset(reqs []types.GenerationRequest) ([]*types.Artifact, error) {
	resolved := make([]types.GenerationRequest, len(reqs))
	for i, req := range reqs {
		r, err := e.resolver.Resolve(req)
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}

	batches, err := e.synth.GenerateDataset(resolved)
	if err != nil {
		return nil, err
	}

	artifacts := make([]*types.Artifact, len(batches))
	for i, batch := range batches {
		artifact, err := e.formatter.Render(batch, batch.Request.Format)
		if err != nil {
			return nil, err
		}
		artifacts[i] = artifact
	}
	return artifacts, nil
}
