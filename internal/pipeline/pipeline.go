// Package pipeline orchestrates the barcode decode search: the 2-D matrix
// path first, then a bounded search over transform x line x threshold x
// decoder combinations, short-circuiting on the first checksum-valid decode.
package pipeline

import (
	"errors"
	"time"

	"github.com/strichware/bardec/internal/matrix"
	"github.com/strichware/bardec/internal/symbology"
)

// Config holds configuration for the decode pipeline.
type Config struct {
	// Budget caps the total number of decoder evaluations per request.
	Budget int
	// Timeout bounds the wall-clock time per request (0 = no timeout).
	Timeout time.Duration
	// Workers sets the number of parallel transform workers; 1 runs the
	// strategy search sequentially and is fully deterministic.
	Workers int
	// TraceLimit bounds the diagnostic trace length (0 = unlimited).
	TraceLimit int
	// EnableMatrix toggles the 2-D (QR) priority path.
	EnableMatrix bool
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Budget:       20000,
		Timeout:      2 * time.Second,
		Workers:      1,
		TraceLimit:   200,
		EnableMatrix: true,
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg      Config
	matrix   matrix.Decoder
	decoders []symbology.Decoder
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithBudget sets the decoder evaluation budget.
func (b *Builder) WithBudget(n int) *Builder {
	if n > 0 {
		b.cfg.Budget = n
	}
	return b
}

// WithTimeout sets the per-request wall-clock timeout.
func (b *Builder) WithTimeout(d time.Duration) *Builder {
	if d >= 0 {
		b.cfg.Timeout = d
	}
	return b
}

// WithWorkers sets the number of parallel transform workers.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.cfg.Workers = n
	}
	return b
}

// WithTraceLimit sets the diagnostic trace bound.
func (b *Builder) WithTraceLimit(n int) *Builder {
	if n >= 0 {
		b.cfg.TraceLimit = n
	}
	return b
}

// WithMatrix toggles the 2-D matrix priority path.
func (b *Builder) WithMatrix(enabled bool) *Builder {
	b.cfg.EnableMatrix = enabled
	return b
}

// WithMatrixDecoder overrides the 2-D matrix collaborator (used by tests).
func (b *Builder) WithMatrixDecoder(d matrix.Decoder) *Builder {
	b.matrix = d
	return b
}

// WithDecoders overrides the 1-D symbology decoder set (used by tests).
func (b *Builder) WithDecoders(decoders ...symbology.Decoder) *Builder {
	if len(decoders) > 0 {
		b.decoders = decoders
	}
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks that the configuration is usable.
func (b *Builder) Validate() error {
	if b.cfg.Budget <= 0 {
		return errors.New("budget must be > 0")
	}
	if b.cfg.Workers <= 0 {
		return errors.New("workers must be > 0")
	}
	return nil
}

// Pipeline runs decode requests. It holds no mutable state between calls and
// is safe for concurrent use without coordination.
type Pipeline struct {
	cfg      Config
	matrix   matrix.Decoder
	decoders []symbology.Decoder
}

// Build initializes the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:      b.cfg,
		matrix:   b.matrix,
		decoders: b.decoders,
	}
	if p.matrix == nil && b.cfg.EnableMatrix {
		p.matrix = matrix.NewQRDecoder()
	}
	if !b.cfg.EnableMatrix {
		p.matrix = nil
	}
	if p.decoders == nil {
		p.decoders = symbology.Decoders()
	}
	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }
