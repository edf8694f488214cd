package kpipe

import (
	"errors"
	"fmt"

	"github.com/birdayz/kpipe/ktype"
	"github.com/go-logr/logr"
)

// Sentinel errors for common failure cases.
var (
	ErrIncompatibleStages = errors.New("incompatible stages")
	ErrEmptyPipeline      = errors.New("empty pipeline")
	ErrNotCallable        = errors.New("stage is not callable")
	ErrInvalidStage       = errors.New("invalid stage")
	ErrNilBuilder         = errors.New("nil application builder")
)

// Pipeline is an ordered sequence of stages whose adjacent types were checked
// when the stages were appended.
//
// Pipelines are values: Then returns a new pipeline and leaves the receiver
// untouched.
type Pipeline struct {
	stages []*Stage

	// out is the output type of the pipeline so far, declared by the stage
	// named producer.
	out      ktype.Type
	producer string

	log logr.Logger
}

// New returns a pipeline starting with first, which must not be nil. Use
// Compose to get an error instead.
func New(first *Stage, opts ...Option) *Pipeline {
	p := &Pipeline{
		stages:   []*Stage{first},
		out:      first.out,
		producer: first.name,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compose chains stages in order.
func Compose(stages ...*Stage) (*Pipeline, error) {
	return ComposeWith(nil, stages...)
}

// ComposeWith is like Compose and applies opts to the pipeline.
func ComposeWith(opts []Option, stages ...*Stage) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, ErrEmptyPipeline
	}
	if stages[0] == nil {
		return nil, fmt.Errorf("%w: nil stage", ErrInvalidStage)
	}
	p := New(stages[0], opts...)
	for _, s := range stages[1:] {
		var err error
		if p, err = p.Then(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustCompose is like Compose but panics on error.
func MustCompose(stages ...*Stage) *Pipeline {
	p, err := Compose(stages...)
	if err != nil {
		panic(err)
	}
	return p
}

// Then returns a new pipeline with next appended.
//
// The current output type must be assignable to the input type of next.
// For tuple outputs only the first element is checked. Stages without declared
// types (sources and sinks) are compatible with anything.
func (p *Pipeline) Then(next *Stage) (*Pipeline, error) {
	if next == nil {
		return nil, fmt.Errorf("%w: nil stage", ErrInvalidStage)
	}
	if err := checkCompatible(p.out, p.producer, next); err != nil {
		return nil, err
	}

	stages := make([]*Stage, len(p.stages), len(p.stages)+1)
	copy(stages, p.stages)

	return &Pipeline{
		stages:   append(stages, next),
		out:      next.out,
		producer: next.name,
		log:      p.log,
	}, nil
}

// MustThen is like Then but panics on error.
func (p *Pipeline) MustThen(next *Stage) *Pipeline {
	np, err := p.Then(next)
	if err != nil {
		panic(err)
	}
	return np
}

func checkCompatible(out ktype.Type, producer string, next *Stage) error {
	if out.IsZero() || next.in.IsZero() {
		return nil
	}
	o, in := out.First(), next.in.First()
	if o == in || o.AssignableTo(in) {
		return nil
	}
	return fmt.Errorf("%w: stage %q expects %v or an implementation of it as its input, but %v is produced by %q",
		ErrIncompatibleStages, next.name, in, o, producer)
}

// Stages returns the stages in order.
func (p *Pipeline) Stages() []*Stage {
	stages := make([]*Stage, len(p.stages))
	copy(stages, p.stages)
	return stages
}

func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Output returns the output type of the last stage, absent after a sink.
func (p *Pipeline) Output() ktype.Type {
	return p.out
}

// Init registers every stage with b, in pipeline order. The first failing
// registration stops the replay.
func (p *Pipeline) Init(b ApplicationBuilder) error {
	if b == nil {
		return ErrNilBuilder
	}
	for i, s := range p.stages {
		p.log.V(1).Info("Registering stage", "stage", s.name, "kind", s.kind.String(), "position", i)
		if err := s.register(b); err != nil {
			return fmt.Errorf("failed to register %s stage %q: %w", s.kind, s.name, err)
		}
	}
	p.log.Info("Pipeline registered", "stages", len(p.stages))
	return nil
}
