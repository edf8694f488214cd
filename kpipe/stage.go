package kpipe

import (
	"fmt"

	"github.com/birdayz/kpipe/kcall"
	"github.com/birdayz/kpipe/ktype"
)

// Kind is the way a stage is registered with the application builder.
type Kind int

const (
	KindSource Kind = iota
	KindStateless
	KindStateful
	KindStatePartition
	KindSink
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "Source"
	case KindStateless:
		return "Stateless"
	case KindStateful:
		return "Stateful"
	case KindStatePartition:
		return "StatePartition"
	case KindSink:
		return "Sink"
	default:
		return "Unknown"
	}
}

// Stage is one step of a pipeline. Computation stages carry the declared input
// and output types of their function; sources and sinks carry none and fit
// next to any stage.
type Stage struct {
	name string
	kind Kind

	in  ktype.Type
	out ktype.Type

	state     ktype.Type
	partition *ktype.Partition

	callable *kcall.Callable
	config   any

	register func(ApplicationBuilder) error
}

// Computation binds fn to the signature of chain and wraps it into a stage.
// The stage is stateful if the chain declares a state type, and partitioned
// if it also declares a partition.
//
// fn is a function or a *kcall.Callable with arguments already applied; the
// chain then describes the remaining arguments and the stage is named after
// the bound function.
func Computation(chain ktype.Chain, fn any, opts ...StageOption) (*Stage, error) {
	var o stageOptions
	for _, opt := range opts {
		opt(&o)
	}
	name := o.name
	if name == "" {
		name = kcall.FuncName(fn)
	}

	sig, err := chain.Signature()
	if err != nil {
		return nil, fmt.Errorf("computation %q: %w", name, err)
	}
	c, err := kcall.BindNamed(name, fn, sig)
	if err != nil {
		return nil, fmt.Errorf("computation %q: %w", name, err)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	s := &Stage{
		name:     name,
		kind:     KindStateless,
		in:       chain.Input(),
		out:      chain.Output(),
		callable: c,
	}

	state, stateful := chain.State()
	partition, partitioned := chain.Partition()
	if partitioned {
		s.partition = &partition
	}

	switch {
	case stateful && partitioned:
		s.kind = KindStatePartition
		s.state = state
		s.register = func(b ApplicationBuilder) error {
			return b.ToStatePartition(c, state, name, partition.Func, partition.Keys)
		}
	case stateful:
		s.kind = KindStateful
		s.state = state
		s.register = func(b ApplicationBuilder) error {
			return b.ToStateful(c, state, name)
		}
	default:
		s.register = func(b ApplicationBuilder) error {
			return b.To(c)
		}
	}

	return s, nil
}

// MustComputation is like Computation but panics on error.
func MustComputation(chain ktype.Chain, fn any, opts ...StageOption) *Stage {
	s, err := Computation(chain, fn, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Source returns a stage starting the pipeline named pipeline.
func Source(config SourceConfig, pipeline string) *Stage {
	return &Stage{
		name:   pipeline,
		kind:   KindSource,
		config: config,
		register: func(b ApplicationBuilder) error {
			return b.NewPipeline(pipeline, config)
		},
	}
}

// Sink returns a stage writing the pipeline output.
func Sink(config SinkConfig) *Stage {
	return &Stage{
		name:   "sink",
		kind:   KindSink,
		config: config,
		register: func(b ApplicationBuilder) error {
			return b.ToSink(config)
		},
	}
}

// Name returns the stage name: the function name for computations, the
// pipeline name for sources.
func (s *Stage) Name() string {
	return s.name
}

func (s *Stage) Kind() Kind {
	return s.kind
}

// Input returns the declared input type, absent for sources and sinks.
func (s *Stage) Input() ktype.Type {
	return s.in
}

// Output returns the declared output type, absent for sources and sinks.
func (s *Stage) Output() ktype.Type {
	return s.out
}

// State returns the state type of a stateful computation.
func (s *Stage) State() (ktype.Type, bool) {
	return s.state, !s.state.IsZero()
}

// Partition returns the partition of the stage, if declared.
func (s *Stage) Partition() (ktype.Partition, bool) {
	if s.partition == nil {
		return ktype.Partition{}, false
	}
	return *s.partition, true
}

// Callable returns the checked function of a computation, nil for sources and
// sinks.
func (s *Stage) Callable() *kcall.Callable {
	return s.callable
}

// Config returns the configuration of a source or sink.
func (s *Stage) Config() any {
	return s.config
}

// Call calls the stage function directly. See kcall.Callable.Call.
func (s *Stage) Call(args ...any) (any, error) {
	if s.callable == nil {
		return nil, fmt.Errorf("%w: %s stage %q", ErrNotCallable, s.kind, s.name)
	}
	return s.callable.Call(args...)
}

// Then starts a pipeline with s followed by next.
func (s *Stage) Then(next *Stage) (*Pipeline, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil stage", ErrInvalidStage)
	}
	return New(s).Then(next)
}

func (s *Stage) String() string {
	if s.callable == nil {
		return fmt.Sprintf("%s(%s)", s.kind, s.name)
	}
	return fmt.Sprintf("%s(%s %v -> %v)", s.kind, s.name, s.in, s.out)
}
