// Package kpipetest provides an ApplicationBuilder recording registrations,
// for testing pipelines without a runtime.
package kpipetest

import (
	"fmt"
	"reflect"

	"github.com/birdayz/kpipe/kcall"
	"github.com/birdayz/kpipe/kpipe"
	"github.com/birdayz/kpipe/ktype"
)

// Method identifies an ApplicationBuilder method.
type Method string

const (
	MethodNewPipeline      Method = "NewPipeline"
	MethodTo               Method = "To"
	MethodToStateful       Method = "ToStateful"
	MethodToStatePartition Method = "ToStatePartition"
	MethodToSink           Method = "ToSink"
)

// Call is one recorded registration. Fields not taken by Method are zero.
type Call struct {
	Method    Method
	Name      string
	Config    any
	Callable  *kcall.Callable
	State     ktype.Type
	Partition ktype.PartitionFunc
	Keys      []ktype.Key
}

// Recorder records every call made to it. Errors returned by FailOn are
// returned from the matching method.
type Recorder struct {
	Calls []Call

	// FailOn makes the given method return the error.
	FailOn map[Method]error
}

var _ kpipe.ApplicationBuilder = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(c Call) error {
	r.Calls = append(r.Calls, c)
	return r.FailOn[c.Method]
}

func (r *Recorder) NewPipeline(name string, config kpipe.SourceConfig) error {
	return r.record(Call{Method: MethodNewPipeline, Name: name, Config: config})
}

func (r *Recorder) To(c *kcall.Callable) error {
	return r.record(Call{Method: MethodTo, Name: c.Name(), Callable: c})
}

func (r *Recorder) ToStateful(c *kcall.Callable, state ktype.Type, name string) error {
	return r.record(Call{Method: MethodToStateful, Name: name, Callable: c, State: state})
}

func (r *Recorder) ToStatePartition(c *kcall.Callable, state ktype.Type, name string, fn ktype.PartitionFunc, keys []ktype.Key) error {
	return r.record(Call{
		Method:    MethodToStatePartition,
		Name:      name,
		Callable:  c,
		State:     state,
		Partition: fn,
		Keys:      keys,
	})
}

func (r *Recorder) ToSink(config kpipe.SinkConfig) error {
	return r.record(Call{Method: MethodToSink, Config: config})
}

// Methods returns the recorded methods in order.
func (r *Recorder) Methods() []Method {
	methods := make([]Method, len(r.Calls))
	for i, c := range r.Calls {
		methods[i] = c.Method
	}
	return methods
}

// Names returns the recorded names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// CallsTo returns the recorded calls to m.
func (r *Recorder) CallsTo(m Method) []Call {
	var calls []Call
	for _, c := range r.Calls {
		if c.Method == m {
			calls = append(calls, c)
		}
	}
	return calls
}

// SameFunc reports whether a and b are the same function value.
func SameFunc(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Func || vb.Kind() != reflect.Func {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

func (c Call) String() string {
	switch c.Method {
	case MethodNewPipeline:
		return fmt.Sprintf("%s(%q, %v)", c.Method, c.Name, c.Config)
	case MethodTo:
		return fmt.Sprintf("%s(%s)", c.Method, c.Name)
	case MethodToStateful:
		return fmt.Sprintf("%s(%s, %v, %q)", c.Method, c.Name, c.State, c.Name)
	case MethodToStatePartition:
		return fmt.Sprintf("%s(%s, %v, %q, %d keys)", c.Method, c.Name, c.State, c.Name, len(c.Keys))
	default:
		return fmt.Sprintf("%s(%v)", c.Method, c.Config)
	}
}
