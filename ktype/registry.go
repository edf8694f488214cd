package ktype

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry maps type names to types, for tags declared by name (for example
// in configuration). Names are never evaluated; only registered names resolve.
//
// Registry is not safe for concurrent registration.
type Registry struct {
	types map[string]reflect.Type
}

// NewRegistry returns a registry knowing the predeclared Go types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]reflect.Type)}
	for _, t := range []reflect.Type{
		TypeOf[string]().First(),
		TypeOf[bool]().First(),
		TypeOf[int]().First(),
		TypeOf[int8]().First(),
		TypeOf[int16]().First(),
		TypeOf[int32]().First(),
		TypeOf[int64]().First(),
		TypeOf[uint]().First(),
		TypeOf[uint8]().First(),
		TypeOf[uint16]().First(),
		TypeOf[uint32]().First(),
		TypeOf[uint64]().First(),
		TypeOf[float32]().First(),
		TypeOf[float64]().First(),
		TypeOf[[]byte]().First(),
		TypeOf[any]().First(),
		TypeOf[error]().First(),
	} {
		r.types[t.String()] = t
	}
	r.types["byte"] = r.types["uint8"]
	r.types["rune"] = r.types["int32"]
	r.types["any"] = r.types["interface {}"]
	r.types["[]byte"] = r.types["[]uint8"]
	return r
}

// Register adds t under name. Registering a name twice with different types
// fails.
func (r *Registry) Register(name string, t reflect.Type) error {
	if name == "" || strings.ContainsAny(name, " \t\n\r") {
		return fmt.Errorf("%w: invalid type name %q", ErrInvalidTag, name)
	}
	if t == nil {
		return fmt.Errorf("%w: nil type for %q", ErrInvalidTag, name)
	}
	if existing, ok := r.types[name]; ok && existing != t {
		return fmt.Errorf("%w: %q already registered as %v", ErrInvalidTag, name, existing)
	}
	r.types[name] = t
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, t reflect.Type) {
	if err := r.Register(name, t); err != nil {
		panic(err)
	}
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (reflect.Type, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Tag returns a tag for the type registered under name.
func (r *Registry) Tag(name string, opts ...TagOption) (Tag, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return Tag{}, err
	}
	return New(TupleOf(t), opts...), nil
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.types)
	slices.Sort(names)
	return names
}
