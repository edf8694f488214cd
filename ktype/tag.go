package ktype

import (
	"fmt"
	"reflect"
)

// Key is one element of a partition keyspace.
type Key = any

// PartitionFunc routes a record to the key of the state instance that owns it.
// Only functions of this named type are recognized as partition functions.
type PartitionFunc func(data any) Key

// Partition pairs a partition function with the keyspace it maps into.
type Partition struct {
	Func PartitionFunc
	Keys []Key
}

// Tag is the declared type of a single chain position, optionally carrying the
// state type and partition of a stateful stage.
type Tag struct {
	base      Type
	state     Type
	partition *Partition
}

// TagOption configures a Tag.
type TagOption func(*tagOptions)

type tagOptions struct {
	stateful  bool
	partition *Partition
}

// Stateful marks the tag as declaring the state type of its stage.
func Stateful() TagOption {
	return func(o *tagOptions) {
		o.stateful = true
	}
}

// PartitionBy attaches a partition function and its keyspace to the tag.
func PartitionBy(fn PartitionFunc, keys []Key) TagOption {
	return func(o *tagOptions) {
		o.partition = &Partition{Func: fn, Keys: keys}
	}
}

// New returns a Tag for t.
func New(t Type, opts ...TagOption) Tag {
	var o tagOptions
	for _, opt := range opts {
		opt(&o)
	}

	tag := Tag{base: t, partition: o.partition}
	if o.stateful {
		tag.state = t
	}
	return tag
}

// Of returns a stateless Tag for T.
func Of[T any](opts ...TagOption) Tag {
	return New(TypeOf[T](), opts...)
}

// Tuple returns a Tag for a multi-value position.
func Tuple(ts ...reflect.Type) Tag {
	return New(TupleOf(ts...))
}

// State returns a stateful Tag declaring S as the state type.
func State[S any](opts ...TagOption) Tag {
	return New(TypeOf[S](), append([]TagOption{Stateful()}, opts...)...)
}

// FromValues builds a Tag from a tuple of values. Each value is a
// reflect.Type, a Type, a PartitionFunc, or the keyspace following a
// PartitionFunc (any slice). When a PartitionFunc is present the first value is
// the base type and the rest is the partition. In stateful mode the state type
// is the declared tuple, or the base type when a partition was unpacked.
func FromValues(stateful bool, vals ...any) (Tag, error) {
	var (
		elems     []reflect.Type
		partition *Partition
	)

	for i := 0; i < len(vals); i++ {
		switch v := vals[i].(type) {
		case PartitionFunc:
			if partition != nil {
				return Tag{}, fmt.Errorf("%w: more than one partition function", ErrInvalidTag)
			}
			if v == nil {
				return Tag{}, fmt.Errorf("%w: nil partition function", ErrInvalidTag)
			}
			partition = &Partition{Func: v}
			if i+1 < len(vals) {
				keys, ok := toKeys(vals[i+1])
				if !ok {
					return Tag{}, fmt.Errorf("%w: keyspace must be a slice, got %T", ErrInvalidTag, vals[i+1])
				}
				partition.Keys = keys
				i++
			}
		case reflect.Type:
			if partition != nil {
				return Tag{}, fmt.Errorf("%w: type %v after partition function", ErrInvalidTag, v)
			}
			if v == nil {
				return Tag{}, fmt.Errorf("%w: nil type at position %d", ErrInvalidTag, i)
			}
			elems = append(elems, v)
		case Type:
			if partition != nil {
				return Tag{}, fmt.Errorf("%w: type %v after partition function", ErrInvalidTag, v)
			}
			elems = append(elems, v.elems...)
		default:
			return Tag{}, fmt.Errorf("%w: unsupported value %T at position %d", ErrInvalidTag, vals[i], i)
		}
	}

	if len(elems) == 0 {
		return Tag{}, fmt.Errorf("%w: no type declared", ErrInvalidTag)
	}

	declared := TupleOf(elems...)
	tag := Tag{base: declared, partition: partition}
	if partition != nil {
		if len(elems) > 1 {
			return Tag{}, fmt.Errorf("%w: partitioned tag declares %d types, want 1", ErrInvalidTag, len(elems))
		}
		tag.base = TupleOf(elems[0])
	}
	if stateful {
		tag.state = declared
	}
	return tag, nil
}

func toKeys(v any) ([]Key, bool) {
	if keys, ok := v.([]Key); ok {
		return keys, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	keys := make([]Key, rv.Len())
	for i := range keys {
		keys[i] = rv.Index(i).Interface()
	}
	return keys, true
}

// Type returns the base type of the tag.
func (t Tag) Type() Type {
	return t.base
}

// State returns the declared state type, if the tag is stateful.
func (t Tag) State() (Type, bool) {
	return t.state, !t.state.IsZero()
}

// Partition returns the partition attached to the tag, if any.
func (t Tag) Partition() (Partition, bool) {
	if t.partition == nil {
		return Partition{}, false
	}
	return *t.partition, true
}

// Then starts a chain with t followed by next.
func (t Tag) Then(next Tag) Chain {
	return NewChain(t, next)
}

func (t Tag) String() string {
	if t.state.IsZero() {
		return t.base.String()
	}
	return "State[" + t.base.String() + "]"
}
