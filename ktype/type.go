// Package ktype describes the declared types of pipeline stages.
//
// A Tag annotates one position of a function signature. Tags are chained into
// a Chain, which yields the Signature a function is bound to (see package
// kcall) and the state and partition metadata a stage is registered with.
package ktype

import (
	"reflect"
	"strings"
)

// Type is the declared type at one position of a chain. A Type with more than
// one element is a tuple, used for functions returning multiple values. The
// zero Type is absent.
type Type struct {
	elems []reflect.Type
}

// TypeOf returns the Type of T. Interface types are supported.
func TypeOf[T any]() Type {
	return Type{elems: []reflect.Type{reflect.TypeOf((*T)(nil)).Elem()}}
}

// TupleOf returns a Type with the given elements. A single element yields a
// plain type, no elements yield the absent Type.
func TupleOf(ts ...reflect.Type) Type {
	if len(ts) == 0 {
		return Type{}
	}
	elems := make([]reflect.Type, len(ts))
	copy(elems, ts)
	return Type{elems: elems}
}

// First returns the first element, or nil if t is absent.
func (t Type) First() reflect.Type {
	if len(t.elems) == 0 {
		return nil
	}
	return t.elems[0]
}

// Elems returns a copy of the elements of t.
func (t Type) Elems() []reflect.Type {
	elems := make([]reflect.Type, len(t.elems))
	copy(elems, t.elems)
	return elems
}

func (t Type) Len() int {
	return len(t.elems)
}

func (t Type) IsZero() bool {
	return len(t.elems) == 0
}

func (t Type) IsTuple() bool {
	return len(t.elems) > 1
}

// Equal reports whether t and o have identical elements.
func (t Type) Equal(o Type) bool {
	if len(t.elems) != len(o.elems) {
		return false
	}
	for i := range t.elems {
		if t.elems[i] != o.elems[i] {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	switch len(t.elems) {
	case 0:
		return "<none>"
	case 1:
		return t.elems[0].String()
	}
	names := make([]string, len(t.elems))
	for i, e := range t.elems {
		names[i] = e.String()
	}
	return "(" + strings.Join(names, ", ") + ")"
}
