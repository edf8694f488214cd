package ktype

import (
	"reflect"
	"strings"
)

// Signature is the call signature derived from a chain.
type Signature struct {
	in  []reflect.Type
	out []reflect.Type
}

// NewSignature returns a signature with the given argument and result types.
func NewSignature(in, out []reflect.Type) Signature {
	sig := Signature{
		in:  make([]reflect.Type, len(in)),
		out: make([]reflect.Type, len(out)),
	}
	copy(sig.in, in)
	copy(sig.out, out)
	return sig
}

// In returns the argument types in order.
func (s Signature) In() []reflect.Type {
	in := make([]reflect.Type, len(s.in))
	copy(in, s.in)
	return in
}

// Out returns the result types in order. More than one result type means the
// function returns a tuple.
func (s Signature) Out() []reflect.Type {
	out := make([]reflect.Type, len(s.out))
	copy(out, s.out)
	return out
}

func (s Signature) NumIn() int {
	return len(s.in)
}

func (s Signature) NumOut() int {
	return len(s.out)
}

func (s Signature) String() string {
	in := make([]string, len(s.in))
	for i, t := range s.in {
		in[i] = t.String()
	}
	sig := "func(" + strings.Join(in, ", ") + ")"

	switch len(s.out) {
	case 0:
		return sig
	case 1:
		return sig + " " + s.out[0].String()
	}
	out := make([]string, len(s.out))
	for i, t := range s.out {
		out[i] = t.String()
	}
	return sig + " (" + strings.Join(out, ", ") + ")"
}
