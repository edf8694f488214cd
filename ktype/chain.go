package ktype

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors for tag, chain and signature construction.
var (
	ErrSignature      = errors.New("invalid signature")
	ErrAmbiguousState = errors.New("ambiguous state")
	ErrInvalidTag     = errors.New("invalid tag")
	ErrUnknownType    = errors.New("unknown type")
)

// Chain is an ordered sequence of tags. The first entry is the input type and
// the last entry is the output type of the function it describes. State and
// partition are taken from the first tag carrying them.
//
// Chains are values: Then returns a new chain and never modifies the receiver,
// so a partially built chain can be reused.
type Chain struct {
	seq       []Type
	state     Type
	partition *Partition
	err       error
}

// NewChain returns a chain of the given tags in order.
func NewChain(tags ...Tag) Chain {
	var c Chain
	for _, t := range tags {
		c = c.Then(t)
	}
	return c
}

// Then returns a new chain with t appended.
//
// A tag declaring a state type different from the one already on the chain, or
// a second partition, makes the chain ambiguous. The error is reported by Err
// and Signature.
func (c Chain) Then(t Tag) Chain {
	next := Chain{
		seq:       make([]Type, len(c.seq), len(c.seq)+1),
		state:     c.state,
		partition: c.partition,
		err:       c.err,
	}
	copy(next.seq, c.seq)
	next.seq = append(next.seq, t.base)

	if !t.state.IsZero() {
		switch {
		case next.state.IsZero():
			next.state = t.state
		case !next.state.Equal(t.state) && next.err == nil:
			next.err = fmt.Errorf("%w: chain declares state %v, tag at position %d declares %v",
				ErrAmbiguousState, next.state, len(c.seq), t.state)
		}
	}

	if t.partition != nil {
		if next.partition == nil {
			next.partition = t.partition
		} else if next.err == nil {
			next.err = fmt.Errorf("%w: tag at position %d declares a second partition",
				ErrAmbiguousState, len(c.seq))
		}
	}

	return next
}

// Sequence returns the base types of the chain in order.
func (c Chain) Sequence() []Type {
	seq := make([]Type, len(c.seq))
	copy(seq, c.seq)
	return seq
}

func (c Chain) Len() int {
	return len(c.seq)
}

// Input returns the first type of the chain.
func (c Chain) Input() Type {
	if len(c.seq) == 0 {
		return Type{}
	}
	return c.seq[0]
}

// Output returns the last type of the chain.
func (c Chain) Output() Type {
	if len(c.seq) == 0 {
		return Type{}
	}
	return c.seq[len(c.seq)-1]
}

// State returns the state type of the chain, if any tag declared one.
func (c Chain) State() (Type, bool) {
	return c.state, !c.state.IsZero()
}

// Partition returns the partition of the chain, if any tag declared one.
func (c Chain) Partition() (Partition, bool) {
	if c.partition == nil {
		return Partition{}, false
	}
	return *c.partition, true
}

// Err returns the first error recorded while chaining.
func (c Chain) Err() error {
	return c.err
}

// Signature derives the call signature of the chain: all entries but the last
// are arguments, the last is the result. A chain needs at least an input and
// an output type.
func (c Chain) Signature() (Signature, error) {
	if c.err != nil {
		return Signature{}, c.err
	}
	if len(c.seq) < 2 {
		return Signature{}, fmt.Errorf("%w: chain has %d entries, need an input and an output type",
			ErrSignature, len(c.seq))
	}

	in := make([]reflect.Type, 0, len(c.seq)-1)
	for i, t := range c.seq[:len(c.seq)-1] {
		switch {
		case t.IsZero():
			return Signature{}, fmt.Errorf("%w: argument %d has no type", ErrSignature, i)
		case t.IsTuple():
			return Signature{}, fmt.Errorf("%w: argument %d is a tuple %v", ErrSignature, i, t)
		}
		in = append(in, t.First())
	}

	out := c.seq[len(c.seq)-1]
	if out.IsZero() {
		return Signature{}, fmt.Errorf("%w: result has no type", ErrSignature)
	}

	return Signature{in: in, out: out.Elems()}, nil
}

func (c Chain) String() string {
	parts := make([]string, len(c.seq))
	for i, t := range c.seq {
		parts[i] = t.String()
	}
	return strings.Join(parts, " >> ")
}
