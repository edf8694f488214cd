// Package kcall binds plain Go functions to a ktype.Signature. The resulting
// Callable checks the runtime type of every argument and result against the
// signature and supports partial application.
package kcall

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/birdayz/kpipe/ktype"
)

// Sentinel errors for binding and calling.
var (
	ErrNotAFunction = errors.New("not a function")
	ErrArity        = errors.New("arity mismatch")
	ErrTypeMismatch = errors.New("type mismatch")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Tuple holds the results of a function returning more than one value.
type Tuple []any

// Callable is a function bound to a signature. It is immutable: applying
// arguments returns a new Callable.
type Callable struct {
	name string
	fn   reflect.Value
	sig  ktype.Signature

	// in and out are cached from sig.
	in  []reflect.Type
	out []reflect.Type

	// returnsErr is set when fn has a trailing error result beyond the
	// declared outputs.
	returnsErr bool

	bound []reflect.Value
}

// Bind binds fn to sig. fn must take one parameter per declared argument type,
// each declared type being assignable to its parameter, and return one value
// per declared result, optionally followed by an error.
func Bind(fn any, sig ktype.Signature) (*Callable, error) {
	return BindNamed(FuncName(fn), fn, sig)
}

// BindNamed is like Bind with an explicit name.
//
// fn may also be a *Callable with arguments already applied, in which case
// sig describes the remaining arguments. See Rebind.
func BindNamed(name string, fn any, sig ktype.Signature) (*Callable, error) {
	if c, ok := fn.(*Callable); ok {
		if c == nil {
			return nil, fmt.Errorf("%w: nil *Callable", ErrNotAFunction)
		}
		rebound, err := c.Rebind(sig)
		if err != nil {
			return nil, err
		}
		rebound.name = name
		return rebound, nil
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotAFunction, fn)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%w: %s is variadic", ktype.ErrSignature, name)
	}

	in := sig.In()
	out := sig.Out()

	if ft.NumIn() != len(in) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, signature %v declares %d",
			ErrArity, name, ft.NumIn(), sig, len(in))
	}
	for i, t := range in {
		if !t.AssignableTo(ft.In(i)) {
			return nil, fmt.Errorf("%w: argument %d of %s is %v, signature %v declares %v",
				ErrTypeMismatch, i, name, ft.In(i), sig, t)
		}
	}

	returnsErr := false
	switch ft.NumOut() {
	case len(out):
	case len(out) + 1:
		if ft.Out(len(out)) != errorType {
			return nil, fmt.Errorf("%w: %s returns %d values, signature %v declares %d",
				ErrArity, name, ft.NumOut(), sig, len(out))
		}
		returnsErr = true
	default:
		return nil, fmt.Errorf("%w: %s returns %d values, signature %v declares %d",
			ErrArity, name, ft.NumOut(), sig, len(out))
	}

	return &Callable{
		name:       name,
		fn:         v,
		sig:        sig,
		in:         in,
		out:        out,
		returnsErr: returnsErr,
	}, nil
}

// Rebind returns a Callable checking the remaining arguments and the results
// against sig instead of the declared types of c. Every type in sig must be
// assignable to the one it replaces, and every result type of c to its
// replacement in sig. Applied arguments are kept.
func (c *Callable) Rebind(sig ktype.Signature) (*Callable, error) {
	in, out := sig.In(), sig.Out()
	remaining := c.in[len(c.bound):]

	if len(in) != len(remaining) {
		return nil, fmt.Errorf("%w: %s expects %d more arguments, signature %v declares %d",
			ErrArity, c.name, len(remaining), sig, len(in))
	}
	for i, t := range in {
		if !t.AssignableTo(remaining[i]) {
			return nil, fmt.Errorf("%w: argument %d of %s is %v, signature %v declares %v",
				ErrTypeMismatch, len(c.bound)+i, c.name, remaining[i], sig, t)
		}
	}
	if len(out) != len(c.out) {
		return nil, fmt.Errorf("%w: %s returns %d values, signature %v declares %d",
			ErrArity, c.name, len(c.out), sig, len(out))
	}
	for i, t := range out {
		if !c.out[i].AssignableTo(t) {
			return nil, fmt.Errorf("%w: result %d of %s is %v, signature %v declares %v",
				ErrTypeMismatch, i, c.name, c.out[i], sig, t)
		}
	}

	next := *c
	next.in = append(append(make([]reflect.Type, 0, len(c.bound)+len(in)), c.in[:len(c.bound)]...), in...)
	next.out = out
	next.sig = ktype.NewSignature(next.in, out)
	return &next, nil
}

// MustBind is like Bind but panics on error.
func MustBind(fn any, sig ktype.Signature) *Callable {
	c, err := Bind(fn, sig)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the name of the bound function.
func (c *Callable) Name() string {
	return c.name
}

// Signature returns the full signature, including already applied arguments.
func (c *Callable) Signature() ktype.Signature {
	return c.sig
}

// Func returns the underlying function.
func (c *Callable) Func() any {
	return c.fn.Interface()
}

// Remaining returns the number of arguments still to be supplied.
func (c *Callable) Remaining() int {
	return len(c.in) - len(c.bound)
}

// Call supplies args. With fewer arguments than remaining it returns a new
// *Callable with args applied. Otherwise it runs the function and returns its
// result, or a Tuple for multiple results.
func (c *Callable) Call(args ...any) (any, error) {
	if len(args) < c.Remaining() {
		return c.Apply(args...)
	}
	res, err := c.Invoke(args...)
	if err != nil {
		return nil, err
	}
	if len(res) == 1 {
		return res[0], nil
	}
	return Tuple(res), nil
}

// Apply returns a new Callable with args applied. It does not run the
// function, so at least one argument must remain unsupplied.
func (c *Callable) Apply(args ...any) (*Callable, error) {
	if len(args) >= c.Remaining() {
		return nil, fmt.Errorf("%w: %s: applying %d arguments leaves none of %d remaining",
			ErrArity, c.name, len(args), c.Remaining())
	}
	vals, err := c.check(args)
	if err != nil {
		return nil, err
	}

	next := *c
	next.bound = make([]reflect.Value, 0, len(c.bound)+len(vals))
	next.bound = append(next.bound, c.bound...)
	next.bound = append(next.bound, vals...)
	return &next, nil
}

// Invoke supplies all remaining arguments, runs the function and returns its
// results. An error returned by the function is returned unchanged.
func (c *Callable) Invoke(args ...any) ([]any, error) {
	if len(args) != c.Remaining() {
		return nil, fmt.Errorf("%w: %s expects %d more arguments, got %d",
			ErrArity, c.name, c.Remaining(), len(args))
	}
	vals, err := c.check(args)
	if err != nil {
		return nil, err
	}

	callArgs := make([]reflect.Value, 0, len(c.in))
	callArgs = append(callArgs, c.bound...)
	callArgs = append(callArgs, vals...)

	results := c.fn.Call(callArgs)
	if c.returnsErr {
		if errV := results[len(results)-1]; !errV.IsNil() {
			return nil, errV.Interface().(error)
		}
		results = results[:len(results)-1]
	}

	out := make([]any, len(results))
	for i, r := range results {
		if err := conforms(r, c.out[i]); err != nil {
			return nil, fmt.Errorf("%w: result %d of %s: %v", ErrTypeMismatch, i, c.name, err)
		}
		out[i] = r.Interface()
	}
	return out, nil
}

// check converts args to values of the declared types of the next positions.
func (c *Callable) check(args []any) ([]reflect.Value, error) {
	vals := make([]reflect.Value, len(args))
	offset := len(c.bound)
	for i, arg := range args {
		declared := c.in[offset+i]
		v, err := valueOf(arg, declared)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d of %s: %v", ErrTypeMismatch, offset+i, c.name, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func (c *Callable) String() string {
	return c.name + " " + c.sig.String()
}

func valueOf(arg any, declared reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if !nillable(declared) {
			return reflect.Value{}, fmt.Errorf("expected %v, got nil", declared)
		}
		return reflect.Zero(declared), nil
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(declared) {
		return reflect.Value{}, fmt.Errorf("expected %v, got %v", declared, v.Type())
	}
	if declared.Kind() == reflect.Interface {
		// Keep the parameter's static type for reflect.Value.Call.
		iv := reflect.New(declared).Elem()
		iv.Set(v)
		return iv, nil
	}
	if v.Type() != declared {
		return v.Convert(declared), nil
	}
	return v, nil
}

// conforms checks a returned value against its declared type. Interface
// results are checked by their dynamic type.
func conforms(v reflect.Value, declared reflect.Type) error {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			if !nillable(declared) {
				return fmt.Errorf("expected %v, got nil", declared)
			}
			return nil
		}
		v = v.Elem()
	}
	if !v.Type().AssignableTo(declared) {
		return fmt.Errorf("expected %v, got %v", declared, v.Type())
	}
	return nil
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
