package kpipe_test

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/birdayz/kpipe/ktype"
)

// C is implemented by D, standing in for a base class and its subclass.
type C interface {
	Name() string
}

type D struct{}

func (D) Name() string { return "d" }

type MyState struct {
	data []string
}

func (s *MyState) Update(data string) {
	s.data = append(s.data, data)
}

type sourceConfig struct{ addr string }

type sinkConfig struct{ addr string }

func typ[T any]() reflect.Type {
	return ktype.TypeOf[T]().First()
}

func stringBool() ktype.Tag {
	return ktype.Tuple(typ[string](), typ[bool]())
}

func intBool() ktype.Tag {
	return ktype.Tuple(typ[int](), typ[bool]())
}

func reverse(data string) string {
	runes := []rune(data)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func add(data string) int {
	n, _ := strconv.Atoi(data)
	return n + 1
}

func reverseStateful(data string, state *MyState) (string, bool) {
	state.Update(data)
	return reverse(data), true
}

func addStateful(data string, state *MyState) (int, bool) {
	state.Update(data)
	return add(data), true
}

func addN(n int, data string, state *MyState) (int, bool) {
	state.Update(data)
	return add(data) + n - 1, true
}

func makeD(string) D {
	return D{}
}

func acceptC(C) int {
	return 1
}

func byFirstLetter(data any) ktype.Key {
	return strings.ToLower(data.(string))[:1]
}

func letters() []ktype.Key {
	keys := make([]ktype.Key, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		keys = append(keys, string(r))
	}
	return keys
}
