package kcall

import (
	"reflect"
	"runtime"
	"strings"
)

// FuncName returns the short name of a function: the package path and
// receiver are dropped, so both "example.com/words.reverse" and a method value
// "example.com/words.(*Counter).Add-fm" become "reverse" and "Add".
// Anonymous functions are named after their position, such as "func1".
// A *Callable is named after the function it was bound to.
func FuncName(fn any) string {
	if c, ok := fn.(*Callable); ok {
		if c == nil {
			return ""
		}
		return c.name
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	return shortName(f.Name())
}

func shortName(full string) string {
	name := full
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	// Generic instantiations are reported as "pkg.F[...]".
	name = strings.TrimSuffix(name, "[...]")
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
