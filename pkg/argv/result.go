// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"maps"
	"slices"

	"tailscale.com/util/mak"
)

// Result is the outcome of one parse.
//
// Values are keyed by the canonical flag name, whichever of name or alias
// appeared on the command line. A name is present in at most one kind.
//
// When Success is false, Err holds the first failure and the maps hold
// whatever was parsed before it.
type Result struct {
	Success bool
	Err     error

	statics  map[string]bool
	strings  map[string]string
	integers map[string]int64
	floats   map[string]float64
	arrays   map[string][]string

	commandName string
	command     Value
}

func newResult() *Result {
	return &Result{}
}

// Static reports whether the static flag name was given.
func (r *Result) Static(name string) bool {
	if r == nil {
		return false
	}
	return r.statics[name]
}

// String returns the value of the string flag name.
func (r *Result) String(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.strings[name]
	return v, ok
}

// Integer returns the value of the integer flag name.
func (r *Result) Integer(name string) (int64, bool) {
	if r == nil {
		return 0, false
	}
	v, ok := r.integers[name]
	return v, ok
}

// Float returns the value of the float flag name.
func (r *Result) Float(name string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	v, ok := r.floats[name]
	return v, ok
}

// Array returns a copy of the values collected for the array flag name.
// A flag given with no values yields an empty, non-nil slice.
func (r *Result) Array(name string) ([]string, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.arrays[name]
	if !ok {
		return nil, false
	}
	if v == nil {
		return []string{}, true
	}
	return slices.Clone(v), true
}

// Value returns the value stored for name, whatever its kind.
func (r *Result) Value(name string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	if r.statics[name] {
		return StaticValue(), true
	}
	if v, ok := r.strings[name]; ok {
		return StringValue(v), true
	}
	if v, ok := r.integers[name]; ok {
		return IntegerValue(v), true
	}
	if v, ok := r.floats[name]; ok {
		return FloatValue(v), true
	}
	if v, ok := r.arrays[name]; ok {
		return ArrayValue(v...), true
	}
	return Value{}, false
}

// Command returns the canonical name of the command that was given and its
// value. For a Static command the value is set but carries nothing. ok is
// false if no command was seen.
func (r *Result) Command() (name string, v Value, ok bool) {
	if r == nil || r.commandName == "" {
		return "", Value{}, false
	}
	v = r.command
	if v.kind == Array {
		v.arr = slices.Clone(v.arr)
		if v.arr == nil {
			v.arr = []string{}
		}
	}
	return r.commandName, v, true
}

// CommandName returns the canonical name of the command, or "".
func (r *Result) CommandName() string {
	if r == nil {
		return ""
	}
	return r.commandName
}

// Names returns the sorted names that hold a value of kind k.
func (r *Result) Names(k Kind) []string {
	if r == nil {
		return nil
	}
	var names []string
	switch k {
	case Static:
		names = slices.Collect(maps.Keys(r.statics))
	case String:
		names = slices.Collect(maps.Keys(r.strings))
	case Integer:
		names = slices.Collect(maps.Keys(r.integers))
	case Float:
		names = slices.Collect(maps.Keys(r.floats))
	case Array:
		names = slices.Collect(maps.Keys(r.arrays))
	}
	slices.Sort(names)
	return names
}

// Len returns the number of flags holding a value.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.statics) + len(r.strings) + len(r.integers) + len(r.floats) + len(r.arrays)
}

// Destroy releases everything the result holds and marks it unsuccessful.
// It is safe to call on a failed result, more than once, and on nil.
func (r *Result) Destroy() {
	if r == nil {
		return
	}
	r.statics = nil
	r.strings = nil
	r.integers = nil
	r.floats = nil
	r.arrays = nil
	r.commandName = ""
	r.command = Value{}
	r.Success = false
}

func (r *Result) setStatic(name string) {
	mak.Set(&r.statics, name, true)
}

// openArray makes sure name has an array, so that a flag given with no
// values is still reported.
func (r *Result) openArray(name string) {
	if _, ok := r.arrays[name]; ok {
		return
	}
	mak.Set(&r.arrays, name, []string(nil))
}

func (r *Result) appendArray(name, tok string) {
	mak.Set(&r.arrays, name, append(r.arrays[name], tok))
}

func (r *Result) setCommand(name string, k Kind) {
	r.commandName = name
	r.command = Value{kind: k}
	if k == Static || k == Array {
		r.command.set = true
	}
}

func (r *Result) setValue(name string, v Value) {
	switch v.kind {
	case String:
		mak.Set(&r.strings, name, v.str)
	case Integer:
		mak.Set(&r.integers, name, v.num)
	case Float:
		mak.Set(&r.floats, name, v.float)
	}
}
