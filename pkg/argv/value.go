// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Value is a parsed value tagged with its kind. The zero Value is a Static
// value that is not set.
type Value struct {
	kind  Kind
	set   bool
	str   string
	num   int64
	float float64
	arr   []string
}

// StaticValue returns a presence value.
func StaticValue() Value { return Value{kind: Static, set: true} }

// StringValue returns a String value.
func StringValue(s string) Value { return Value{kind: String, set: true, str: s} }

// IntegerValue returns an Integer value.
func IntegerValue(n int64) Value { return Value{kind: Integer, set: true, num: n} }

// FloatValue returns a Float value.
func FloatValue(f float64) Value { return Value{kind: Float, set: true, float: f} }

// ArrayValue returns an Array value holding a copy of items.
func ArrayValue(items ...string) Value {
	return Value{kind: Array, set: true, arr: slices.Clone(items)}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether v holds a value. For commands of kind Static it is
// true once the command was seen.
func (v Value) IsSet() bool { return v.set }

// Str returns the string held by a String value.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == String && v.set
}

// Int returns the integer held by an Integer value.
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == Integer && v.set
}

// Float returns the float held by a Float value.
func (v Value) Float() (float64, bool) {
	return v.float, v.kind == Float && v.set
}

// Strings returns a copy of the items of an Array value.
func (v Value) Strings() ([]string, bool) {
	if v.kind != Array || !v.set {
		return nil, false
	}
	return slices.Clone(v.arr), true
}

// Interface returns the value as a plain Go value: bool, string, int64,
// float64 or []string. It returns nil if v is not set.
func (v Value) Interface() any {
	if !v.set {
		return nil
	}
	switch v.kind {
	case Static:
		return true
	case String:
		return v.str
	case Integer:
		return v.num
	case Float:
		return v.float
	case Array:
		if v.arr == nil {
			return []string{}
		}
		return slices.Clone(v.arr)
	}
	return nil
}

func (v Value) String() string {
	if !v.set {
		return "<unset>"
	}
	switch v.kind {
	case Static:
		return "true"
	case String:
		return v.str
	case Integer:
		return strconv.FormatInt(v.num, 10)
	case Float:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case Array:
		return "[" + strings.Join(v.arr, " ") + "]"
	}
	return fmt.Sprintf("<%s>", v.kind)
}
