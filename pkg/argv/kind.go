// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"fmt"
	"strings"
)

// Kind is the type of a flag, a command, or a parsed value.
type Kind int

const (
	// Static flags are presence-only and never take a value.
	Static Kind = iota
	String
	Integer
	Float
	// Array flags and commands collect zero or more following tokens.
	Array
)

var kindNames = [...]string{
	Static:  "static",
	String:  "string",
	Integer: "integer",
	Float:   "float",
	Array:   "array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the five known kinds.
func (k Kind) Valid() bool {
	return k >= Static && k <= Array
}

// takesValue reports whether a flag of this kind owes exactly one value.
func (k Kind) takesValue() bool {
	switch k {
	case String, Integer, Float:
		return true
	}
	return false
}

// ParseKind maps a kind name to a Kind. It accepts the names produced by
// Kind.String plus the short forms "bool", "str", "int" and "list".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "bool", "":
		return Static, nil
	case "string", "str":
		return String, nil
	case "integer", "int":
		return Integer, nil
	case "float":
		return Float, nil
	case "array", "list":
		return Array, nil
	}
	return Static, fmt.Errorf("unknown kind %q", s)
}
