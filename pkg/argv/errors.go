// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error reported by this package wraps exactly one of
// them, so callers can classify failures with errors.Is.
var (
	// ErrConflict is returned when a name or alias is already registered.
	ErrConflict = errors.New("name already registered")

	ErrUnknownFlag    = errors.New("unknown flag")
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDanglingDash is returned for "-", "--" and other flags with no name.
	ErrDanglingDash = errors.New("flag without a name")

	// ErrUnexpectedFlag is returned when a flag arrives while a value is owed.
	ErrUnexpectedFlag = errors.New("flag given where a value was expected")

	// ErrMissingValue is returned when input ends while a value is owed.
	ErrMissingValue = errors.New("missing value")

	ErrDuplicateCommand = errors.New("only one command may be given")
	ErrMissingCommand   = errors.New("no command given")

	// ErrRequiredFlags is returned when required flags were never supplied.
	ErrRequiredFlags = errors.New("required flags missing")

	// ErrInvalidValue is returned for malformed numbers when strict number
	// parsing is enabled.
	ErrInvalidValue = errors.New("invalid value")

	// ErrFinished is returned by Parser.Step after Finish succeeded.
	ErrFinished = errors.New("parser already finished")
)

// ConflictError is returned by the Register*E methods of Schema.
type ConflictError struct {
	Name      string // the key that collided
	Namespace string // "flag" or "command"
	Reason    string
}

func (e *ConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s", e.Namespace, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s %q: %v", e.Namespace, e.Name, ErrConflict)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// TokenError describes a failure tied to one argument.
type TokenError struct {
	Index int    // position in the argument vector, counting the program name
	Token string // the raw argument
	Err   error  // one of the sentinel errors
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("argument %d %q: %v", e.Index, e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// RequiredFlagsError lists the required flags that were never supplied.
type RequiredFlagsError struct {
	Missing []string // canonical names, sorted
}

func (e *RequiredFlagsError) Error() string {
	return fmt.Sprintf("%v: --%s", ErrRequiredFlags, strings.Join(e.Missing, ", --"))
}

func (e *RequiredFlagsError) Unwrap() error {
	return ErrRequiredFlags
}

// ValueError is returned when a value cannot be converted to its kind.
// Only produced when Options.StrictNumbers is set.
type ValueError struct {
	Name  string // flag or command the value belongs to
	Kind  Kind
	Value string
	Err   error // underlying conversion error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q for %s", e.Kind, e.Value, e.Name)
}

func (e *ValueError) Unwrap() []error {
	return []error{ErrInvalidValue, e.Err}
}
