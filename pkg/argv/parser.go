// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"tailscale.com/util/set"
)

// Options adjusts parsing behavior. The zero value is the default.
type Options struct {
	// StrictArrays makes a flag that arrives while an array is collecting
	// values a failure instead of ending the array.
	StrictArrays bool

	// StrictNumbers rejects integer and float values that are not entirely
	// a number. By default the longest numeric prefix is used and a value
	// with no numeric prefix becomes 0.
	StrictNumbers bool
}

type state int

const (
	// stateSeek expects a flag or the command.
	stateSeek state = iota
	// stateFlagValue expects the value of a string, integer or float flag.
	stateFlagValue
	// stateCommandValue expects the value of the command.
	stateCommandValue
	// stateArrayValues collects values until the next flag or end of input.
	stateArrayValues
)

func (s state) String() string {
	switch s {
	case stateSeek:
		return "seek"
	case stateFlagValue:
		return "flag-value"
	case stateCommandValue:
		return "command-value"
	case stateArrayValues:
		return "array-values"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Parse parses args against s. args[0] is the program name and is skipped.
//
// Parse never returns nil. Check Result.Success, and Result.Err for the
// reason of a failure.
func Parse(args []string, s *Schema) *Result {
	return ParseContext(context.Background(), args, s, Options{})
}

// ParseWithOptions is Parse with non-default options.
func ParseWithOptions(args []string, s *Schema, opts Options) *Result {
	return ParseContext(context.Background(), args, s, opts)
}

// ParseContext is ParseWithOptions that stops with a failure if ctx is done
// before every argument has been consumed. ctx is checked between
// arguments.
func ParseContext(ctx context.Context, args []string, s *Schema, opts Options) *Result {
	p := NewParser(s, opts)
	for i := 1; i < len(args); i++ {
		if err := ctx.Err(); err != nil {
			p.fail(fmt.Errorf("parse stopped at argument %d: %w", i, err))
			return p.Result()
		}
		if p.Step(args[i]) != nil {
			return p.Result()
		}
	}
	p.Finish()
	return p.Result()
}

// Parser is the parse state machine. Feed it arguments with Step, one at a
// time and without the program name, then call Finish.
//
// A Parser must not be used from more than one goroutine.
type Parser struct {
	schema *Schema
	opts   Options

	state state
	index int
	err   error
	done  bool

	// active is the canonical name of the flag or command whose value is
	// expected; activeKind is its kind.
	active     string
	activeKind Kind
	// arrayCommand is set when stateArrayValues collects for the command.
	arrayCommand bool

	// pending holds the required flags not seen yet.
	pending set.Set[string]

	result *Result
}

// NewParser returns a parser for one argument vector.
func NewParser(s *Schema, opts Options) *Parser {
	p := &Parser{
		schema:  s,
		opts:    opts,
		pending: make(set.Set[string]),
		result:  newResult(),
	}
	for _, name := range s.RequiredFlags() {
		p.pending.Add(name)
	}
	return p
}

// Step consumes one argument. Once Step has returned an error the parser is
// finished and every later call returns the same error. After a successful
// Finish, Step returns ErrFinished and leaves the result untouched.
func (p *Parser) Step(tok string) error {
	if p.err != nil {
		return p.err
	}
	if p.done {
		return ErrFinished
	}
	p.index++
	var err error
	switch p.state {
	case stateSeek:
		err = p.seek(tok)
	case stateFlagValue:
		err = p.flagValue(tok)
	case stateCommandValue:
		err = p.commandValue(tok)
	case stateArrayValues:
		err = p.arrayValues(tok)
	}
	if err != nil {
		p.fail(&TokenError{Index: p.index, Token: tok, Err: err})
	}
	return p.err
}

// Finish checks that the input may end here. On success the result is
// marked successful and the parser accepts no more arguments.
func (p *Parser) Finish() error {
	if p.err != nil || p.done {
		return p.err
	}
	switch p.state {
	case stateFlagValue:
		return p.fail(fmt.Errorf("%w for --%s", ErrMissingValue, p.active))
	case stateCommandValue:
		return p.fail(fmt.Errorf("%w for command %s", ErrMissingValue, p.active))
	}
	if p.result.commandName == "" {
		return p.fail(ErrMissingCommand)
	}
	if p.pending.Len() > 0 {
		missing := p.pending.Slice()
		slices.Sort(missing)
		return p.fail(&RequiredFlagsError{Missing: missing})
	}
	p.result.Success = true
	p.done = true
	return nil
}

// Result returns the result being built. It is only successful after
// Finish returned nil.
func (p *Parser) Result() *Result {
	return p.result
}

func (p *Parser) fail(err error) error {
	p.err = err
	p.result.Success = false
	p.result.Err = err
	return err
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

func (p *Parser) seek(tok string) error {
	if isFlag(tok) {
		return p.flag(tok)
	}
	return p.command(tok)
}

func (p *Parser) flagValue(tok string) error {
	if isFlag(tok) {
		return ErrUnexpectedFlag
	}
	v, err := p.convert(tok)
	if err != nil {
		return err
	}
	p.result.setValue(p.active, v)
	p.state = stateSeek
	return nil
}

func (p *Parser) commandValue(tok string) error {
	if isFlag(tok) {
		return ErrUnexpectedFlag
	}
	v, err := p.convert(tok)
	if err != nil {
		return err
	}
	p.result.command = v
	p.state = stateSeek
	return nil
}

func (p *Parser) arrayValues(tok string) error {
	if isFlag(tok) {
		if p.opts.StrictArrays {
			return ErrUnexpectedFlag
		}
		p.state = stateSeek
		p.arrayCommand = false
		return p.flag(tok)
	}
	if p.arrayCommand {
		p.result.command.arr = append(p.result.command.arr, tok)
		return nil
	}
	if p.result.commandName == "" {
		if _, _, ok := p.schema.Command(tok); ok {
			// Before the command is seen, a command name ends the array.
			p.state = stateSeek
			return p.command(tok)
		}
	}
	p.result.appendArray(p.active, tok)
	return nil
}

// flag handles a token starting with "-" while seeking.
func (p *Parser) flag(tok string) error {
	name := strings.TrimPrefix(tok, "-")
	if strings.HasPrefix(name, "-") {
		name = name[1:]
	}
	if name == "" {
		return ErrDanglingDash
	}
	canonical, e, ok := p.schema.Flag(name)
	if !ok {
		return ErrUnknownFlag
	}
	p.pending.Delete(canonical)

	switch e.Kind {
	case Static:
		p.result.setStatic(canonical)
	case Array:
		p.result.openArray(canonical)
		p.active = canonical
		p.activeKind = Array
		p.arrayCommand = false
		p.state = stateArrayValues
	default:
		p.active = canonical
		p.activeKind = e.Kind
		p.state = stateFlagValue
	}
	return nil
}

// command handles a bare token while seeking.
func (p *Parser) command(tok string) error {
	if p.result.commandName != "" {
		return ErrDuplicateCommand
	}
	canonical, e, ok := p.schema.Command(tok)
	if !ok {
		return ErrUnknownCommand
	}
	p.result.setCommand(canonical, e.Kind)
	p.active = canonical
	p.activeKind = e.Kind

	switch e.Kind {
	case Static:
		p.state = stateSeek
	case Array:
		p.arrayCommand = true
		p.state = stateArrayValues
	default:
		p.state = stateCommandValue
	}
	return nil
}

// convert turns tok into a value of the active kind.
func (p *Parser) convert(tok string) (Value, error) {
	if !p.activeKind.takesValue() {
		return Value{}, fmt.Errorf("%w: %s %s does not take a value", ErrInvalidValue, p.activeKind, p.active)
	}
	switch p.activeKind {
	case Integer:
		if !p.opts.StrictNumbers {
			return IntegerValue(ParseInteger(tok)), nil
		}
		n, err := parseIntegerStrict(tok)
		if err != nil {
			return Value{}, &ValueError{Name: p.active, Kind: Integer, Value: tok, Err: err}
		}
		return IntegerValue(n), nil
	case Float:
		if !p.opts.StrictNumbers {
			return FloatValue(ParseFloat(tok)), nil
		}
		f, err := parseFloatStrict(tok)
		if err != nil {
			return Value{}, &ValueError{Name: p.active, Kind: Float, Value: tok, Err: err}
		}
		return FloatValue(f), nil
	}
	return StringValue(tok), nil
}
