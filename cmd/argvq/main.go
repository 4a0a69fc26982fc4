// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argvq parses command lines against a schema file and prints the
// result.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argv/pkg/argv"
	"github.com/yeetrun/argv/pkg/cli"
	"github.com/yeetrun/argv/pkg/codecutil"
	"github.com/yeetrun/argv/pkg/render"
	"github.com/yeetrun/argv/pkg/schemafile"
	"github.com/yeetrun/argv/pkg/tui"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errReported marks a failure whose details were already written.
var errReported = errors.New("failure already reported")

type globalFlagsParsed struct{}

// usageError marks errors caused by how argvq was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// color styles stderr output.
	color tui.Colorizer
	// progress enables the batch progress line on stderr.
	progress bool

	// passthrough holds the arguments after "--", which belong to the
	// program being parsed rather than to argvq.
	passthrough    []string
	hasPassthrough bool
}

func main() {
	log.SetFlags(0)
	a := &app{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		color:    tui.ForFile(os.Stderr),
		progress: tui.IsTerminal(os.Stderr),
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func (a *app) run(ctx context.Context, args []string) int {
	head, rest := cli.SplitAtDoubleDash(args)
	a.passthrough = rest
	a.hasPassthrough = rest != nil

	helpConfig := cli.HelpConfig()
	_, ok, err := yargs.ResolveCommand(head, helpConfig)
	if err == nil && !ok && len(head) > 0 && yargs.ExtractSubcommand(head) == "" && !isHelpArg(head[0]) {
		err = fmt.Errorf("unknown command: %s", head[0])
	}
	if err != nil {
		a.printCLIError(fmt.Errorf("%w\nRun 'argvq --help' for usage", err))
		return exitUsage
	}

	handlers := map[string]yargs.SubcommandHandler{
		"parse":   a.handleParse,
		"usage":   a.handleUsage,
		"batch":   a.handleBatch,
		"check":   a.handleCheck,
		"version": a.handleVersion,
	}
	groups := map[string]yargs.Group{
		"schema": {
			Description: cli.GroupInfos()["schema"].Description,
			Commands: map[string]yargs.SubcommandHandler{
				"fmt": a.handleSchemaFmt,
			},
		},
	}
	err = yargs.RunSubcommandsWithGroups(ctx, head, helpConfig, globalFlagsParsed{}, handlers, groups)
	return a.exitCode(err)
}

func isHelpArg(arg string) bool {
	switch arg {
	case "help", "-h", "--help", "--help-llm":
		return true
	}
	return false
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errReported) {
		return exitFailure
	}
	a.printCLIError(err)
	if isUsageError(err) {
		return exitUsage
	}
	return exitFailure
}

func isUsageError(err error) bool {
	var (
		ue  *usageError
		ife *yargs.InvalidFlagError
		iae *yargs.InvalidArgsError
		fve *yargs.FlagValueError
	)
	return errors.As(err, &ue) || errors.As(err, &ife) || errors.As(err, &iae) ||
		errors.As(err, &fve) || errors.Is(err, cli.ErrNoSchema)
}

func (a *app) printCLIError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(a.stderr, a.color.Wrap(tui.Red, "Error:"), err)
}

// loadSchema loads the schema named by flag or ARGVQ_SCHEMA.
func (a *app) loadSchema(flag string) (string, *schemafile.File, *argv.Schema, error) {
	path, err := cli.SchemaPath(flag)
	if err != nil {
		return "", nil, nil, err
	}
	f, err := schemafile.Load(path)
	if err != nil {
		return "", nil, nil, err
	}
	s, err := f.Schema()
	if err != nil {
		return "", nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return path, f, s, nil
}

func parseOutputFormat(s string) (render.Format, error) {
	f, err := render.ParseFormat(s)
	if err != nil {
		return "", &usageError{err}
	}
	return f, nil
}

// open opens a batch input, reading stdin for "-".
func (a *app) open(path string) (io.ReadCloser, error) {
	if path == codecutil.Stdin {
		return codecutil.NewReader(io.NopCloser(a.stdin))
	}
	return codecutil.Open(path)
}
