// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/yeetrun/argv/pkg/argv"
	"github.com/yeetrun/argv/pkg/batch"
	"github.com/yeetrun/argv/pkg/cli"
	"github.com/yeetrun/argv/pkg/render"
	"github.com/yeetrun/argv/pkg/schemafile"
	"github.com/yeetrun/argv/pkg/tui"
)

// commandArgs drops the command name from the handler arguments.
func commandArgs(args []string, name string) []string {
	if i := slices.Index(args, name); i >= 0 {
		return slices.Delete(slices.Clone(args), i, i+1)
	}
	return args
}

func (a *app) handleParse(ctx context.Context, args []string) error {
	flags, pos, err := cli.ParseParse(commandArgs(args, "parse"))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("parse", pos, 0); err != nil {
		return err
	}
	if !a.hasPassthrough {
		return &usageError{errors.New("'parse' needs the command line to parse after --")}
	}
	if err := cli.RequireArgsAtLeast("parse", a.passthrough, 1); err != nil {
		return err
	}
	format, err := parseOutputFormat(flags.Format)
	if err != nil {
		return err
	}
	_, file, s, err := a.loadSchema(flags.Schema)
	if err != nil {
		return err
	}

	r := argv.ParseContext(ctx, a.passthrough, s, argv.Options{
		StrictArrays:  flags.StrictArrays,
		StrictNumbers: flags.StrictNumbers,
	})
	defer r.Destroy()
	if err := render.Render(a.stdout, format, r); err != nil {
		return err
	}
	if r.Success {
		return nil
	}
	a.printCLIError(r.Err)
	if help := argv.GenerateHelp(s, file.Name, file.Description, file.HelpPadding()); help != "" {
		fmt.Fprint(a.stderr, "\n", help)
	}
	return errReported
}

func (a *app) handleUsage(_ context.Context, args []string) error {
	flags, pos, err := cli.ParseUsage(commandArgs(args, "usage"))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("usage", pos, 0); err != nil {
		return err
	}
	path, file, s, err := a.loadSchema(flags.Schema)
	if err != nil {
		return err
	}
	padding := flags.Padding
	if padding == 0 {
		padding = file.HelpPadding()
	}
	help := argv.GenerateHelp(s, file.Name, file.Description, padding)
	if help == "" {
		return fmt.Errorf("%s: help needs both a name and a description", path)
	}
	fmt.Fprint(a.stdout, help)
	return nil
}

func (a *app) handleBatch(ctx context.Context, args []string) error {
	flags, pos, err := cli.ParseBatch(commandArgs(args, "batch"))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtLeast("batch", pos, 1); err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("batch", pos, 1); err != nil {
		return err
	}
	format, err := parseOutputFormat(flags.Format)
	if err != nil {
		return err
	}
	_, _, s, err := a.loadSchema(flags.Schema)
	if err != nil {
		return err
	}

	in, err := a.open(pos[0])
	if err != nil {
		return err
	}
	vectors, err := batch.ReadLines(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", pos[0], err)
	}

	opts := batch.Options{
		Workers: flags.Workers,
		Parse: argv.Options{
			StrictArrays:  flags.StrictArrays,
			StrictNumbers: flags.StrictNumbers,
		},
	}
	var progress *tui.Progress
	if a.progress && !flags.Quiet {
		progress = tui.NewProgress(a.stderr, "parsing", len(vectors), tui.WithColor(a.color))
		opts.Done = func(batch.Record) { progress.Add(1) }
		progress.Start()
	}
	records, err := batch.Run(ctx, s, vectors, opts)
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		return err
	}
	// Destroy clears Success, so count before rendering.
	stats := batch.Summary(records)
	for _, rec := range records {
		d := render.Document(rec.Result)
		d.Line = rec.Line
		d.Args = rec.Args
		if err := render.Write(a.stdout, format, d); err != nil {
			return err
		}
		rec.Result.Destroy()
	}

	if !flags.Quiet {
		summary := stats.String()
		if stats.Failed > 0 {
			summary = a.color.Wrap(tui.Yellow, summary)
		}
		fmt.Fprintln(a.stderr, summary)
	}
	if stats.Failed > 0 {
		return errReported
	}
	return nil
}

func (a *app) handleCheck(_ context.Context, args []string) error {
	flags, pos, err := cli.ParseCheck(commandArgs(args, "check"))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("check", pos, 0); err != nil {
		return err
	}
	path, _, s, err := a.loadSchema(flags.Schema)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: %s %d flags (%d required), %d commands\n",
		path, a.color.Wrap(tui.Green, "ok"), len(s.Flags()), len(s.RequiredFlags()), len(s.Commands()))
	return nil
}

func (a *app) handleSchemaFmt(_ context.Context, args []string) error {
	flags, pos, err := cli.ParseSchemaFmt(commandArgs(args, "fmt"))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("schema fmt", pos, 0); err != nil {
		return err
	}
	path, file, s, err := a.loadSchema(flags.Schema)
	if err != nil {
		return err
	}
	to := schemafile.FormatFromPath(path)
	if flags.To != "" {
		if to, err = schemafile.ParseFormat(flags.To); err != nil {
			return &usageError{err}
		}
	}
	out := schemafile.FromSchema(s, file.Name, file.Description)
	out.Padding = file.Padding
	return schemafile.Encode(a.stdout, to, out)
}

func (a *app) handleVersion(_ context.Context, args []string) error {
	flags, _, err := cli.ParseVersion(commandArgs(args, "version"))
	if err != nil {
		return err
	}
	info := getVersionInfo()
	if flags.JSON {
		return json.NewEncoder(a.stdout).Encode(info)
	}
	fmt.Fprintln(a.stdout, info.Version)
	if info.Version != info.Commit {
		log.Printf("commit %s", info.Commit)
	}
	return nil
}
