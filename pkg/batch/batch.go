// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package batch parses many argument vectors against one schema.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/google/shlex"
	"github.com/yeetrun/argv/pkg/argv"
	"golang.org/x/sync/errgroup"
)

// Vector is one argument vector read from an input line.
type Vector struct {
	// Line is the 1-based input line.
	Line int
	// Args starts with the program name, like os.Args.
	Args []string
}

// Record is the outcome of parsing one Vector.
type Record struct {
	Vector
	Result *argv.Result
}

// Options configures Run.
type Options struct {
	// Workers bounds the number of concurrent parses. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
	// Parse is passed to every parse.
	Parse argv.Options
	// Done, if set, is called after each parse from the parsing goroutine.
	Done func(Record)
}

// ReadLines reads one shell-quoted argument vector per line. Blank lines and
// lines starting with '#' are skipped.
func ReadLines(r io.Reader) ([]Vector, error) {
	var out []Vector
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		args, err := shlex.Split(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(args) == 0 {
			continue
		}
		out = append(out, Vector{Line: line, Args: args})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Run parses every vector against s. Records are returned in input order.
// If ctx is canceled the remaining vectors fail and Run returns ctx.Err().
func Run(ctx context.Context, s *argv.Schema, vectors []Vector, opts Options) ([]Record, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	records := make([]Record, len(vectors))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, v := range vectors {
		g.Go(func() error {
			records[i] = Record{
				Vector: v,
				Result: argv.ParseContext(ctx, v.Args, s, opts.Parse),
			}
			if opts.Done != nil {
				opts.Done(records[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return records, err
	}
	return records, ctx.Err()
}

// Stats summarizes a batch.
type Stats struct {
	Total  int
	Passed int
	Failed int
	// Reasons counts failures by Reason.
	Reasons map[string]int
}

// Summary counts the outcomes of records.
func Summary(records []Record) Stats {
	st := Stats{Total: len(records), Reasons: map[string]int{}}
	for _, r := range records {
		if r.Result != nil && r.Result.Success {
			st.Passed++
			continue
		}
		st.Failed++
		var err error
		if r.Result != nil {
			err = r.Result.Err
		}
		st.Reasons[Reason(err)]++
	}
	return st
}

func (st Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d parsed, %d ok, %d failed", st.Total, st.Passed, st.Failed)
	reasons := make([]string, 0, len(st.Reasons))
	for k := range st.Reasons {
		reasons = append(reasons, k)
	}
	slices.Sort(reasons)
	for _, k := range reasons {
		fmt.Fprintf(&b, "\n  %s: %d", k, st.Reasons[k])
	}
	return b.String()
}

var reasons = []error{
	argv.ErrUnknownFlag,
	argv.ErrUnknownCommand,
	argv.ErrDanglingDash,
	argv.ErrUnexpectedFlag,
	argv.ErrMissingValue,
	argv.ErrDuplicateCommand,
	argv.ErrMissingCommand,
	argv.ErrRequiredFlags,
	argv.ErrInvalidValue,
	context.Canceled,
	context.DeadlineExceeded,
}

// Reason names the sentinel err wraps, or "other".
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r) {
			return r.Error()
		}
	}
	return "other"
}
