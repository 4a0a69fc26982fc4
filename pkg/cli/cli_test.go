// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shayne/yargs"
)

func TestParseParseFlagsAndArgs(t *testing.T) {
	args := []string{
		"--schema", "mk.toml",
		"-f", "json",
		"--strict-arrays",
		"--strict-numbers",
	}
	flags, outArgs, err := ParseParse(args)
	if err != nil {
		t.Fatalf("ParseParse failed: %v", err)
	}
	want := ParseFlags{Schema: "mk.toml", Format: "json", StrictArrays: true, StrictNumbers: true}
	if flags != want {
		t.Errorf("flags = %+v, want %+v", flags, want)
	}
	if len(outArgs) != 0 {
		t.Errorf("args = %q, want none", outArgs)
	}
}

func TestParseParseDefaults(t *testing.T) {
	flags, _, err := ParseParse(nil)
	if err != nil {
		t.Fatalf("ParseParse failed: %v", err)
	}
	if flags.Format != "table" {
		t.Errorf("Format = %q, want %q", flags.Format, "table")
	}
	if flags.StrictArrays || flags.StrictNumbers {
		t.Errorf("strict options on by default: %+v", flags)
	}
}

func TestParseParseUnknownFlag(t *testing.T) {
	_, _, err := ParseParse([]string{"--nope"})
	var ife *yargs.InvalidFlagError
	if !errors.As(err, &ife) {
		t.Fatalf("ParseParse error = %v, want *yargs.InvalidFlagError", err)
	}
}

func TestParseBatch(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantFlags BatchFlags
		wantArgs  []string
	}{
		{
			name:      "file",
			args:      []string{"--workers", "4", "-q", "corpus.txt"},
			wantFlags: BatchFlags{Format: "json", Workers: 4, Quiet: true},
			wantArgs:  []string{"corpus.txt"},
		},
		{
			name:      "stdin",
			args:      []string{"-s", "mk.toml", "-", "--format", "table"},
			wantFlags: BatchFlags{Schema: "mk.toml", Format: "table"},
			wantArgs:  []string{"-"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, args, err := ParseBatch(tt.args)
			if err != nil {
				t.Fatalf("ParseBatch failed: %v", err)
			}
			if flags != tt.wantFlags {
				t.Errorf("flags = %+v, want %+v", flags, tt.wantFlags)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestNegativeValues(t *testing.T) {
	_, _, err := ParseBatch([]string{"--workers", "-3"})
	if err == nil {
		t.Fatal("ParseBatch(--workers -3) error = nil")
	}
	_, _, err = ParseUsage([]string{"--padding=-1"})
	var fve *yargs.FlagValueError
	if !errors.As(err, &fve) || fve.FlagName != "padding" {
		t.Fatalf("ParseUsage error = %v, want FlagValueError for padding", err)
	}
}

func TestParseUsageAndSchemaFmt(t *testing.T) {
	u, _, err := ParseUsage([]string{"-s", "mk.yaml", "--padding", "20"})
	if err != nil {
		t.Fatalf("ParseUsage failed: %v", err)
	}
	if u != (UsageFlags{Schema: "mk.yaml", Padding: 20}) {
		t.Errorf("UsageFlags = %+v", u)
	}
	f, _, err := ParseSchemaFmt([]string{"--to", "yaml"})
	if err != nil {
		t.Fatalf("ParseSchemaFmt failed: %v", err)
	}
	if f.To != "yaml" || f.Schema != "" {
		t.Errorf("SchemaFmtFlags = %+v", f)
	}
	v, _, err := ParseVersion([]string{"--json"})
	if err != nil || !v.JSON {
		t.Errorf("ParseVersion(--json) = %+v, %v", v, err)
	}
}

func TestSplitAtDoubleDash(t *testing.T) {
	tests := []struct {
		in       []string
		head     []string
		rest     []string
		wantRest bool
	}{
		{[]string{"parse", "-s", "x"}, []string{"parse", "-s", "x"}, nil, false},
		{[]string{"parse", "--", "mk", "--", "-v"}, []string{"parse"}, []string{"mk", "--", "-v"}, true},
		{[]string{"parse", "--"}, []string{"parse"}, []string{}, true},
	}
	for _, tt := range tests {
		head, rest := SplitAtDoubleDash(tt.in)
		if !reflect.DeepEqual(head, tt.head) {
			t.Errorf("SplitAtDoubleDash(%q) head = %q, want %q", tt.in, head, tt.head)
		}
		if (rest != nil) != tt.wantRest || len(rest) != len(tt.rest) {
			t.Errorf("SplitAtDoubleDash(%q) rest = %q, want %q", tt.in, rest, tt.rest)
		}
	}
}

func TestSchemaPath(t *testing.T) {
	t.Setenv(EnvSchema, "")
	if _, err := SchemaPath(""); !errors.Is(err, ErrNoSchema) {
		t.Errorf("SchemaPath(\"\") error = %v, want ErrNoSchema", err)
	}
	t.Setenv(EnvSchema, "env.toml")
	if got, _ := SchemaPath(""); got != "env.toml" {
		t.Errorf("SchemaPath from env = %q, want env.toml", got)
	}
	if got, _ := SchemaPath("flag.toml"); got != "flag.toml" {
		t.Errorf("SchemaPath(flag.toml) = %q, want flag.toml", got)
	}
}

func TestRequireArgs(t *testing.T) {
	err := RequireArgsAtLeast("parse", nil, 1)
	var iae *yargs.InvalidArgsError
	if !errors.As(err, &iae) {
		t.Fatalf("RequireArgsAtLeast error = %v, want *yargs.InvalidArgsError", err)
	}
	if got := err.Error(); got != "'parse' requires at least 1 argument(s), got 0" {
		t.Errorf("error = %q", got)
	}
	if err := RequireArgsAtMost("check", []string{"a"}, 1); err != nil {
		t.Errorf("RequireArgsAtMost = %v, want nil", err)
	}
	if err := RequireArgsAtMost("check", []string{"a", "b"}, 1); err == nil {
		t.Error("RequireArgsAtMost(2 > 1) = nil")
	}
}

func TestHelpConfigCoversCommands(t *testing.T) {
	cfg := HelpConfig()
	for _, name := range CommandNames() {
		info, ok := cfg.SubCommands[name]
		if !ok {
			t.Errorf("HelpConfig missing %q", name)
			continue
		}
		if info.Description == "" {
			t.Errorf("%q has no description", name)
		}
	}
	if _, ok := cfg.Groups["schema"].Commands["fmt"]; !ok {
		t.Error("HelpConfig missing schema fmt")
	}
	if got := strings.Join(CommandNames(), " "); got != "batch check parse usage version" {
		t.Errorf("CommandNames() = %q", got)
	}
	res, ok, err := yargs.ResolveCommand([]string{"validate", "-s", "x.toml"}, cfg)
	if err != nil || !ok || res.Path[0] != "check" {
		t.Errorf("ResolveCommand(validate) = %+v, %v, %v, want check", res, ok, err)
	}
}
