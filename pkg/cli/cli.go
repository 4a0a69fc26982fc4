// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/shayne/yargs"
)

// EnvSchema names the environment variable holding the default schema path.
const EnvSchema = "ARGVQ_SCHEMA"

// ErrNoSchema is returned when neither --schema nor ARGVQ_SCHEMA is set.
var ErrNoSchema = errors.New("no schema file given (use --schema or set " + EnvSchema + ")")

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

type GroupInfo struct {
	Name        string
	Description string
	Commands    map[string]CommandInfo
	Hidden      bool
}

type ParseFlags struct {
	Schema        string
	Format        string
	StrictArrays  bool
	StrictNumbers bool
}

type UsageFlags struct {
	Schema  string
	Padding int
}

type BatchFlags struct {
	Schema        string
	Format        string
	Workers       int
	StrictArrays  bool
	StrictNumbers bool
	Quiet         bool
}

type CheckFlags struct {
	Schema string
}

type SchemaFmtFlags struct {
	Schema string
	To     string
}

type VersionFlags struct {
	JSON bool
}

type parseFlagsParsed struct {
	Schema        string `flag:"schema" short:"s" help:"Schema file (ARGVQ_SCHEMA)"`
	Format        string `flag:"format" short:"f" default:"table" help:"Output format (json|yaml|table)"`
	StrictArrays  bool   `flag:"strict-arrays" help:"Reject flags inside an array instead of ending it"`
	StrictNumbers bool   `flag:"strict-numbers" help:"Reject malformed integer and float values"`
}

type usageFlagsParsed struct {
	Schema  string `flag:"schema" short:"s" help:"Schema file (ARGVQ_SCHEMA)"`
	Padding int    `flag:"padding" short:"p" help:"Name column width (defaults to the schema file's)"`
}

type batchFlagsParsed struct {
	Schema        string `flag:"schema" short:"s" help:"Schema file (ARGVQ_SCHEMA)"`
	Format        string `flag:"format" short:"f" default:"json" help:"Output format (json|yaml|table)"`
	Workers       int    `flag:"workers" short:"w" help:"Concurrent parses (defaults to GOMAXPROCS)"`
	StrictArrays  bool   `flag:"strict-arrays" help:"Reject flags inside an array instead of ending it"`
	StrictNumbers bool   `flag:"strict-numbers" help:"Reject malformed integer and float values"`
	Quiet         bool   `flag:"quiet" short:"q" help:"Print neither progress nor the summary"`
}

type checkFlagsParsed struct {
	Schema string `flag:"schema" short:"s" help:"Schema file (ARGVQ_SCHEMA)"`
}

type schemaFmtFlagsParsed struct {
	Schema string `flag:"schema" short:"s" help:"Schema file (ARGVQ_SCHEMA)"`
	To     string `flag:"to" help:"Output format (toml|yaml), defaults to the input's"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json"`
}

var commandInfos = map[string]CommandInfo{
	"parse": {
		Name:        "parse",
		Description: "Parse one command line against a schema",
		Usage:       "[--schema FILE] [--format json|yaml|table] -- PROG [ARGS...]",
		Examples: []string{
			"argvq parse --schema mk.toml -- mk -v build main.c",
			"argvq parse -s mk.yaml -f json -- mk --tags a b build x",
		},
	},
	"usage": {
		Name:        "usage",
		Description: "Print the help text a schema generates",
		Usage:       "[--schema FILE] [--padding N]",
		Examples:    []string{"argvq usage --schema mk.toml --padding 20"},
	},
	"batch": {
		Name:        "batch",
		Description: "Parse one shell-quoted command line per input line",
		Usage:       "[--schema FILE] [--workers N] FILE|-",
		Examples: []string{
			"argvq batch --schema mk.toml corpus.txt",
			"argvq batch -s mk.toml -f table corpus.txt.zst",
			"cat corpus.txt | argvq batch -s mk.toml -",
		},
	},
	"check": {
		Name:        "check",
		Description: "Validate a schema file",
		Usage:       "[--schema FILE]",
		Aliases:     []string{"validate"},
	},
	"version": {
		Name:        "version",
		Description: "Print the argvq version",
		Usage:       "[--json]",
	},
}

var groupInfos = map[string]GroupInfo{
	"schema": {
		Name:        "schema",
		Description: "Work with schema files",
		Commands: map[string]CommandInfo{
			"fmt": {
				Name:        "fmt",
				Description: "Rewrite a schema file in canonical form",
				Usage:       "[--schema FILE] [--to toml|yaml]",
				Examples:    []string{"argvq schema fmt --schema mk.toml --to yaml > mk.yaml"},
			},
		},
	},
}

// CommandNames returns the top-level command names, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func GroupInfos() map[string]GroupInfo {
	return groupInfos
}

// HelpConfig returns the yargs help metadata for argvq.
func HelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo, len(commandInfos))
	for name, info := range commandInfos {
		subcommands[name] = toSubCommandInfo(name, info)
	}
	groups := make(map[string]yargs.GroupInfo, len(groupInfos))
	for name, info := range groupInfos {
		cmds := make(map[string]yargs.SubCommandInfo, len(info.Commands))
		for cmdName, cmd := range info.Commands {
			cmds[cmdName] = toSubCommandInfo(cmdName, cmd)
		}
		groups[name] = yargs.GroupInfo{
			Name:        info.Name,
			Description: info.Description,
			Commands:    cmds,
			Hidden:      info.Hidden,
		}
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argvq",
			Description: "Parse command lines against a declared flag and command schema.",
			Examples: []string{
				"argvq check --schema mk.toml",
				"argvq parse --schema mk.toml -- mk -v build main.c",
				"ARGVQ_SCHEMA=mk.toml argvq batch corpus.txt",
			},
		},
		SubCommands: subcommands,
		Groups:      groups,
	}
}

func toSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// SchemaPath returns flag if set, otherwise the ARGVQ_SCHEMA path.
func SchemaPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p := os.Getenv(EnvSchema); p != "" {
		return p, nil
	}
	return "", ErrNoSchema
}

// ParseParse parses the flags of "parse". args starts after the command
// name and must not contain the program's own arguments.
func ParseParse(args []string) (ParseFlags, []string, error) {
	parsed, err := parseFlags[parseFlagsParsed](args)
	if err != nil {
		return ParseFlags{}, nil, err
	}
	flags := ParseFlags{
		Schema:        parsed.Flags.Schema,
		Format:        parsed.Flags.Format,
		StrictArrays:  parsed.Flags.StrictArrays,
		StrictNumbers: parsed.Flags.StrictNumbers,
	}
	return flags, parsed.Args, nil
}

func ParseUsage(args []string) (UsageFlags, []string, error) {
	parsed, err := parseFlags[usageFlagsParsed](args)
	if err != nil {
		return UsageFlags{}, nil, err
	}
	if parsed.Flags.Padding < 0 {
		return UsageFlags{}, nil, negativeFlag("padding", "usage", parsed.Flags.Padding)
	}
	flags := UsageFlags{
		Schema:  parsed.Flags.Schema,
		Padding: parsed.Flags.Padding,
	}
	return flags, parsed.Args, nil
}

// ParseBatch parses the flags of "batch". A lone "-" is kept as a
// positional argument naming standard input.
func ParseBatch(args []string) (BatchFlags, []string, error) {
	args, stdin := extractStdinArg(args)
	parsed, err := parseFlags[batchFlagsParsed](args)
	if err != nil {
		return BatchFlags{}, nil, err
	}
	if stdin {
		parsed.Args = append(parsed.Args, "-")
	}
	if parsed.Flags.Workers < 0 {
		return BatchFlags{}, nil, negativeFlag("workers", "batch", parsed.Flags.Workers)
	}
	flags := BatchFlags{
		Schema:        parsed.Flags.Schema,
		Format:        parsed.Flags.Format,
		Workers:       parsed.Flags.Workers,
		StrictArrays:  parsed.Flags.StrictArrays,
		StrictNumbers: parsed.Flags.StrictNumbers,
		Quiet:         parsed.Flags.Quiet,
	}
	return flags, parsed.Args, nil
}

func ParseCheck(args []string) (CheckFlags, []string, error) {
	parsed, err := parseFlags[checkFlagsParsed](args)
	if err != nil {
		return CheckFlags{}, nil, err
	}
	return CheckFlags{Schema: parsed.Flags.Schema}, parsed.Args, nil
}

func ParseSchemaFmt(args []string) (SchemaFmtFlags, []string, error) {
	parsed, err := parseFlags[schemaFmtFlagsParsed](args)
	if err != nil {
		return SchemaFmtFlags{}, nil, err
	}
	flags := SchemaFmtFlags{
		Schema: parsed.Flags.Schema,
		To:     parsed.Flags.To,
	}
	return flags, parsed.Args, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parsed, err := parseFlags[versionFlagsParsed](args)
	if err != nil {
		return VersionFlags{}, nil, err
	}
	return VersionFlags{JSON: parsed.Flags.JSON}, parsed.Args, nil
}

type parsedFlags[T any] struct {
	Flags T
	Args  []string
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut}, nil
}

// SplitAtDoubleDash splits args at the first "--". The "--" itself is
// dropped. rest is nil if there is no "--".
func SplitAtDoubleDash(args []string) (head, rest []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// extractStdinArg removes every lone "-" before the first "--".
func extractStdinArg(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if arg == "-" {
			found = true
			continue
		}
		out = append(out, arg)
	}
	return out, found
}

func negativeFlag(name, subcmd string, v int) error {
	return &yargs.FlagValueError{
		FlagName:   name,
		Value:      strconv.Itoa(v),
		SubCommand: subcmd,
		UserMsg:    fmt.Sprintf("--%s must not be negative, got %d", name, v),
		Err:        errors.New("negative value"),
	}
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return &yargs.InvalidArgsError{Expected: fmt.Sprintf("at least %d", count), Got: len(args), SubCommand: subcmd}
	}
	return nil
}

func RequireArgsAtMost(subcmd string, args []string, count int) error {
	if len(args) > count {
		return &yargs.InvalidArgsError{Expected: fmt.Sprintf("at most %d", count), Got: len(args), SubCommand: subcmd}
	}
	return nil
}
