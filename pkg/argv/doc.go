// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argv parses a command line against a declared schema of flags and
// a single positional command.
//
// # Schema
//
// A Schema declares every flag and command the application accepts. Each
// entry has a Kind, an optional alias and, for flags, whether it is required.
// Names and aliases share one namespace across flags and commands:
//
//	s := argv.NewSchema()
//	s.RegisterFlag("verbose", argv.Entry{Description: "Verbose output", Kind: argv.Static, Alias: "v"})
//	s.RegisterFlag("out", argv.Entry{Description: "Output file", Kind: argv.String, Required: true})
//	s.RegisterFlag("tags", argv.Entry{Description: "Build tags", Kind: argv.Array})
//	s.RegisterCommand("build", argv.Entry{Description: "Build a file", Kind: argv.String})
//
// # Parsing
//
// Parse walks the arguments (os.Args style, the first one is skipped):
//
//	r := argv.Parse(os.Args, s)
//	if !r.Success {
//	    fmt.Fprintln(os.Stderr, r.Err)
//	    fmt.Fprint(os.Stderr, argv.GenerateHelp(s, "mk", "builds things", 24))
//	    os.Exit(2)
//	}
//	_, target, _ := r.Command()
//
// Flags start with "-" or "--"; either prefix accepts the name or the alias.
// Static flags take no value. String, integer and float flags take exactly
// the next argument, which must not start with "-". Array flags take every
// following argument up to the next flag or the end of input, possibly none.
// Until the command has been given, an argument naming a command also ends
// the array.
//
// The first argument that is not a flag or a flag's value names the command.
// The command then takes its own value according to its kind, exactly like a
// flag would. A second command is an error.
//
// Integers and floats are converted leniently by default, see ParseInteger
// and ParseFloat; Options.StrictNumbers rejects malformed numbers instead.
//
// # Errors
//
// A failed parse has Success false and Err set. Err wraps one of the
// sentinel errors (ErrUnknownFlag, ErrMissingValue, ...) and is usually a
// *TokenError pointing at the offending argument or a *RequiredFlagsError.
package argv
