// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile reads and writes argv schemas declared in TOML or YAML.
//
//	version = "1"
//	name = "mk"
//	description = "builds things"
//
//	[[flags]]
//	name = "verbose"
//	alias = "v"
//	kind = "static"
//	description = "Verbose output"
//
//	[[commands]]
//	name = "build"
//	kind = "string"
//	description = "Build a file"
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/argv/pkg/argv"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the range of schema file versions this package reads.
const SupportedVersions = "^1"

// DefaultPadding is the help column width used when a file does not set one.
const DefaultPadding = 24

// Format is a schema file encoding.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// ErrUnsupportedVersion is returned for files outside SupportedVersions.
var ErrUnsupportedVersion = errors.New("unsupported schema version")

// File is the on-disk form of a schema.
type File struct {
	Version     string `toml:"version,omitempty" yaml:"version,omitempty"`
	Name        string `toml:"name,omitempty" yaml:"name,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	Padding     int    `toml:"padding,omitempty" yaml:"padding,omitempty"`
	Flags       []Decl `toml:"flags,omitempty" yaml:"flags,omitempty"`
	Commands    []Decl `toml:"commands,omitempty" yaml:"commands,omitempty"`
}

// Decl declares one flag or command.
type Decl struct {
	Name        string `toml:"name" yaml:"name"`
	Alias       string `toml:"alias,omitempty" yaml:"alias,omitempty"`
	Kind        string `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `toml:"required,omitempty" yaml:"required,omitempty"`
}

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown schema format %q", s)
}

// Load reads and validates the schema file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(b), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode reads a schema file from r. Unknown keys are an error.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown schema format %q", format)
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	return &f, nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", v, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(ver) {
		return fmt.Errorf("%w %s (want %s)", ErrUnsupportedVersion, ver, SupportedVersions)
	}
	return nil
}

// Schema builds the declared schema. Registration conflicts are reported as
// errors wrapping *argv.ConflictError.
func (f *File) Schema() (*argv.Schema, error) {
	s := argv.NewSchema()
	for i, d := range f.Flags {
		e, err := d.entry()
		if err != nil {
			return nil, fmt.Errorf("flags[%d]: %w", i, err)
		}
		if err := s.RegisterFlagE(d.Name, e); err != nil {
			return nil, fmt.Errorf("flags[%d]: %w", i, err)
		}
	}
	for i, d := range f.Commands {
		if d.Required {
			return nil, fmt.Errorf("commands[%d] %q: commands cannot be required", i, d.Name)
		}
		e, err := d.entry()
		if err != nil {
			return nil, fmt.Errorf("commands[%d]: %w", i, err)
		}
		if err := s.RegisterCommandE(d.Name, e); err != nil {
			return nil, fmt.Errorf("commands[%d]: %w", i, err)
		}
	}
	return s, nil
}

func (d Decl) entry() (argv.Entry, error) {
	k, err := argv.ParseKind(d.Kind)
	if err != nil {
		return argv.Entry{}, fmt.Errorf("%q: %w", d.Name, err)
	}
	return argv.Entry{
		Description: d.Description,
		Kind:        k,
		Alias:       d.Alias,
		Required:    d.Required,
	}, nil
}

// HelpPadding returns the configured help column width.
func (f *File) HelpPadding() int {
	if f.Padding > 0 {
		return f.Padding
	}
	return DefaultPadding
}

// Help renders the help text for the file's schema.
func (f *File) Help() (string, error) {
	s, err := f.Schema()
	if err != nil {
		return "", err
	}
	return argv.GenerateHelp(s, f.Name, f.Description, f.HelpPadding()), nil
}

// FromSchema returns the file form of s.
func FromSchema(s *argv.Schema, name, description string) *File {
	f := &File{
		Version:     "1",
		Name:        name,
		Description: description,
	}
	for _, d := range s.Flags() {
		f.Flags = append(f.Flags, declFrom(d))
	}
	for _, d := range s.Commands() {
		f.Commands = append(f.Commands, declFrom(d))
	}
	return f
}

func declFrom(d argv.Declared) Decl {
	return Decl{
		Name:        d.Name,
		Alias:       d.Alias,
		Kind:        d.Kind.String(),
		Description: d.Description,
		Required:    d.Required,
	}
}

// Encode writes f to w.
func Encode(w io.Writer, format Format, f *File) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(f)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown schema format %q", format)
}
