// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render prints parse results as JSON, YAML or a plain table.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/argv/pkg/argv"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	JSON  Format = "json"
	YAML  Format = "yaml"
	Table Format = "table"
)

// Formats lists the accepted format names.
var Formats = []Format{JSON, YAML, Table}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML, Table:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, yaml or table)", s)
}

// Doc is the serializable view of a parse result.
type Doc struct {
	Line     int                 `json:"line,omitempty" yaml:"line,omitempty"`
	Args     []string            `json:"args,omitempty" yaml:"args,omitempty"`
	Success  bool                `json:"success" yaml:"success"`
	Error    string              `json:"error,omitempty" yaml:"error,omitempty"`
	Command  *Command            `json:"command,omitempty" yaml:"command,omitempty"`
	Statics  []string            `json:"statics,omitempty" yaml:"statics,omitempty"`
	Strings  map[string]string   `json:"strings,omitempty" yaml:"strings,omitempty"`
	Integers map[string]int64    `json:"integers,omitempty" yaml:"integers,omitempty"`
	Floats   map[string]any      `json:"floats,omitempty" yaml:"floats,omitempty"`
	Arrays   map[string][]string `json:"arrays,omitempty" yaml:"arrays,omitempty"`
}

// Command is the command part of a Doc.
type Command struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Document builds the Doc for r. Values of a failed parse are kept.
func Document(r *argv.Result) Doc {
	var d Doc
	if r == nil {
		return d
	}
	d.Success = r.Success
	if r.Err != nil {
		d.Error = r.Err.Error()
	}
	if name, v, ok := r.Command(); ok {
		c := &Command{Name: name, Kind: v.Kind().String()}
		if v.Kind() != argv.Static {
			c.Value = jsonSafe(v.Interface())
		}
		d.Command = c
	}
	d.Statics = r.Names(argv.Static)
	for _, n := range r.Names(argv.String) {
		s, _ := r.String(n)
		if d.Strings == nil {
			d.Strings = map[string]string{}
		}
		d.Strings[n] = s
	}
	for _, n := range r.Names(argv.Integer) {
		i, _ := r.Integer(n)
		if d.Integers == nil {
			d.Integers = map[string]int64{}
		}
		d.Integers[n] = i
	}
	for _, n := range r.Names(argv.Float) {
		f, _ := r.Float(n)
		if d.Floats == nil {
			d.Floats = map[string]any{}
		}
		d.Floats[n] = jsonSafe(f)
	}
	for _, n := range r.Names(argv.Array) {
		a, _ := r.Array(n)
		if d.Arrays == nil {
			d.Arrays = map[string][]string{}
		}
		d.Arrays[n] = a
	}
	return d
}

// jsonSafe replaces non-finite floats, which JSON cannot carry, with their
// strconv spelling.
func jsonSafe(v any) any {
	f, ok := v.(float64)
	if !ok || (!math.IsInf(f, 0) && !math.IsNaN(f)) {
		return v
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Render writes r to w in format.
func Render(w io.Writer, format Format, r *argv.Result) error {
	return Write(w, format, Document(r))
}

// Write writes d to w in format. JSON is one object per line and YAML is
// one document per call, so repeated calls produce a stream.
func Write(w io.Writer, format Format, d Doc) error {
	switch format {
	case JSON:
		return json.NewEncoder(w).Encode(d)
	case YAML:
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case Table:
		return writeTable(w, d)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeTable(w io.Writer, d Doc) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if d.Line > 0 {
		fmt.Fprintf(tw, "line:\t%d\n", d.Line)
	}
	if len(d.Args) > 0 {
		fmt.Fprintf(tw, "args:\t%s\n", strings.Join(d.Args, " "))
	}
	status := "ok"
	if !d.Success {
		status = "failed"
		if d.Error != "" {
			status += ": " + d.Error
		}
	}
	fmt.Fprintf(tw, "status:\t%s\n", status)
	if c := d.Command; c != nil {
		if c.Value != nil {
			fmt.Fprintf(tw, "command:\t%s\t%s\t%s\n", c.Name, c.Kind, formatValue(c.Value))
		} else {
			fmt.Fprintf(tw, "command:\t%s\t%s\n", c.Name, c.Kind)
		}
	}
	for _, n := range d.Statics {
		fmt.Fprintf(tw, "  --%s\tstatic\ttrue\n", n)
	}
	for _, n := range sortedKeys(d.Strings) {
		fmt.Fprintf(tw, "  --%s\tstring\t%s\n", n, d.Strings[n])
	}
	for _, n := range sortedKeys(d.Integers) {
		fmt.Fprintf(tw, "  --%s\tinteger\t%d\n", n, d.Integers[n])
	}
	for _, n := range sortedKeys(d.Floats) {
		fmt.Fprintf(tw, "  --%s\tfloat\t%s\n", n, formatValue(d.Floats[n]))
	}
	for _, n := range sortedKeys(d.Arrays) {
		fmt.Fprintf(tw, "  --%s\tarray\t%s\n", n, formatValue(d.Arrays[n]))
	}
	return tw.Flush()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []string:
		return "[" + strings.Join(v, " ") + "]"
	}
	return fmt.Sprint(v)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
