// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds the small amount of terminal handling argvq needs.
package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Style is a foreground style applied by a Colorizer.
type Style int

const (
	Plain Style = iota
	Red
	Green
	Yellow
	Dim
	Bold
)

var attrs = map[Style][]color.Attribute{
	Red:    {color.FgRed},
	Green:  {color.FgGreen},
	Yellow: {color.FgYellow},
	Dim:    {color.FgHiBlack},
	Bold:   {color.Bold},
}

// Colorizer applies styles when enabled. The zero value never colors.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a colorizer that is enabled only if enabled is true,
// NO_COLOR is unset and TERM is set to something other than "dumb".
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForFile returns a colorizer for output written to f.
func ForFile(f *os.File) Colorizer {
	return NewColorizer(IsTerminal(f))
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Wrap returns text in style s.
func (c Colorizer) Wrap(s Style, text string) string {
	a, ok := attrs[s]
	if !c.Enabled || !ok {
		return text
	}
	p := color.New(a...)
	p.EnableColor()
	return p.Sprint(text)
}
