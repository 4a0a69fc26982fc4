// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"fmt"
	"strings"
)

// GenerateHelp formats the usage text for an application. Each flag and
// command is listed once, in registration order:
//
//	AVAILABLE FLAGS:
//	  --name, -alias      description (kind)
//
//	AVAILABLE COMMANDS:
//	name, alias           description (kind)
//
// Only flag lines are indented. The name column is padded to padding
// characters; longer names are not truncated. Static entries have no kind suffix. GenerateHelp returns "" if
// s is nil or appName or description is empty.
func GenerateHelp(s *Schema, appName, description string, padding int) string {
	if s == nil || appName == "" || description == "" {
		return ""
	}
	var b strings.Builder

	fmt.Fprintf(&b, "%s - %s\n\n", appName, description)
	fmt.Fprintf(&b, "Usage: %s [flags...] <command> [flags...] <value> [flags...]\n\n", appName)

	if len(s.flags) > 0 {
		b.WriteString("AVAILABLE FLAGS:\n")
		writeEntries(&b, s.flags, true, padding)
	}
	if len(s.commands) > 0 {
		b.WriteString("\nAVAILABLE COMMANDS:\n")
		writeEntries(&b, s.commands, false, padding)
	}
	return b.String()
}

func writeEntries(b *strings.Builder, entries []namedEntry, flags bool, padding int) {
	for _, e := range entries {
		var name strings.Builder
		name.WriteString(e.Name)
		if e.Alias != "" {
			if flags {
				name.WriteString(", -")
			} else {
				name.WriteString(", ")
			}
			name.WriteString(e.Alias)
		}
		if flags {
			b.WriteString("  --")
		}
		fmt.Fprintf(b, "%-*s", padding, name.String())
		b.WriteString(e.Description)
		if e.Kind != Static {
			fmt.Fprintf(b, " (%s)", e.Kind)
		}
		b.WriteByte('\n')
	}
}
