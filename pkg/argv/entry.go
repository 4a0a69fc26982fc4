// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

// Entry declares one flag or command.
type Entry struct {
	Description string
	Kind        Kind
	// Alias is an optional second key. Flags given by alias use the short
	// "-" prefix on the command line by convention, but either prefix works.
	Alias string
	// Required is only meaningful for flags; it is ignored for commands.
	Required bool
}
