// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import "tailscale.com/util/mak"

// Schema is the set of flags and commands an application accepts.
//
// Entries are stored once; the canonical name and the alias of an entry are
// both keys into the same slot. Names and aliases are unique across flags and
// commands together.
//
// A Schema must not be modified while it is being parsed against. Parsing
// never modifies it, so a fully registered Schema may be shared between
// goroutines.
type Schema struct {
	flags    []namedEntry
	commands []namedEntry

	// keys maps every name and alias to its slot.
	keys map[string]slot
}

type namedEntry struct {
	Name string
	Entry
}

type slot struct {
	command bool
	index   int
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{}
}

// RegisterFlag adds a flag. It returns false and leaves the schema unchanged
// if name or e.Alias is already taken by any flag or command.
func (s *Schema) RegisterFlag(name string, e Entry) bool {
	return s.RegisterFlagE(name, e) == nil
}

// RegisterCommand adds a command. It returns false and leaves the schema
// unchanged if name or e.Alias is already taken by any flag or command.
// e.Required is ignored.
func (s *Schema) RegisterCommand(name string, e Entry) bool {
	return s.RegisterCommandE(name, e) == nil
}

// RegisterFlagE is like RegisterFlag but reports why registration failed.
func (s *Schema) RegisterFlagE(name string, e Entry) error {
	return s.register(false, name, e)
}

// RegisterCommandE is like RegisterCommand but reports why registration failed.
func (s *Schema) RegisterCommandE(name string, e Entry) error {
	e.Required = false
	return s.register(true, name, e)
}

func (s *Schema) register(command bool, name string, e Entry) error {
	ns := "flag"
	if command {
		ns = "command"
	}
	switch {
	case name == "":
		return &ConflictError{Name: name, Namespace: ns, Reason: "empty name"}
	case !e.Kind.Valid():
		return &ConflictError{Name: name, Namespace: ns, Reason: "invalid kind " + e.Kind.String()}
	case e.Alias == name:
		return &ConflictError{Name: name, Namespace: ns, Reason: "alias equals name"}
	}
	if _, ok := s.keys[name]; ok {
		return &ConflictError{Name: name, Namespace: ns}
	}
	if e.Alias != "" {
		if _, ok := s.keys[e.Alias]; ok {
			return &ConflictError{Name: e.Alias, Namespace: ns}
		}
	}

	var sl slot
	if command {
		sl = slot{command: true, index: len(s.commands)}
		s.commands = append(s.commands, namedEntry{Name: name, Entry: e})
	} else {
		sl = slot{index: len(s.flags)}
		s.flags = append(s.flags, namedEntry{Name: name, Entry: e})
	}
	mak.Set(&s.keys, name, sl)
	if e.Alias != "" {
		s.keys[e.Alias] = sl
	}
	return nil
}

func (s *Schema) at(sl slot) namedEntry {
	if sl.command {
		return s.commands[sl.index]
	}
	return s.flags[sl.index]
}

// Lookup finds name, which may be a canonical name or an alias, among both
// flags and commands.
func (s *Schema) Lookup(name string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	sl, ok := s.keys[name]
	if !ok {
		return Entry{}, false
	}
	return s.at(sl).Entry, true
}

// Flag resolves a flag by name or alias and returns its canonical name.
func (s *Schema) Flag(name string) (canonical string, e Entry, ok bool) {
	return s.resolve(false, name)
}

// Command resolves a command by name or alias and returns its canonical name.
func (s *Schema) Command(name string) (canonical string, e Entry, ok bool) {
	return s.resolve(true, name)
}

func (s *Schema) resolve(command bool, name string) (string, Entry, bool) {
	if s == nil {
		return "", Entry{}, false
	}
	sl, ok := s.keys[name]
	if !ok || sl.command != command {
		return "", Entry{}, false
	}
	ne := s.at(sl)
	return ne.Name, ne.Entry, true
}

// Declared is one registered entry with its canonical name.
type Declared struct {
	Name string
	Entry
}

// Flags returns the registered flags in registration order.
func (s *Schema) Flags() []Declared {
	if s == nil {
		return nil
	}
	return declared(s.flags)
}

// Commands returns the registered commands in registration order.
func (s *Schema) Commands() []Declared {
	if s == nil {
		return nil
	}
	return declared(s.commands)
}

func declared(entries []namedEntry) []Declared {
	out := make([]Declared, len(entries))
	for i, ne := range entries {
		out[i] = Declared(ne)
	}
	return out
}

// RequiredFlags returns the canonical names of all required flags in
// registration order.
func (s *Schema) RequiredFlags() []string {
	if s == nil {
		return nil
	}
	var names []string
	for _, f := range s.flags {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Len returns the number of distinct entries. An entry registered with an
// alias counts once.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.flags) + len(s.commands)
}
