// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argspec declares the arguments a program expects: options matched
// by a short (-v) or long (--verbose) form, and subcommands matched by their
// literal name. Each declaration carries a Cardinality that decides how many
// of the following tokens it captures.
package argspec

import "fmt"

// Kind distinguishes options from subcommands.
type Kind int

const (
	// Option is matched by a token starting with "-" or "--".
	Option Kind = iota
	// Subcommand is matched by a bare token equal to its name.
	Subcommand
)

func (k Kind) String() string {
	switch k {
	case Option:
		return "option"
	case Subcommand:
		return "subcommand"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "option", "":
		return Option, nil
	case "subcommand":
		return Subcommand, nil
	}
	return 0, fmt.Errorf("unknown kind %q (want option or subcommand)", s)
}

// ArgSpec is a single declared argument.
type ArgSpec struct {
	// Name identifies the argument in parse results. It must be unique
	// within a Registry.
	Name string
	// Short is the single character matched by "-c". Zero means none.
	// Only used when Kind is Option.
	Short rune
	// Long is the word matched by "--word". Empty means none.
	// Only used when Kind is Option.
	Long string
	Kind Kind
	// Cardinality is the parameter-count rule. A nil Cardinality behaves
	// like Zero.
	Cardinality Cardinality
}

// HasShort reports whether the declaration can be matched by a short form.
func (a ArgSpec) HasShort() bool {
	return a.Kind == Option && a.Short != 0
}

// HasLong reports whether the declaration can be matched by a long form.
func (a ArgSpec) HasLong() bool {
	return a.Kind == Option && a.Long != ""
}

// Reachable reports whether any token could ever match the declaration.
func (a ArgSpec) Reachable() bool {
	if a.Kind == Subcommand {
		return a.Name != ""
	}
	return a.HasShort() || a.HasLong()
}

// Params returns the declaration's cardinality, defaulting to Zero.
func (a ArgSpec) Params() Cardinality {
	if a.Cardinality == nil {
		return Zero{}
	}
	return a.Cardinality
}

// String renders the declaration for error messages.
func (a ArgSpec) String() string {
	switch {
	case a.HasShort() && a.HasLong():
		return fmt.Sprintf("(Argument %s [short: -%c, long: --%s])", a.Name, a.Short, a.Long)
	case a.HasShort():
		return fmt.Sprintf("(Argument %s [short: -%c])", a.Name, a.Short)
	case a.HasLong():
		return fmt.Sprintf("(Argument %s [long: --%s])", a.Name, a.Long)
	default:
		return fmt.Sprintf("(Argument %s)", a.Name)
	}
}
