// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argspec

import "slices"

// Builder accumulates declarations. It is a value type: every method returns
// a new Builder and leaves the receiver untouched, so partially built
// declarations can be shared and extended independently.
//
//	reg := argspec.Builder{}.
//		Flag("verbose", 'v', "verbose").
//		LongOption("output", "output", argspec.Exact(1)).
//		Subcommand("run", argspec.More(0)).
//		Build()
//
// Builder performs no validation; see Registry.Validate.
type Builder struct {
	specs []ArgSpec
}

func (b Builder) add(spec ArgSpec) Builder {
	b.specs = append(slices.Clip(b.specs), spec)
	return b
}

// ShortOption declares an option that only has a short form.
func (b Builder) ShortOption(name string, short rune, c Cardinality) Builder {
	return b.add(ArgSpec{Name: name, Short: short, Kind: Option, Cardinality: c})
}

// LongOption declares an option that only has a long form.
func (b Builder) LongOption(name, long string, c Cardinality) Builder {
	return b.add(ArgSpec{Name: name, Long: long, Kind: Option, Cardinality: c})
}

// Option declares an option with both a short and a long form.
func (b Builder) Option(name string, short rune, long string, c Cardinality) Builder {
	return b.add(ArgSpec{Name: name, Short: short, Long: long, Kind: Option, Cardinality: c})
}

// ShortFlag declares a parameterless option with only a short form.
func (b Builder) ShortFlag(name string, short rune) Builder {
	return b.ShortOption(name, short, Zero{})
}

// LongFlag declares a parameterless option with only a long form.
func (b Builder) LongFlag(name, long string) Builder {
	return b.LongOption(name, long, Zero{})
}

// Flag declares a parameterless option with a short and a long form.
func (b Builder) Flag(name string, short rune, long string) Builder {
	return b.Option(name, short, long, Zero{})
}

// Subcommand declares a subcommand matched by its name.
func (b Builder) Subcommand(name string, c Cardinality) Builder {
	return b.add(ArgSpec{Name: name, Kind: Subcommand, Cardinality: c})
}

// Spec appends an already constructed declaration.
func (b Builder) Spec(spec ArgSpec) Builder {
	return b.add(spec)
}

// Build finalizes the declarations into an immutable Registry.
func (b Builder) Build() Registry {
	return Registry{specs: slices.Clone(b.specs)}
}

// Registry is an ordered, read-only collection of declarations. It is safe
// for concurrent use.
type Registry struct {
	specs []ArgSpec
}

// NewRegistry returns a Registry holding a copy of specs.
func NewRegistry(specs ...ArgSpec) Registry {
	return Registry{specs: slices.Clone(specs)}
}

// Specs returns a copy of all declarations in declaration order.
func (r Registry) Specs() []ArgSpec {
	return slices.Clone(r.specs)
}

// Len returns the number of declarations.
func (r Registry) Len() int {
	return len(r.specs)
}

// Lookup returns the first declaration with the given name.
func (r Registry) Lookup(name string) (ArgSpec, bool) {
	for _, s := range r.specs {
		if s.Name == name {
			return s, true
		}
	}
	return ArgSpec{}, false
}

// Options returns the Option-kind declarations in declaration order.
func (r Registry) Options() []ArgSpec {
	return r.filter(Option)
}

// Subcommands returns the Subcommand-kind declarations in declaration order.
func (r Registry) Subcommands() []ArgSpec {
	return r.filter(Subcommand)
}

func (r Registry) filter(k Kind) []ArgSpec {
	var out []ArgSpec
	for _, s := range r.specs {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}
