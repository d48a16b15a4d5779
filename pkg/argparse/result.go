// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"maps"
	"slices"

	"github.com/yeetrun/argscan/pkg/argspec"
)

// ParsedArgs is the result of a successful parse.
type ParsedArgs struct {
	// Program is the key of the positional bucket.
	Program string `json:"program"`
	// Values maps each declared name, plus Program, to its parameters.
	// A nil slice means the declaration never appeared; a non-nil empty
	// slice means it appeared without parameters.
	Values map[string][]string `json:"values"`
}

func newParsedArgs(program string, reg argspec.Registry) *ParsedArgs {
	values := make(map[string][]string, reg.Len()+1)
	for _, s := range reg.Specs() {
		values[s.Name] = nil
	}
	values[program] = []string{}
	return &ParsedArgs{Program: program, Values: values}
}

// Appeared reports whether the named declaration matched at least once.
func (a *ParsedArgs) Appeared(name string) bool {
	return a.Values[name] != nil
}

// Parameters returns the parameters captured for name. ok is false when the
// declaration never appeared.
func (a *ParsedArgs) Parameters(name string) (params []string, ok bool) {
	params = a.Values[name]
	return params, params != nil
}

// Positional returns the tokens that matched no declaration.
func (a *ParsedArgs) Positional() []string {
	return a.Values[a.Program]
}

// Names returns every key of Values in sorted order.
func (a *ParsedArgs) Names() []string {
	return slices.Sorted(maps.Keys(a.Values))
}
