// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Cardinality is the parameter-count rule of an ArgSpec. The set of
// implementations is closed: Zero, Exact, More and Less.
type Cardinality interface {
	fmt.Stringer
	cardinality()
}

// Zero captures no parameters.
type Zero struct{}

// Exact captures exactly n parameters. None of them may be a registered
// option or subcommand, so a value such as "-1" is rejected when an option
// with short form '1' exists.
type Exact int

// More captures parameters greedily until the next registered option or
// subcommand and requires strictly more than n of them.
type More int

// Less captures at most n-1 parameters, stopping early at the next
// registered option or subcommand. It never fails.
type Less int

func (Zero) cardinality()  {}
func (Exact) cardinality() {}
func (More) cardinality()  {}
func (Less) cardinality()  {}

func (Zero) String() string    { return "zero" }
func (n Exact) String() string { return "exact:" + strconv.Itoa(int(n)) }
func (n More) String() string  { return "more:" + strconv.Itoa(int(n)) }
func (n Less) String() string  { return "less:" + strconv.Itoa(int(n)) }

// Count returns the numeric bound of c, or 0 for Zero.
func Count(c Cardinality) int {
	switch c := c.(type) {
	case Exact:
		return int(c)
	case More:
		return int(c)
	case Less:
		return int(c)
	default:
		return 0
	}
}

// ParseCardinality parses the form produced by Cardinality.String:
// "zero", "exact:N", "more:N" or "less:N". The empty string is Zero.
func ParseCardinality(s string) (Cardinality, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "zero" {
		return Zero{}, nil
	}
	kind, count, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("invalid cardinality %q: missing count", s)
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return nil, fmt.Errorf("invalid cardinality %q: %w", s, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid cardinality %q: negative count", s)
	}
	switch kind {
	case "exact":
		return Exact(n), nil
	case "more":
		return More(n), nil
	case "less":
		return Less(n), nil
	}
	return nil, fmt.Errorf("invalid cardinality %q: unknown rule %q", s, kind)
}
