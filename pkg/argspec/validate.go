// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argspec

import (
	"errors"
	"fmt"

	"tailscale.com/util/set"
)

// Validate checks the invariants the parser relies on but never enforces
// itself: unique non-empty names, options that can actually be matched,
// unambiguous short and long forms, and non-negative counts. All problems
// are reported together.
func (r Registry) Validate() error {
	var (
		errs   []error
		names  = make(set.Set[string])
		shorts = make(set.Set[rune])
		longs  = make(set.Set[string])
	)
	for i, s := range r.specs {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("declaration %d: empty name", i))
		} else if names.Contains(s.Name) {
			errs = append(errs, fmt.Errorf("duplicate name %q", s.Name))
		}
		names.Add(s.Name)

		switch s.Kind {
		case Option:
			if !s.Reachable() {
				errs = append(errs, fmt.Errorf("option %q has neither a short nor a long form", s.Name))
			}
			if s.HasShort() {
				if s.Short == '-' {
					errs = append(errs, fmt.Errorf("option %q: short form cannot be '-'", s.Name))
				}
				if shorts.Contains(s.Short) {
					errs = append(errs, fmt.Errorf("option %q: short form -%c already declared", s.Name, s.Short))
				}
				shorts.Add(s.Short)
			}
			if s.HasLong() {
				if longs.Contains(s.Long) {
					errs = append(errs, fmt.Errorf("option %q: long form --%s already declared", s.Name, s.Long))
				}
				longs.Add(s.Long)
			}
		case Subcommand:
			if len(s.Name) > 0 && s.Name[0] == '-' {
				errs = append(errs, fmt.Errorf("subcommand %q can never match: names starting with '-' are options", s.Name))
			}
		default:
			errs = append(errs, fmt.Errorf("declaration %q: unknown kind %v", s.Name, s.Kind))
		}

		if n := Count(s.Params()); n < 0 {
			errs = append(errs, fmt.Errorf("declaration %q: negative count in %v", s.Name, s.Params()))
		}
	}
	return errors.Join(errs...)
}
