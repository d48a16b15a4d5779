// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"

	"github.com/yeetrun/argscan/pkg/argspec"
)

// ErrEmptyInvocation is returned by ParseArgs and ParseOS when there is not
// even a program name to parse.
var ErrEmptyInvocation = errors.New("there were no command line arguments")

// UnknownOptionError is returned when an option-shaped token matches no
// declared short or long form.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("invalid option encountered: %s", e.Token)
}

// UnknownSubcommandError is returned for a bare token that matches no
// declared subcommand. Only produced when StrictSubcommands is set;
// otherwise such tokens are positional.
type UnknownSubcommandError struct {
	Token string
}

func (e *UnknownSubcommandError) Error() string {
	return fmt.Sprintf("invalid subcommand encountered: %s", e.Token)
}

// ArityError is returned when a declaration's Cardinality is not satisfied.
type ArityError struct {
	Spec argspec.ArgSpec
	// Want is the required count: n for Exact(n), n+1 for More(n).
	Want int
	// Got is the number of usable parameters that were found.
	Got int
}

func (e *ArityError) Error() string {
	return "the number of parameters constraint is not satisfied: " + e.detail()
}

func (e *ArityError) detail() string {
	switch e.Spec.Params().(type) {
	case argspec.More:
		return fmt.Sprintf("%v expected at least %d parameters but got %d", e.Spec, e.Want, e.Got)
	default:
		return fmt.Sprintf("there are only %d parameters to supply %v with instead of %d", e.Got, e.Spec, e.Want)
	}
}
