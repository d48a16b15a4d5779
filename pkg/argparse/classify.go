// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"strings"
	"unicode/utf8"

	"github.com/yeetrun/argscan/pkg/argspec"
)

type matchKind int

const (
	matchPositional matchKind = iota
	matchOption
	matchSubcommand
	matchUnknownOption
)

func (k matchKind) String() string {
	switch k {
	case matchOption:
		return "option"
	case matchSubcommand:
		return "subcommand"
	case matchUnknownOption:
		return "unknown option"
	default:
		return "positional"
	}
}

// classifier looks tokens up in the two halves of a registry. Lookups
// return the first match in declaration order.
type classifier struct {
	options     []argspec.ArgSpec
	subcommands []argspec.ArgSpec
}

func newClassifier(reg argspec.Registry) *classifier {
	return &classifier{
		options:     reg.Options(),
		subcommands: reg.Subcommands(),
	}
}

func isOptionShaped(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// option matches an option-shaped token: "--word" against long forms,
// otherwise the character after "-" against short forms. Anything after
// that character is ignored, so "-vx" matches 'v'.
func (c *classifier) option(tok string) *argspec.ArgSpec {
	if long, ok := strings.CutPrefix(tok, "--"); ok {
		for i := range c.options {
			if c.options[i].HasLong() && c.options[i].Long == long {
				return &c.options[i]
			}
		}
		return nil
	}
	short, size := utf8.DecodeRuneInString(strings.TrimPrefix(tok, "-"))
	if size == 0 {
		return nil
	}
	for i := range c.options {
		if c.options[i].HasShort() && c.options[i].Short == short {
			return &c.options[i]
		}
	}
	return nil
}

func (c *classifier) subcommand(tok string) *argspec.ArgSpec {
	for i := range c.subcommands {
		if c.subcommands[i].Name == tok {
			return &c.subcommands[i]
		}
	}
	return nil
}

func (c *classifier) classify(tok string) (matchKind, *argspec.ArgSpec) {
	if isOptionShaped(tok) {
		if spec := c.option(tok); spec != nil {
			return matchOption, spec
		}
		return matchUnknownOption, nil
	}
	if spec := c.subcommand(tok); spec != nil {
		return matchSubcommand, spec
	}
	return matchPositional, nil
}

// recognized reports whether tok would start a new declaration, which is
// where greedy consumption stops. Unknown option-shaped tokens are not
// recognized and can be captured as parameters.
func (c *classifier) recognized(tok string) bool {
	kind, _ := c.classify(tok)
	return kind == matchOption || kind == matchSubcommand
}
