// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"github.com/yeetrun/argscan/pkg/argspec"
	"tailscale.com/types/logger"
)

// Option configures a parse.
type Option func(*options)

type options struct {
	logf   logger.Logf
	strict bool
}

// WithLogf traces every classification and capture through logf.
func WithLogf(logf logger.Logf) Option {
	return func(o *options) {
		if logf != nil {
			o.logf = logf
		}
	}
}

// StrictSubcommands makes bare tokens that match no subcommand fail with
// *UnknownSubcommandError instead of being collected as positional tokens.
func StrictSubcommands() Option {
	return func(o *options) {
		o.strict = true
	}
}

type parser struct {
	cls    *classifier
	stream tokenStream
	logf   logger.Logf
}

// Parse matches tokens against reg. The program name keys the bucket of
// positional tokens and is not itself part of tokens.
//
// On failure no result is returned: the error is one of
// *UnknownOptionError, *UnknownSubcommandError or *ArityError.
func Parse(reg argspec.Registry, program string, tokens []string, opts ...Option) (*ParsedArgs, error) {
	o := options{logf: logger.Discard}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{
		cls:    newClassifier(reg),
		stream: tokenStream{tokens: tokens},
		logf:   o.logf,
	}
	res := newParsedArgs(program, reg)

	for {
		tok, ok := p.stream.next()
		if !ok {
			break
		}
		kind, spec := p.cls.classify(tok)
		switch kind {
		case matchUnknownOption:
			p.logf("argparse: %q: unknown option", tok)
			return nil, &UnknownOptionError{Token: tok}
		case matchOption, matchSubcommand:
			params := res.Values[spec.Name]
			if params == nil {
				params = []string{}
			}
			params, err := p.consume(spec, params)
			if err != nil {
				p.logf("argparse: %q: %v", tok, err)
				return nil, err
			}
			p.logf("argparse: %q: %v %s captured %q", tok, kind, spec.Name, params)
			res.Values[spec.Name] = params
		default:
			if o.strict {
				p.logf("argparse: %q: unknown subcommand", tok)
				return nil, &UnknownSubcommandError{Token: tok}
			}
			p.logf("argparse: %q: positional", tok)
			res.Values[program] = append(res.Values[program], tok)
		}
	}
	return res, nil
}

// ParseArgs parses a full invocation whose first element is the program
// name, as in os.Args.
func ParseArgs(reg argspec.Registry, argv []string, opts ...Option) (*ParsedArgs, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyInvocation
	}
	return Parse(reg, argv[0], argv[1:], opts...)
}
