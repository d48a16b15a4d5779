// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"

	"github.com/yeetrun/argscan/pkg/argspec"
)

// consume captures the parameters of spec from the stream and appends them
// to params.
func (p *parser) consume(spec *argspec.ArgSpec, params []string) ([]string, error) {
	switch c := spec.Params().(type) {
	case argspec.Zero:
		return params, nil

	case argspec.Exact:
		for got := 0; got < int(c); got++ {
			tok, ok := p.stream.next()
			if !ok || p.taken(tok) {
				return nil, &ArityError{Spec: *spec, Want: int(c), Got: got}
			}
			params = append(params, tok)
		}
		return params, nil

	case argspec.More:
		got := 0
		for {
			tok, ok := p.stream.peek()
			if !ok || p.cls.recognized(tok) {
				break
			}
			p.stream.next()
			params = append(params, tok)
			got++
		}
		if got <= int(c) {
			return nil, &ArityError{Spec: *spec, Want: int(c) + 1, Got: got}
		}
		return params, nil

	case argspec.Less:
		for i := 0; i < int(c)-1; i++ {
			tok, ok := p.stream.peek()
			if !ok || p.cls.recognized(tok) {
				break
			}
			p.stream.next()
			params = append(params, tok)
		}
		return params, nil

	default:
		return nil, fmt.Errorf("argparse: unsupported cardinality %T for %v", c, *spec)
	}
}

// taken reports whether a token consumed for an Exact run is a registered
// option or a subcommand name.
func (p *parser) taken(tok string) bool {
	if isOptionShaped(tok) && p.cls.option(tok) != nil {
		return true
	}
	return p.cls.subcommand(tok) != nil
}
