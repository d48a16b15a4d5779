// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

// tokenStream is a cursor over materialized tokens with one token of
// lookahead.
type tokenStream struct {
	tokens []string
	pos    int
}

// peek returns the next token without consuming it.
func (s *tokenStream) peek() (string, bool) {
	if s.pos >= len(s.tokens) {
		return "", false
	}
	return s.tokens[s.pos], true
}

// next consumes and returns the next token.
func (s *tokenStream) next() (string, bool) {
	tok, ok := s.peek()
	if ok {
		s.pos++
	}
	return tok, ok
}
