// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argparse matches invocation tokens against an argspec.Registry in
// a single left-to-right pass.
//
// Each token is classified as an option ("-v", "--verbose"), a subcommand
// (a bare token equal to a declared subcommand name) or a positional token.
// A matched option or subcommand then captures following tokens according to
// its Cardinality, with one token of lookahead and no backtracking:
//
//   - Zero captures nothing.
//   - Exact(n) takes the next n tokens; it fails if the stream runs out or
//     if a taken token is itself a registered option or subcommand.
//   - More(n) takes tokens until the next registered option or subcommand
//     and fails unless it took more than n.
//   - Less(n) takes at most n-1 tokens, stopping early at a registered
//     option or subcommand, and never fails.
//
// Tokens that match neither an option nor a subcommand are collected under
// the program name. An option-shaped token that matches nothing aborts the
// parse with *UnknownOptionError.
//
// Basic usage:
//
//	reg := argspec.Builder{}.
//		Flag("verbose", 'v', "verbose").
//		Subcommand("build", argspec.Exact(1)).
//		Build()
//
//	res, err := argparse.ParseOS(reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if target, ok := res.Parameters("build"); ok {
//	    fmt.Println("building", target[0])
//	}
//
// Not supported: "--name=value", merged short flags ("-abc"), nested
// subcommands and cross-argument constraints.
package argparse
