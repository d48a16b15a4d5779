// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The demo program declares its arguments with argspec.Builder and prints
// what each declaration captured.
//
//	$ demo -v --output out.txt build app lib stray
//	verbose: []
//	output: [out.txt]
//	build: [app lib stray]
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/yeetrun/argscan/pkg/argparse"
	"github.com/yeetrun/argscan/pkg/argspec"
)

func main() {
	log.SetFlags(0)

	reg := argspec.Builder{}.
		Flag("verbose", 'v', "verbose").
		Option("output", 'o', "output", argspec.Exact(1)).
		LongOption("tags", "tags", argspec.Less(4)).
		Subcommand("build", argspec.More(0)).
		Subcommand("clean", argspec.Zero{}).
		Build()
	if err := reg.Validate(); err != nil {
		log.Fatal(err)
	}

	args, err := argparse.ParseOS(reg)
	if err != nil {
		var arity *argparse.ArityError
		if errors.As(err, &arity) {
			log.Fatalf("%v\nusage: %v takes %v parameters", err, arity.Spec, arity.Spec.Params())
		}
		log.Fatal(err)
	}

	for _, s := range reg.Specs() {
		if params, ok := args.Parameters(s.Name); ok {
			fmt.Printf("%s: %v\n", s.Name, params)
		}
	}
	if pos := args.Positional(); len(pos) > 0 {
		fmt.Fprintf(os.Stderr, "ignored: %v\n", pos)
	}
}
