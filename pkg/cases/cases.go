// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cases checks a registry against fixture files of expected parses.
//
//	[[case]]
//	name = "build with target"
//	args = ["-v", "build", "app"]
//	want = { verbose = [], build = ["app"] }
//
//	[[case]]
//	name = "unknown flag"
//	args = ["-z"]
//	error = "unknown_option"
package cases

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argscan/pkg/argparse"
	"github.com/yeetrun/argscan/pkg/argspec"
	"github.com/yeetrun/argscan/pkg/specfile"
	"golang.org/x/sync/errgroup"
	"tailscale.com/util/mak"
)

// Error kinds reported by ErrorKind and accepted in Case.Error.
const (
	KindUnknownOption     = "unknown_option"
	KindUnknownSubcommand = "unknown_subcommand"
	KindArity             = "arity"
	KindEmptyInvocation   = "empty_invocation"
	KindOther             = "other"

	// KindOK is the outcome of a parse that succeeded.
	KindOK = "ok"
)

var knownKinds = []string{KindUnknownOption, KindUnknownSubcommand, KindArity, KindEmptyInvocation}

// Case is one expected parse.
type Case struct {
	Name string   `toml:"name" yaml:"name"`
	Args []string `toml:"args" yaml:"args"`
	// Program overrides the program name passed to Run.
	Program string `toml:"program,omitempty" yaml:"program,omitempty"`
	// Raw means Args is the full invocation including the program name.
	Raw bool `toml:"raw,omitempty" yaml:"raw,omitempty"`
	// Want lists expected parameters by name. Declared names that are
	// missing or null are expected not to appear; a missing program key
	// expects no positional tokens.
	Want map[string][]string `toml:"want,omitempty" yaml:"want,omitempty"`
	// Error is the expected error kind. When set, Want is ignored.
	Error  string `toml:"error,omitempty" yaml:"error,omitempty"`
	Strict bool   `toml:"strict,omitempty" yaml:"strict,omitempty"`
}

type fixture struct {
	Cases []Case `toml:"case" yaml:"case"`
}

// Load reads the cases in the fixture file at path.
func Load(path string) ([]Case, error) {
	rc, format, err := specfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var fx fixture
	if err := specfile.Unmarshal(rc, format, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i := range fx.Cases {
		c := &fx.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		if c.Error != "" && !slices.Contains(knownKinds, c.Error) {
			return nil, fmt.Errorf("%s: %s: unknown error kind %q", path, c.Name, c.Error)
		}
	}
	return fx.Cases, nil
}

// ErrorKind classifies an error returned by the argparse package. It
// returns "" for a nil error.
func ErrorKind(err error) string {
	var (
		unknownOpt *argparse.UnknownOptionError
		unknownSub *argparse.UnknownSubcommandError
		arity      *argparse.ArityError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unknownOpt):
		return KindUnknownOption
	case errors.As(err, &unknownSub):
		return KindUnknownSubcommand
	case errors.As(err, &arity):
		return KindArity
	case errors.Is(err, argparse.ErrEmptyInvocation):
		return KindEmptyInvocation
	}
	return KindOther
}

// Result is the outcome of a single Case.
type Result struct {
	Case Case
	// Outcome is KindOK or the ErrorKind of the parse error.
	Outcome string
	// Err is the parse error, if any.
	Err    error
	Passed bool
	// Message summarizes why the case failed.
	Message string
	// Diff is the cmp.Diff of expected and actual values (-want +got).
	Diff string
}

// Report holds the results of Run in case order.
type Report struct {
	Results []Result
	// Outcomes counts results by Outcome.
	Outcomes map[string]int
}

// Failed returns the number of failed cases.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// Run evaluates cases against reg with at most limit parses in flight.
// A limit <= 0 means no limit. program is used for cases that do not set
// their own. opts apply to every parse.
func Run(ctx context.Context, reg argspec.Registry, program string, cases []Case, limit int, opts ...argparse.Option) (*Report, error) {
	if limit <= 0 {
		limit = -1
	}
	results := make([]Result, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = evaluate(reg, program, c, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rep := &Report{Results: results}
	for _, res := range results {
		mak.Set(&rep.Outcomes, res.Outcome, rep.Outcomes[res.Outcome]+1)
	}
	return rep, nil
}

func evaluate(reg argspec.Registry, program string, c Case, opts []argparse.Option) Result {
	if c.Program != "" {
		program = c.Program
	}
	argv := slices.Clone(c.Args)
	if !c.Raw {
		argv = append([]string{program}, argv...)
	}
	if c.Strict {
		opts = append(slices.Clip(opts), argparse.StrictSubcommands())
	}

	got, err := argparse.ParseArgs(reg, argv, opts...)
	res := Result{Case: c, Err: err, Outcome: KindOK}
	if err != nil {
		res.Outcome = ErrorKind(err)
	}

	switch {
	case c.Error != "":
		switch {
		case err == nil:
			res.Message = fmt.Sprintf("expected %s error, parse succeeded", c.Error)
		case res.Outcome != c.Error:
			res.Message = fmt.Sprintf("expected %s error, got %s: %v", c.Error, res.Outcome, err)
		default:
			res.Passed = true
		}
	case err != nil:
		res.Message = fmt.Sprintf("unexpected error: %v", err)
	default:
		if diff := cmp.Diff(c.expected(reg, got.Program), got.Values); diff != "" {
			res.Message = "parsed values differ"
			res.Diff = diff
		} else {
			res.Passed = true
		}
	}
	return res
}

// expected fills in the values c does not mention, using the same layout
// as a parse result.
func (c Case) expected(reg argspec.Registry, program string) map[string][]string {
	want := make(map[string][]string, reg.Len()+1)
	for _, s := range reg.Specs() {
		want[s.Name] = nil
	}
	want[program] = []string{}
	for name, params := range c.Want {
		want[name] = params
	}
	return want
}
