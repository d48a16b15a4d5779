// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argscan/pkg/argparse"
	"github.com/yeetrun/argscan/pkg/cases"
	"github.com/yeetrun/argscan/pkg/cli"
	"github.com/yeetrun/argscan/pkg/specfile"
	"github.com/yeetrun/argscan/pkg/tui"
)

type globalFlagsParsed struct {
	Spec    string `flag:"spec" help:"Declaration file (ARGSCAN_SPEC, default: nearest argscan.toml)"`
	Program string `flag:"program" help:"Program name used as the positional key"`
	NoColor bool   `flag:"no-color" help:"Disable colored output"`
	Verbose bool   `flag:"verbose" help:"Trace every token decision"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func stripCommand(args []string, name string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

func (c *app) handleParse(_ context.Context, args []string) error {
	flags, tokens, err := cli.ParseParse(stripCommand(args, "parse"))
	if err != nil {
		return err
	}
	reg, program, err := c.loadRegistry()
	if err != nil {
		return err
	}
	tokens = append(slices.Clone(tokens), c.tokens...)
	parsed, err := argparse.Parse(reg, program, tokens, c.parseOptions(flags.Strict)...)
	if err != nil {
		return err
	}
	switch flags.Format {
	case cli.FormatJSON:
		return tui.RenderJSON(c.stdout, parsed)
	case cli.FormatYAML:
		return tui.RenderYAML(c.stdout, parsed)
	default:
		return tui.RenderParsed(c.stdout, c.color, reg, parsed)
	}
}

type checkFailedError struct {
	Failed int
}

func (e *checkFailedError) Error() string {
	if e.Failed == 1 {
		return "1 case failed"
	}
	return fmt.Sprintf("%d cases failed", e.Failed)
}

func (c *app) handleCheck(ctx context.Context, args []string) error {
	flags, files, err := cli.ParseCheck(append(slices.Clone(stripCommand(args, "check")), c.tokens...))
	if err != nil {
		return err
	}
	jobs := flags.Jobs
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	reg, program, err := c.loadRegistry()
	if err != nil {
		return err
	}
	failed := 0
	for _, file := range files {
		cs, err := cases.Load(file)
		if err != nil {
			return err
		}
		c.logf("running %d cases from %s with %d jobs", len(cs), file, jobs)
		rep, err := cases.Run(ctx, reg, program, cs, jobs, c.parseOptions(false)...)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		tui.RenderReport(c.stdout, c.color, specfile.DisplayName(file), rep)
		failed += rep.Failed()
	}
	if failed > 0 {
		return &checkFailedError{Failed: failed}
	}
	return nil
}

func (c *app) handleSpecs(_ context.Context, args []string) error {
	flags, err := cli.ParseSpecs(stripCommand(args, "specs"))
	if err != nil {
		return err
	}
	reg, program, err := c.loadRegistry()
	if err != nil {
		return err
	}
	if flags.Output != "" {
		if err := specfile.Save(flags.Output, specfile.FromRegistry(reg, program)); err != nil {
			return err
		}
		c.logf("wrote %d declarations to %s", reg.Len(), flags.Output)
		return nil
	}
	if flags.Format == cli.FormatTOML {
		return specfile.Encode(c.stdout, specfile.FromRegistry(reg, program))
	}
	return tui.RenderSpecs(c.stdout, reg)
}

func (c *app) handleVersion(_ context.Context, _ []string) error {
	fmt.Fprintf(c.stdout, "argscan %s\n", version)
	return nil
}
