// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The argscan command parses token lists against argument declarations
// loaded from a TOML or YAML file and checks fixture files of expected
// parses.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argscan/pkg/argparse"
	"github.com/yeetrun/argscan/pkg/argspec"
	"github.com/yeetrun/argscan/pkg/cli"
	"github.com/yeetrun/argscan/pkg/specfile"
	"github.com/yeetrun/argscan/pkg/tui"
	"tailscale.com/util/must"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "0.1.0"

const defaultProgram = "prog"

// app holds the state shared by subcommand handlers.
type app struct {
	flags globalFlagsParsed
	// tokens are the arguments after "--", kept away from yargs so that
	// tokens such as "-h" reach the parser untouched.
	tokens []string
	cwd    string
	stdout io.Writer
	stderr io.Writer
	color  tui.Colorizer
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("argscan: ")

	c := &app{
		cwd:    must.Get(os.Getwd()),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		c.printCLIError(err)
		os.Exit(1)
	}
}

func (c *app) run(ctx context.Context, args []string) error {
	args, c.tokens = cli.SplitAtDoubleDash(args)
	flags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}
	c.flags = flags
	if f, ok := c.stdout.(*os.File); ok {
		c.color = tui.ColorizerFor(f, !flags.NoColor)
	}
	helpConfig := cli.HelpConfig()
	remaining = yargs.ApplyAliases(remaining, helpConfig)
	return yargs.RunSubcommandsWithGroups(ctx, remaining, helpConfig, globalFlagsParsed{}, c.handlers(), nil)
}

func (c *app) handlers() map[string]yargs.SubcommandHandler {
	return map[string]yargs.SubcommandHandler{
		"parse":   c.handleParse,
		"check":   c.handleCheck,
		"specs":   c.handleSpecs,
		"version": c.handleVersion,
	}
}

func (c *app) printCLIError(err error) {
	if err == nil {
		return
	}
	var failed *checkFailedError
	if errors.As(err, &failed) {
		// The report has already been printed.
		fmt.Fprintln(c.stderr, c.color.Red(err.Error()))
		return
	}
	tui.PrintError(c.stderr, c.color, err)
}

// loadRegistry resolves, loads and validates the declaration file.
func (c *app) loadRegistry() (argspec.Registry, string, error) {
	path, err := specfile.Resolve(c.flags.Spec, c.cwd)
	if err != nil {
		return argspec.Registry{}, "", err
	}
	f, err := specfile.Load(path)
	if err != nil {
		return argspec.Registry{}, "", err
	}
	if err := f.CheckRequires(version); err != nil {
		return argspec.Registry{}, "", fmt.Errorf("%s: %w", path, err)
	}
	reg, err := f.Registry()
	if err != nil {
		return argspec.Registry{}, "", fmt.Errorf("%s: %w", path, err)
	}
	c.logf("loaded %d declarations from %s", reg.Len(), path)

	program := defaultProgram
	if f.Program != "" {
		program = f.Program
	}
	if c.flags.Program != "" {
		program = c.flags.Program
	}
	return reg, program, nil
}

func (c *app) logf(format string, args ...any) {
	if c.flags.Verbose {
		log.Printf(format, args...)
	}
}

// parseOptions returns the options shared by every parse.
func (c *app) parseOptions(strict bool) []argparse.Option {
	var opts []argparse.Option
	if c.flags.Verbose {
		opts = append(opts, argparse.WithLogf(log.Printf))
	}
	if strict {
		opts = append(opts, argparse.StrictSubcommands())
	}
	return opts
}
