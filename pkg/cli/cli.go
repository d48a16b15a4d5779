// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli describes the argscan subcommands and parses their flags.
package cli

import (
	"fmt"
	"slices"

	"github.com/shayne/yargs"
)

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

// Output formats accepted by the parse and specs commands.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)

type ParseFlags struct {
	Format string
	Strict bool
}

type CheckFlags struct {
	Jobs int
}

type SpecsFlags struct {
	Format string
	Output string
}

type parseFlagsParsed struct {
	Format string `flag:"format" help:"Output format (table|json|yaml)"`
	Strict bool   `flag:"strict" help:"Reject bare tokens that match no subcommand"`
}

type checkFlagsParsed struct {
	Jobs int `flag:"jobs" help:"Cases evaluated concurrently (default: GOMAXPROCS)"`
}

type specsFlagsParsed struct {
	Format string `flag:"format" help:"Output format (table|toml)"`
	Output string `flag:"output" help:"Write TOML to a file instead (.toml or .toml.zst)"`
}

var commandInfos = map[string]CommandInfo{
	"parse": {
		Name:        "parse",
		Description: "Parse tokens and print what each declaration captured",
		Usage:       "[--format table|json|yaml] [--strict] -- TOKENS...",
		Examples:    []string{"argscan parse -- -v build app", "argscan parse --strict -- deploy"},
		Aliases:     []string{"p"},
	},
	"check": {
		Name:        "check",
		Description: "Run fixture files of expected parses",
		Usage:       "[--jobs N] FIXTURE...",
		Examples:    []string{"argscan check cases.yaml cases.toml.zst"},
	},
	"specs": {
		Name:        "specs",
		Description: "List the loaded declarations",
		Usage:       "[--format table|toml] [--output FILE]",
		Examples:    []string{"argscan specs", "argscan --spec argscan.yaml specs --output argscan.toml.zst"},
	},
	"version": {
		Name:        "version",
		Description: "Print the argscan version",
	},
}

func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

// HelpConfig returns the yargs help configuration for argscan.
func HelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo, len(commandInfos))
	for name, info := range commandInfos {
		subcommands[name] = toSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argscan",
			Description: "Parse command lines against declared options and subcommands.",
			Examples: []string{
				"argscan parse -- -v build app",
				"argscan --spec specs.yaml parse --format json -- -o out.txt",
				"argscan check testdata/cases.yaml",
				"argscan specs --format toml",
			},
		},
		SubCommands: subcommands,
	}
}

func toSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseParse parses the flags of the parse command. The returned args are
// the tokens to parse.
func ParseParse(args []string) (ParseFlags, []string, error) {
	parseArgs, extraArgs := SplitAtDoubleDash(args)
	parsed, err := parseFlags[parseFlagsParsed](parseArgs)
	if err != nil {
		return ParseFlags{}, nil, err
	}
	flags := ParseFlags{Format: parsed.Flags.Format, Strict: parsed.Flags.Strict}
	if err := checkFormat(flags.Format, FormatTable, FormatJSON, FormatYAML); err != nil {
		return ParseFlags{}, nil, err
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

// ParseCheck parses the flags of the check command. The returned args are
// fixture paths.
func ParseCheck(args []string) (CheckFlags, []string, error) {
	parseArgs, extraArgs := SplitAtDoubleDash(args)
	parsed, err := parseFlags[checkFlagsParsed](parseArgs)
	if err != nil {
		return CheckFlags{}, nil, err
	}
	if parsed.Flags.Jobs < 0 {
		return CheckFlags{}, nil, fmt.Errorf("--jobs must not be negative, got %d", parsed.Flags.Jobs)
	}
	flags := CheckFlags{Jobs: parsed.Flags.Jobs}
	argsOut := append(parsed.Args, extraArgs...)
	if err := RequireArgsAtLeast("check", argsOut, 1); err != nil {
		return CheckFlags{}, nil, err
	}
	return flags, argsOut, nil
}

func ParseSpecs(args []string) (SpecsFlags, error) {
	parsed, err := parseFlags[specsFlagsParsed](args)
	if err != nil {
		return SpecsFlags{}, err
	}
	flags := SpecsFlags{Format: parsed.Flags.Format, Output: parsed.Flags.Output}
	if err := checkFormat(flags.Format, FormatTable, FormatTOML); err != nil {
		return SpecsFlags{}, err
	}
	if len(parsed.Args) > 0 {
		return SpecsFlags{}, fmt.Errorf("'specs' takes no arguments, got %q", parsed.Args)
	}
	return flags, nil
}

func checkFormat(format string, allowed ...string) error {
	if format == "" || slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unknown format %q (want one of %v)", format, allowed)
}

type parsedFlags[T any] struct {
	Flags  T
	Args   []string
	Parser *yargs.Parser
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut, Parser: result.Parser}, nil
}

// SplitAtDoubleDash splits args at the first "--", dropping the separator.
func SplitAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
