// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/yeetrun/argscan/pkg/argparse"
)

const testSpec = `
program = "demo"

[[arg]]
name = "verbose"
short = "v"
long = "verbose"

[[arg]]
name = "output"
short = "o"
params = "exact:1"

[[arg]]
name = "build"
kind = "subcommand"
params = "more:0"
`

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantSpec    string
		wantVerbose bool
		wantOut     []string
	}{
		{
			name:     "consumes separate value",
			args:     []string{"--spec", "a.toml", "parse"},
			wantSpec: "a.toml",
			wantOut:  []string{"parse"},
		},
		{
			name:     "consumes equals value after command",
			args:     []string{"specs", "--spec=a.yaml"},
			wantSpec: "a.yaml",
			wantOut:  []string{"specs"},
		},
		{
			name:        "bool flag does not consume",
			args:        []string{"--verbose", "check", "cases.yaml"},
			wantVerbose: true,
			wantOut:     []string{"check", "cases.yaml"},
		},
		{
			name:    "command flags are preserved",
			args:    []string{"parse", "--format", "json"},
			wantOut: []string{"parse", "--format", "json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, out, err := parseGlobalFlags(tt.args)
			if err != nil {
				t.Fatalf("parseGlobalFlags error: %v", err)
			}
			if flags.Spec != tt.wantSpec {
				t.Fatalf("Spec = %q, want %q", flags.Spec, tt.wantSpec)
			}
			if flags.Verbose != tt.wantVerbose {
				t.Fatalf("Verbose = %v, want %v", flags.Verbose, tt.wantVerbose)
			}
			if !reflect.DeepEqual(out, tt.wantOut) {
				t.Fatalf("out = %#v, want %#v", out, tt.wantOut)
			}
		})
	}
}

type testCLI struct {
	*app
	out *bytes.Buffer
	dir string
}

func newTestCLI(t *testing.T) testCLI {
	t.Helper()
	t.Setenv("ARGSCAN_SPEC", "")
	dir := t.TempDir()
	writeTestFile(t, dir, "argscan.toml", testSpec)
	out := new(bytes.Buffer)
	return testCLI{
		app: &app{cwd: dir, stdout: out, stderr: new(bytes.Buffer)},
		out: out,
		dir: dir,
	}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunParseTable(t *testing.T) {
	c := newTestCLI(t)
	if err := c.run(context.Background(), []string{"parse", "--", "-v", "build", "app"}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, want := range []string{"verbose", "\"app\"", "demo", "positional"} {
		if !strings.Contains(c.out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, c.out.String())
		}
	}
}

func TestRunParseJSONWithProgramOverride(t *testing.T) {
	c := newTestCLI(t)
	args := []string{"--program", "tool", "parse", "--format", "json", "--", "-o", "out.txt", "extra"}
	if err := c.run(context.Background(), args); err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, want := range []string{`"program": "tool"`, `"tool": [`, `"extra"`, `"verbose": null`} {
		if !strings.Contains(c.out.String(), want) {
			t.Fatalf("output missing %s:\n%s", want, c.out.String())
		}
	}
}

func TestRunParseHelpTokenReachesParser(t *testing.T) {
	c := newTestCLI(t)
	err := c.run(context.Background(), []string{"parse", "--", "-h"})
	var unknown *argparse.UnknownOptionError
	if !errors.As(err, &unknown) || unknown.Token != "-h" {
		t.Fatalf("run error = %v, want UnknownOptionError for -h", err)
	}
}

func TestRunParseStrict(t *testing.T) {
	c := newTestCLI(t)
	err := c.run(context.Background(), []string{"parse", "--strict", "--", "deploy"})
	var unknown *argparse.UnknownSubcommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("run error = %v, want UnknownSubcommandError", err)
	}
}

func TestRunParseUnknownFormat(t *testing.T) {
	c := newTestCLI(t)
	err := c.run(context.Background(), []string{"parse", "--format", "xml", "--", "x"})
	if err == nil || !strings.Contains(err.Error(), `unknown format "xml"`) {
		t.Fatalf("run error = %v, want unknown format", err)
	}
}

func TestRunSpecFlagAndEnv(t *testing.T) {
	c := newTestCLI(t)
	other := t.TempDir()
	path := writeTestFile(t, other, "other.yaml", "arg:\n  - name: quiet\n    short: q\n")

	t.Setenv("ARGSCAN_SPEC", path)
	if err := c.run(context.Background(), []string{"specs"}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(c.out.String(), "quiet") {
		t.Fatalf("env spec not used:\n%s", c.out.String())
	}

	c.out.Reset()
	flagPath := filepath.Join(c.dir, "argscan.toml")
	if err := c.run(context.Background(), []string{"--spec", flagPath, "specs"}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(c.out.String(), "verbose") || strings.Contains(c.out.String(), "quiet") {
		t.Fatalf("--spec did not win over ARGSCAN_SPEC:\n%s", c.out.String())
	}
}

func TestRunSpecsTOML(t *testing.T) {
	c := newTestCLI(t)
	if err := c.run(context.Background(), []string{"specs", "--format", "toml"}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, want := range []string{`program = "demo"`, `name = "build"`, `params = "exact:1"`} {
		if !strings.Contains(c.out.String(), want) {
			t.Fatalf("output missing %s:\n%s", want, c.out.String())
		}
	}
}

func TestRunSpecsOutput(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(c.dir, "copy.toml.zst")
	if err := c.run(context.Background(), []string{"specs", "--output", out}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	c.out.Reset()
	if err := c.run(context.Background(), []string{"--spec", out, "specs"}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(c.out.String(), "exact:1") {
		t.Fatalf("compressed copy not readable:\n%s", c.out.String())
	}
}

func TestRunCheck(t *testing.T) {
	c := newTestCLI(t)
	pass := writeTestFile(t, c.dir, "pass.yaml", `
case:
  - name: build
    args: [build, app]
    want:
      build: [app]
`)
	fail := writeTestFile(t, c.dir, "fail.yaml", `
case:
  - name: wrong
    args: [-v]
    error: arity
`)

	if err := c.run(context.Background(), []string{"check", "--jobs", "2", pass}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(c.out.String(), "PASS build") {
		t.Fatalf("output missing PASS line:\n%s", c.out.String())
	}

	c.out.Reset()
	err := c.run(context.Background(), []string{"check", pass, fail})
	var failed *checkFailedError
	if !errors.As(err, &failed) || failed.Failed != 1 {
		t.Fatalf("run error = %v, want checkFailedError{1}", err)
	}
	if !strings.Contains(c.out.String(), "FAIL wrong: expected arity error, parse succeeded") {
		t.Fatalf("output missing FAIL line:\n%s", c.out.String())
	}
}

func TestRunCheckRequiresFixture(t *testing.T) {
	c := newTestCLI(t)
	err := c.run(context.Background(), []string{"check"})
	if err == nil || !strings.Contains(err.Error(), "'check' requires at least 1 argument(s)") {
		t.Fatalf("run error = %v, want missing fixture error", err)
	}
}

func TestRunRequiresConstraint(t *testing.T) {
	c := newTestCLI(t)
	path := writeTestFile(t, c.dir, "future.toml", "requires = \">= 99.0.0\"\n")
	err := c.run(context.Background(), []string{"--spec", path, "specs"})
	if err == nil || !strings.Contains(err.Error(), "require argscan >= 99.0.0") {
		t.Fatalf("run error = %v, want requires error", err)
	}
}

func TestRunNoSpecFound(t *testing.T) {
	t.Setenv("ARGSCAN_SPEC", "")
	dir := t.TempDir()
	c := &app{cwd: dir, stdout: new(bytes.Buffer), stderr: new(bytes.Buffer)}
	err := c.run(context.Background(), []string{"specs"})
	if err == nil {
		t.Skip("an argscan.toml exists above the temp dir")
	}
	if !strings.Contains(err.Error(), "no declaration file found") {
		t.Fatalf("run error = %v, want no declaration file", err)
	}
}

func TestRunVersion(t *testing.T) {
	c := newTestCLI(t)
	if err := c.run(context.Background(), []string{"version"}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got, want := c.out.String(), "argscan "+version+"\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestPrintCLIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "check failed", err: &checkFailedError{Failed: 2}, want: "2 cases failed\n"},
		{name: "parse error", err: &argparse.UnknownOptionError{Token: "-z"}, want: "error: invalid option encountered: -z\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := &app{stderr: &buf}
			c.printCLIError(tt.err)
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Fatalf("printCLIError = %q, want prefix %q", buf.String(), tt.want)
			}
		})
	}
}
