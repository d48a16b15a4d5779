// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argscan/pkg/argspec"
	"github.com/yeetrun/argscan/pkg/codecutil"
)

const demoTOML = `
requires = ">= 0.1.0"
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

const demoYAML = `
requires: ">= 0.1.0"
program: demo
arg:
  - name: verbose
    short: v
    long: verbose
  - name: output
    short: o
    params: exact:1
  - name: build
    kind: subcommand
    params: more:0
`

func demoRegistry() argspec.Registry {
	return argspec.Builder{}.
		Flag("verbose", 'v', "verbose").
		ShortOption("output", 'o', argspec.Exact(1)).
		Subcommand("build", argspec.More(0)).
		Build()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "toml", file: "argscan.toml", content: demoTOML},
		{name: "yaml", file: "argscan.yaml", content: demoYAML},
		{name: "yml", file: "argscan.yml", content: demoYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			f, err := Load(path)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if f.Version != 1 {
				t.Fatalf("Version = %d, want 1", f.Version)
			}
			if f.Program != "demo" {
				t.Fatalf("Program = %q, want demo", f.Program)
			}
			reg, err := f.Registry()
			if err != nil {
				t.Fatalf("Registry error: %v", err)
			}
			if diff := cmp.Diff(demoRegistry().Specs(), reg.Specs()); diff != "" {
				t.Fatalf("specs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadZstd(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	w, err := codecutil.NewZstdWriter(&buf)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	if _, err := w.Write([]byte(demoTOML)); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	path := writeFile(t, dir, "specs.toml.zst", buf.String())

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(f.Args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(f.Args))
	}
	if got := DisplayName(path); got != "specs.toml" {
		t.Fatalf("DisplayName = %q, want specs.toml", got)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.toml", "out.toml.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, FromRegistry(demoRegistry(), "demo")); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			f, err := Load(path)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			reg, err := f.Registry()
			if err != nil {
				t.Fatalf("Registry error: %v", err)
			}
			if diff := cmp.Diff(demoRegistry().Specs(), reg.Specs()); diff != "" {
				t.Fatalf("specs mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if err := Save(filepath.Join(dir, "out.yaml"), &File{}); err == nil {
		t.Fatal("Save to .yaml succeeded, want error")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "extension", file: "specs.json", content: "{}", wantErr: "unsupported file extension"},
		{name: "version", file: "v.toml", content: "version = 2\n", wantErr: "unsupported version 2"},
		{name: "unknown toml key", file: "k.toml", content: "colour = true\n", wantErr: "unknown key \"colour\""},
		{name: "unknown yaml key", file: "k.yaml", content: "colour: true\n", wantErr: "colour"},
		{name: "syntax", file: "s.toml", content: "[[arg]\n", wantErr: "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	reg, err := f.Registry()
	if err != nil {
		t.Fatalf("Registry error: %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("Len = %d, want 0", reg.Len())
	}
}

func TestRegistryErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []Arg
		wantErr string
	}{
		{name: "long short", args: []Arg{{Name: "x", Short: "xy"}}, wantErr: "single character"},
		{name: "bad kind", args: []Arg{{Name: "x", Kind: "flag", Long: "x"}}, wantErr: "flag"},
		{name: "bad params", args: []Arg{{Name: "x", Long: "x", Params: "some:1"}}, wantErr: "unknown rule"},
		{name: "subcommand forms", args: []Arg{{Name: "x", Kind: "subcommand", Short: "x"}}, wantErr: "subcommands cannot have"},
		{name: "unreachable", args: []Arg{{Name: "x"}}, wantErr: "neither a short nor a long form"},
		{name: "duplicate", args: []Arg{{Name: "x", Long: "x"}, {Name: "x", Long: "y"}}, wantErr: "duplicate name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Args: tt.args}
			_, err := f.Registry()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Registry error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMultibyteShort(t *testing.T) {
	f := &File{Args: []Arg{{Name: "lambda", Short: "λ"}}}
	reg, err := f.Registry()
	if err != nil {
		t.Fatalf("Registry error: %v", err)
	}
	if got := reg.Specs()[0].Short; got != 'λ' {
		t.Fatalf("Short = %q, want 'λ'", got)
	}
}

func TestCheckRequires(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		version  string
		wantErr  string
	}{
		{name: "none", version: "0.0.1"},
		{name: "satisfied", requires: ">= 0.1.0", version: "0.2.0"},
		{name: "unsatisfied", requires: ">= 1.0.0", version: "0.2.0", wantErr: "require argscan >= 1.0.0"},
		{name: "bad constraint", requires: "= banana", version: "0.2.0", wantErr: "invalid requires constraint"},
		{name: "bad version", requires: ">= 0.1.0", version: "dev", wantErr: "invalid version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&File{Requires: tt.requires}).CheckRequires(tt.version)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("CheckRequires error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("CheckRequires error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "argscan.toml", demoTOML)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got != path {
		t.Fatalf("Find = %q, want %q", got, path)
	}
}

func TestFindNotExist(t *testing.T) {
	dir := t.TempDir()
	// Guard against a stray argscan.toml above the temp dir.
	if p, err := Find(filepath.Dir(dir)); err == nil {
		t.Skipf("found %s above temp dir", p)
	}
	if _, err := Find(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Find error = %v, want os.ErrNotExist", err)
	}
}

func TestResolveOrder(t *testing.T) {
	dir := t.TempDir()
	found := writeFile(t, dir, "argscan.toml", demoTOML)

	t.Setenv("ARGSCAN_SPEC", "")
	if got, err := Resolve("", dir); err != nil || got != found {
		t.Fatalf("Resolve discovery = %q, %v; want %q", got, err, found)
	}
	t.Setenv("ARGSCAN_SPEC", "/env/specs.toml")
	if got, _ := Resolve("", dir); got != "/env/specs.toml" {
		t.Fatalf("Resolve env = %q, want /env/specs.toml", got)
	}
	if got, _ := Resolve("/flag/specs.yaml", dir); got != "/flag/specs.yaml" {
		t.Fatalf("Resolve flag = %q, want /flag/specs.yaml", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	reg := demoRegistry()
	var buf bytes.Buffer
	if err := Encode(&buf, FromRegistry(reg, "demo")); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	f, err := Decode(&buf, TOML)
	if err != nil {
		t.Fatalf("Decode error: %v\n%s", err, buf.String())
	}
	got, err := f.Registry()
	if err != nil {
		t.Fatalf("Registry error: %v", err)
	}
	if diff := cmp.Diff(reg.Specs(), got.Specs()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if f.Program != "demo" {
		t.Fatalf("Program = %q, want demo", f.Program)
	}
}
