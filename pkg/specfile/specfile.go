// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package specfile loads argument declarations from TOML or YAML files.
//
//	version = 1
//	requires = ">= 0.1.0"
//	program = "demo"
//
//	[[arg]]
//	name = "verbose"
//	short = "v"
//	long = "verbose"
//
//	[[arg]]
//	name = "build"
//	kind = "subcommand"
//	params = "exact:1"
//
// Files may be zstd compressed, in which case their name ends in ".zst"
// (for example "specs.toml.zst").
package specfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/argscan/pkg/argspec"
	"gopkg.in/yaml.v3"
)

const currentVersion = 1

// Names are the file names Find looks for, in order of preference.
var Names = []string{"argscan.toml", "argscan.yaml", "argscan.yml"}

// File is the decoded form of a declaration file.
type File struct {
	Version  int    `toml:"version,omitempty" yaml:"version,omitempty"`
	Requires string `toml:"requires,omitempty" yaml:"requires,omitempty"`
	Program  string `toml:"program,omitempty" yaml:"program,omitempty"`
	Args     []Arg  `toml:"arg" yaml:"arg"`
}

// Arg is one declaration in a File.
type Arg struct {
	Name   string `toml:"name" yaml:"name"`
	Kind   string `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Short  string `toml:"short,omitempty" yaml:"short,omitempty"`
	Long   string `toml:"long,omitempty" yaml:"long,omitempty"`
	Params string `toml:"params,omitempty" yaml:"params,omitempty"`
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	rc, format, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	f, err := Decode(rc, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode decodes a File in the given format.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	if err := Unmarshal(r, format, &f); err != nil {
		return nil, err
	}
	if f.Version == 0 {
		f.Version = currentVersion
	}
	if f.Version > currentVersion {
		return nil, fmt.Errorf("unsupported version %d (max %d)", f.Version, currentVersion)
	}
	return &f, nil
}

// Unmarshal decodes r into v. Keys that do not map onto v are rejected and
// an empty YAML document leaves v untouched.
func Unmarshal(r io.Reader, format Format, v any) error {
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	return fmt.Errorf("unsupported format %v", format)
}

// Encode writes f as TOML.
func Encode(w io.Writer, f *File) error {
	return toml.NewEncoder(w).Encode(f)
}

// Registry converts the declarations into a validated registry.
func (f *File) Registry() (argspec.Registry, error) {
	var b argspec.Builder
	for i, a := range f.Args {
		spec, err := a.spec()
		if err != nil {
			return argspec.Registry{}, fmt.Errorf("arg %d (%q): %w", i, a.Name, err)
		}
		b = b.Spec(spec)
	}
	reg := b.Build()
	if err := reg.Validate(); err != nil {
		return argspec.Registry{}, err
	}
	return reg, nil
}

func (a Arg) spec() (argspec.ArgSpec, error) {
	kind, err := argspec.ParseKind(a.Kind)
	if err != nil {
		return argspec.ArgSpec{}, err
	}
	card, err := argspec.ParseCardinality(a.Params)
	if err != nil {
		return argspec.ArgSpec{}, err
	}
	spec := argspec.ArgSpec{Name: a.Name, Kind: kind, Cardinality: card}
	if kind == argspec.Subcommand {
		if a.Short != "" || a.Long != "" {
			return argspec.ArgSpec{}, errors.New("subcommands cannot have short or long forms")
		}
		return spec, nil
	}
	if a.Short != "" {
		if utf8.RuneCountInString(a.Short) != 1 {
			return argspec.ArgSpec{}, fmt.Errorf("short form %q must be a single character", a.Short)
		}
		spec.Short, _ = utf8.DecodeRuneInString(a.Short)
	}
	spec.Long = a.Long
	return spec, nil
}

// FromRegistry builds a File describing reg.
func FromRegistry(reg argspec.Registry, program string) *File {
	f := &File{Version: currentVersion, Program: program}
	for _, s := range reg.Specs() {
		a := Arg{Name: s.Name, Long: s.Long}
		if s.Kind == argspec.Subcommand {
			a.Kind = s.Kind.String()
			a.Long = ""
		} else if s.Short != 0 {
			a.Short = string(s.Short)
		}
		if c := s.Params(); c != (argspec.Zero{}) {
			a.Params = c.String()
		}
		f.Args = append(f.Args, a)
	}
	return f
}

// CheckRequires reports an error if version does not satisfy the file's
// requires constraint.
func (f *File) CheckRequires(version string) error {
	if f.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(f.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", f.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("declarations require argscan %s, running %s", f.Requires, v)
	}
	return nil
}

// Find walks up from startDir looking for one of Names. It returns
// os.ErrNotExist when none is found.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range Names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// DisplayName strips directories and compression suffixes from path.
func DisplayName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), zstdExt)
}
