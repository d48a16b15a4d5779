// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeetrun/argscan/pkg/codecutil"
)

// Format is a supported file encoding.
type Format int

const (
	TOML Format = iota + 1
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

const zstdExt = ".zst"

// FormatOf returns the format implied by the extension of path, ignoring a
// trailing ".zst".
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, zstdExt)))
	switch ext {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%s: unsupported file extension %q (want .toml, .yaml or .yml)", path, ext)
}

// Open opens path for reading, transparently decompressing ".zst" files,
// and reports its format.
func Open(path string) (io.ReadCloser, Format, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	if !strings.HasSuffix(path, zstdExt) {
		return f, format, nil
	}
	rc, err := codecutil.NewZstdReader(f)
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return rc, format, nil
}

// Save writes f as TOML to path, compressing it when path ends in ".zst".
func Save(path string, f *File) (err error) {
	if format, err := FormatOf(path); err != nil {
		return err
	} else if format != TOML {
		return fmt.Errorf("%s: only TOML output is supported", path)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	var w io.WriteCloser = out
	if strings.HasSuffix(path, zstdExt) {
		if w, err = codecutil.NewZstdWriter(out); err != nil {
			out.Close()
			return err
		}
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(w, f)
}

// ErrNoFile is returned by Resolve when no declaration file is configured
// or discoverable.
var ErrNoFile = errors.New("no declaration file found (use --spec, ARGSCAN_SPEC or create argscan.toml)")

// Resolve picks the declaration file to use: flagPath if set, then the
// ARGSCAN_SPEC environment variable, then Find from dir.
func Resolve(flagPath, dir string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv("ARGSCAN_SPEC"); env != "" {
		return env, nil
	}
	path, err := Find(dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoFile
	}
	return path, err
}
