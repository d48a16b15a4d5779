// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Colorizer wraps text in terminal colors when Enabled.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled only if enabled is true,
// NO_COLOR is unset and TERM names a real terminal.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

var isTerminalFn = term.IsTerminal

// ColorizerFor is NewColorizer with the additional requirement that f is a
// terminal.
func ColorizerFor(f *os.File, enabled bool) Colorizer {
	if f == nil || !isTerminalFn(int(f.Fd())) {
		return Colorizer{}
	}
	return NewColorizer(enabled)
}

// Wrap renders text with the given attributes.
func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}

func (c Colorizer) Red(text string) string    { return c.Wrap(text, color.FgRed) }
func (c Colorizer) Green(text string) string  { return c.Wrap(text, color.FgGreen) }
func (c Colorizer) Yellow(text string) string { return c.Wrap(text, color.FgYellow) }
func (c Colorizer) Dim(text string) string    { return c.Wrap(text, color.FgHiBlack) }
func (c Colorizer) Bold(text string) string   { return c.Wrap(text, color.Bold) }
