// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/argscan/pkg/argparse"
	"github.com/yeetrun/argscan/pkg/argspec"
	"github.com/yeetrun/argscan/pkg/cases"
	"gopkg.in/yaml.v3"
)

const positionalKind = "positional"

// RenderParsed writes parsed as a table, one row per declared name in
// declaration order followed by the positional bucket.
func RenderParsed(w io.Writer, c Colorizer, reg argspec.Registry, parsed *argparse.ParsedArgs) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tAPPEARED\tPARAMS")
	seen := make(map[string]bool)
	for _, s := range reg.Specs() {
		if seen[s.Name] || s.Name == parsed.Program {
			continue
		}
		seen[s.Name] = true
		params, ok := parsed.Parameters(s.Name)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Kind, c.appeared(ok), formatParams(params))
	}
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", parsed.Program, positionalKind, c.appeared(true), formatParams(parsed.Positional()))
	return tw.Flush()
}

func (c Colorizer) appeared(ok bool) string {
	if ok {
		return c.Green("yes")
	}
	return c.Dim("no")
}

func formatParams(params []string) string {
	if len(params) == 0 {
		return "-"
	}
	quoted := make([]string, len(params))
	for i, p := range params {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(quoted, " ")
}

// RenderJSON writes parsed as indented JSON. Names that never appeared are
// null.
func RenderJSON(w io.Writer, parsed *argparse.ParsedArgs) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(parsed)
}

// RenderYAML writes parsed as YAML. Names that never appeared are null.
func RenderYAML(w io.Writer, parsed *argparse.ParsedArgs) error {
	values := make(map[string]any, len(parsed.Values))
	for name, params := range parsed.Values {
		if params == nil {
			values[name] = nil
			continue
		}
		values[name] = params
	}
	doc := struct {
		Program string         `yaml:"program"`
		Values  map[string]any `yaml:"values"`
	}{parsed.Program, values}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// RenderSpecs writes the declarations in reg as a table.
func RenderSpecs(w io.Writer, reg argspec.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSHORT\tLONG\tPARAMS")
	for _, s := range reg.Specs() {
		short, long := "-", "-"
		if s.HasShort() {
			short = "-" + string(s.Short)
		}
		if s.HasLong() {
			long = "--" + s.Long
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.Kind, short, long, s.Params())
	}
	return tw.Flush()
}

// RenderReport writes one line per case plus a summary. Failed cases are
// followed by their message and diff.
func RenderReport(w io.Writer, c Colorizer, name string, rep *cases.Report) {
	for _, res := range rep.Results {
		if res.Passed {
			fmt.Fprintf(w, "%s %s\n", c.Green("PASS"), res.Case.Name)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", c.Red("FAIL"), res.Case.Name, res.Message)
		if res.Diff != "" {
			for _, line := range strings.Split(strings.TrimRight(res.Diff, "\n"), "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
	failed := rep.Failed()
	summary := fmt.Sprintf("%s: %d passed, %d failed", name, len(rep.Results)-failed, failed)
	if failed > 0 {
		summary = c.Red(summary)
	} else {
		summary = c.Green(summary)
	}
	fmt.Fprintln(w, summary)
}

// PrintError writes err to w with a colored prefix. Parse errors get a hint
// about what was expected.
func PrintError(w io.Writer, c Colorizer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", c.Red("error:"), err)
	var arity *argparse.ArityError
	var unknown *argparse.UnknownOptionError
	switch {
	case errors.As(err, &arity):
		fmt.Fprintf(w, "%s %s takes %s parameters\n", c.Dim("hint:"), arity.Spec.Name, arity.Spec.Params())
	case errors.As(err, &unknown):
		fmt.Fprintf(w, "%s run \"argscan specs\" to list declared options\n", c.Dim("hint:"))
	}
}
