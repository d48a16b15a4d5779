// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"os"
	"slices"

	"github.com/yeetrun/argscan/pkg/argspec"
)

// ParseOS parses the arguments of the running process.
func ParseOS(reg argspec.Registry, opts ...Option) (*ParsedArgs, error) {
	return ParseArgs(reg, slices.Clone(os.Args), opts...)
}
