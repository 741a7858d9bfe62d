// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workerset

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

//go:embed default.yaml
var defaultSet []byte

// ErrReadWorkerSet is returned when the worker set file cannot be read.
var ErrReadWorkerSet = errors.New("failed to read worker set file")

// Load reads and parses a worker set document from the given filesystem.
func Load(fs afero.Fs, path string) (*Definition, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadWorkerSet, path, err)
	}

	return Parse(data)
}

// Default returns the embedded worker set: the Cholla figure-generation
// scripts, each invoked with -f.
func Default() *Definition {
	def, err := Parse(defaultSet)
	if err != nil {
		// The embedded document is part of the build; failing to parse it is
		// a programming error, not a runtime condition.
		panic(err)
	}

	return def
}
