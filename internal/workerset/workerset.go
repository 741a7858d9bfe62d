// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workerset defines the YAML format that describes which workers the
// launcher runs, and turns a parsed definition into a launcher.Group.
//
// A worker set is a flat list: there is no nesting, no ordering and no
// dependency between entries. common_args are appended to every worker's own
// arguments, which is how the conventional figure flag (-f) reaches each
// plotting script.
package workerset

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
	"github.com/matt-FFFFFF/figrun/internal/launcher"
)

var (
	// ErrInvalidYaml is returned when the worker set document cannot be parsed.
	ErrInvalidYaml = errors.New("invalid worker set YAML")
	// ErrEmptyCommand is returned when a worker has no command.
	ErrEmptyCommand = errors.New("worker has an empty command")
	// ErrDuplicateWorker is returned when two workers share a name.
	ErrDuplicateWorker = errors.New("duplicate worker name")
)

// Definition is the root of a worker set document.
type Definition struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	CommonArgs  []string           `yaml:"common_args"`
	Workers     []WorkerDefinition `yaml:"workers"`
}

// WorkerDefinition describes one worker command.
type WorkerDefinition struct {
	Name             string            `yaml:"name"`
	Command          string            `yaml:"command"`
	Args             []string          `yaml:"args"`
	Env              map[string]string `yaml:"env"`
	WorkingDirectory string            `yaml:"working_directory"`
}

// Parse decodes and validates a worker set document.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Join(ErrInvalidYaml, err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate checks the definition for mistakes that would only surface as
// confusing start failures later. An empty worker list is allowed; launching
// nothing and waiting for nothing is a valid, if pointless, run.
func (d *Definition) Validate() error {
	seen := make(map[string]struct{}, len(d.Workers))

	for i, w := range d.Workers {
		if w.Command == "" {
			return fmt.Errorf("%w: worker %d (%q)", ErrEmptyCommand, i, w.Name)
		}

		name := w.EffectiveName()
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateWorker, name)
		}

		seen[name] = struct{}{}
	}

	return nil
}

// EffectiveName returns the set's name, falling back to a generic label.
func (d *Definition) EffectiveName() string {
	if d.Name != "" {
		return d.Name
	}

	return "worker set"
}

// EffectiveName returns the worker's name, falling back to its command.
func (w *WorkerDefinition) EffectiveName() string {
	if w.Name != "" {
		return w.Name
	}

	return w.Command
}

// Group builds a launcher.Group from the definition. Each worker gets the
// set-wide common args appended after its own, and the given termination
// grace period.
func (d *Definition) Group(ctx context.Context, grace time.Duration) *launcher.Group {
	workers := make([]launcher.Runnable, 0, len(d.Workers))

	for _, w := range d.Workers {
		args := slices.Concat(w.Args, d.CommonArgs)

		ctxlog.Debug(ctx, "adding worker to group",
			"worker", w.EffectiveName(), "command", w.Command, "args", args)

		workers = append(workers, &launcher.Worker{
			Label: w.EffectiveName(),
			Path:  w.Command,
			Args:  args,
			Env:   w.Env,
			Cwd:   w.WorkingDirectory,
			Grace: grace,
		})
	}

	return launcher.NewGroup(d.EffectiveName(), workers...)
}
