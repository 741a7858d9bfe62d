// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the figrun command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/figrun"
	"github.com/matt-FFFFFF/figrun/cmd/figrun/run"
	"github.com/matt-FFFFFF/figrun/cmd/figrun/show"
	"github.com/matt-FFFFFF/figrun/cmd/figrun/workers"
	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
	"github.com/matt-FFFFFF/figrun/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const interruptedExitCode = 2

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		show.ShowCmd,
		workers.WorkersCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "figrun",
	Description: `Figrun launches a set of independent worker processes in parallel and
waits for every one of them to finish. It was built to regenerate the Cholla
MHD paper figures, where each plotting script runs for a long time and none
depends on any other, but it will run any worker set described in YAML.

A worker that fails to start never stops the rest of the set. Interrupting
figrun terminates every worker's whole process group, so no orphans survive.`,
	Usage:     "figrun run",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", figrun.Version, figrun.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	// A cancelled context means the run was interrupted, which gets its own
	// exit code so callers can tell it apart from worker failures.
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("run interrupted", "error", ctx.Err())
		os.Exit(interruptedExitCode)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
