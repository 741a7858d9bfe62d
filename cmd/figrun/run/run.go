// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
	"github.com/matt-FFFFFF/figrun/internal/launcher"
	"github.com/matt-FFFFFF/figrun/internal/tui"
	"github.com/matt-FFFFFF/figrun/internal/workerset"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag                 = "file"
	outFlag                  = "out"
	noOutputStdErrFlag       = "no-output-stderr"
	outputStdOutFlag         = "output-stdout"
	outputSuccessDetailsFlag = "output-success-details"
	tuiFlag                  = "tui"
	strictFlag               = "strict"
	graceFlag                = "grace"
	cliExitStr               = ""
	interruptedExitCode      = 2
)

// RunCmd launches every worker in a worker set and waits for all of them.
var RunCmd = &cli.Command{
	Name: "run",
	Description: `Launch every worker in a worker set in parallel and wait for all of them
to finish. With no --file flag the embedded Cholla figure set is used.

Worker set URLs use Hashicorp's go-getter syntax, which allows for fetching
files from various sources. See https://github.com/hashicorp/go-getter.

A worker that cannot be started is reported but never prevents the remaining
workers from running. The run always waits for every launched worker.`,
	Arguments: []cli.Argument{},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage: "Specify the URL of the worker set YAML file to run. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
				"Defaults to the embedded Cholla figure set.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      outFlag,
			Usage:     "Specify the output file name for saved results",
			TakesFile: true,
			Value:     "",
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:        outputSuccessDetailsFlag,
			Aliases:     []string{"success"},
			Usage:       "Include successful results in the output",
			TakesFile:   false,
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        noOutputStdErrFlag,
			Aliases:     []string{"no-stderr"},
			Usage:       "Exclude stderr output in the results",
			Value:       false,
			DefaultText: "false",
			TakesFile:   false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        outputStdOutFlag,
			Aliases:     []string{"stdout"},
			Usage:       "Include stdout output in the results",
			TakesFile:   false,
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"t", "interactive"},
			Usage:       "Run with interactive Terminal User Interface (TUI) showing real-time progress",
			Value:       false,
			DefaultText: "false",
			TakesFile:   false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        strictFlag,
			Usage:       "Exit non-zero when any worker fails or cannot be started",
			Value:       false,
			DefaultText: "false",
			TakesFile:   false,
			OnlyOnce:    true,
		},
		&cli.DurationFlag{
			Name: graceFlag,
			Usage: "Set how long workers get between SIGTERM and SIGKILL " +
				"when the run is interrupted.",
			Value:    launcher.DefaultGrace,
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	def, err := loadWorkerSet(ctx, cmd.String(fileFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger.Info("loaded worker set", "name", def.EffectiveName(), "workers", len(def.Workers))

	group := def.Group(ctx, cmd.Duration(graceFlag))

	var res launcher.Results

	switch cmd.Bool(tuiFlag) {
	case true:
		logger.Info("Starting interactive TUI mode...")

		buf := new(bytes.Buffer)
		// Suppress log output so it does not corrupt the display.
		tuiCtx := ctxlog.NewForTUI(ctx, buf)

		runner := tui.NewRunner(tuiCtx, group)

		var tuiErr error

		res, tuiErr = runner.Run(tuiCtx, group)

		buf.WriteTo(cmd.Writer) //nolint:errcheck // Write any buffered log output to the command writer

		if tuiErr != nil {
			logger.Error(fmt.Sprintf("TUI execution error: %s", tuiErr.Error()), "error", tuiErr.Error())
		}
	default:
		res, err = group.Run(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if outFileName := cmd.String(outFlag); outFileName != "" {
		if err := saveResults(res, outFileName); err != nil {
			logger.Error(err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		logger.Info(fmt.Sprintf("Results written to %s", outFileName))
	}

	opts := launcher.DefaultOutputOptions()
	opts.IncludeStdErr = !cmd.Bool(noOutputStdErrFlag)
	opts.IncludeStdOut = cmd.Bool(outputStdOutFlag)
	opts.ShowSuccessDetails = cmd.Bool(outputSuccessDetailsFlag)

	if err := res.WriteTextWithOptions(cmd.Writer, opts); err != nil {
		logger.Error(fmt.Sprintf("Failed to write results: %s", err.Error()))
		return cli.Exit(nil, 1)
	}

	if res.Interrupted() {
		logger.Error("The run was interrupted before every worker could finish.")
		return cli.Exit(cliExitStr, interruptedExitCode)
	}

	if res.HasFailures() {
		logger.Warn("Some workers failed. See above for details.")

		if cmd.Bool(strictFlag) {
			return cli.Exit(cliExitStr, 1)
		}
	}

	return nil
}

// loadWorkerSet resolves the worker set to run: the embedded default when url
// is empty, a plain file read when url names a local file, and a go-getter
// fetch otherwise.
func loadWorkerSet(ctx context.Context, url string) (*workerset.Definition, error) {
	if url == "" {
		return workerset.Default(), nil
	}

	fs := afero.NewOsFs()
	if ok, _ := afero.Exists(fs, url); ok {
		return workerset.Load(fs, url)
	}

	data, err := fetchWorkerSet(ctx, url)
	if err != nil {
		return nil, err
	}

	return workerset.Parse(data)
}

// saveResults writes the results in binary form for later use with show.
func saveResults(res launcher.Results, fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", fileName, err)
	}

	defer f.Close() //nolint:errcheck

	if err := res.WriteBinary(f); err != nil {
		return fmt.Errorf("failed to write results to file %s: %w", fileName, err)
	}

	return nil
}
