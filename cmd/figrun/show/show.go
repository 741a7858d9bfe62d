// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/figrun/internal/launcher"
	"github.com/urfave/cli/v3"
)

const (
	fileArg = "file"
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrWriteResults is returned when the results cannot be written to stdout.
	ErrWriteResults = errors.New("failed to write results to stdout")
)

// ShowCmd renders results previously saved with run --out.
var ShowCmd = &cli.Command{
	Name:        "show",
	Description: "Show previously saved results.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name: fileArg,
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		file, err := os.Open(cmd.StringArg(fileArg))
		if err != nil {
			return errors.Join(ErrReadFile, err)
		}
		defer file.Close() // nolint:errcheck

		results, err := launcher.ReadBinary(file)
		if err != nil {
			return err
		}

		if err := results.WriteText(cmd.Writer); err != nil {
			return errors.Join(ErrWriteResults, err)
		}

		return nil
	},
}
