// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workers

import (
	"context"
	"strings"

	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
	"github.com/matt-FFFFFF/figrun/internal/workerset"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag = "file"
)

// WorkersCmd lists the effective worker set without running anything.
var WorkersCmd = &cli.Command{
	Name: "workers",
	Description: `List the workers that a run would launch, with the arguments each one
would receive after the set-wide common args are appended.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Aliases:  []string{"f"},
			Usage:    "Specify the worker set YAML file. Defaults to the embedded Cholla figure set.",
			OnlyOnce: true,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		var (
			def *workerset.Definition
			err error
		)

		if path := cmd.String(fileFlag); path != "" {
			def, err = workerset.Load(afero.NewOsFs(), path)
			if err != nil {
				return err
			}
		} else {
			def = workerset.Default()
		}

		ctxlog.Debug(ctx, "listing worker set", "name", def.EffectiveName())

		table := tablewriter.NewWriter(cmd.Writer)
		table.Header("Name", "Command", "Args", "Working Directory")

		for _, w := range def.Workers {
			args := strings.Join(append(append([]string{}, w.Args...), def.CommonArgs...), " ")

			table.Append([]string{w.EffectiveName(), w.Command, args, w.WorkingDirectory})
		}

		return table.Render()
	},
}
