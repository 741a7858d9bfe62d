// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workerset

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/figrun/internal/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidDocument(t *testing.T) {
	doc := []byte(`
name: test-set
description: A couple of workers
common_args: ["-f"]
workers:
  - name: one
    command: python3
    args: [scripts/one.py]
  - name: two
    command: python3
    args: [scripts/two.py]
    env:
      MPLBACKEND: Agg
    working_directory: /tmp
`)

	def, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, "test-set", def.Name)
	assert.Equal(t, []string{"-f"}, def.CommonArgs)
	require.Len(t, def.Workers, 2)
	assert.Equal(t, "Agg", def.Workers[1].Env["MPLBACKEND"])
	assert.Equal(t, "/tmp", def.Workers[1].WorkingDirectory)
}

func TestParseInvalidYaml(t *testing.T) {
	_, err := Parse([]byte("workers: [unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidYaml)
}

func TestValidateEmptyCommand(t *testing.T) {
	_, err := Parse([]byte(`
workers:
  - name: broken
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestValidateDuplicateNames(t *testing.T) {
	_, err := Parse([]byte(`
workers:
  - name: same
    command: /bin/true
  - name: same
    command: /bin/false
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateWorker)
}

func TestParseEmptyWorkerList(t *testing.T) {
	def, err := Parse([]byte("name: empty\n"))
	require.NoError(t, err)
	assert.Empty(t, def.Workers)
}

func TestEffectiveNameFallsBackToCommand(t *testing.T) {
	w := &WorkerDefinition{Command: "/bin/true"}
	assert.Equal(t, "/bin/true", w.EffectiveName())

	w.Name = "truthy"
	assert.Equal(t, "truthy", w.EffectiveName())
}

func TestGroupAppendsCommonArgs(t *testing.T) {
	def := &Definition{
		Name:       "args-test",
		CommonArgs: []string{"-f"},
		Workers: []WorkerDefinition{
			{Name: "w1", Command: "python3", Args: []string{"one.py"}},
		},
	}

	group := def.Group(context.Background(), time.Second)
	require.Len(t, group.Workers, 1)

	worker, ok := group.Workers[0].(*launcher.Worker)
	require.True(t, ok)

	assert.Equal(t, "python3", worker.Path)
	assert.Equal(t, []string{"one.py", "-f"}, worker.Args)
	assert.Equal(t, time.Second, worker.Grace)
}

func TestGroupLabelFallback(t *testing.T) {
	group := (&Definition{}).Group(context.Background(), 0)
	assert.Equal(t, "worker set", group.Label)
	assert.Empty(t, group.Workers)
}
