// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/figrun/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelSeedsPendingRows(t *testing.T) {
	model := NewModel(context.Background(), []string{"alpha", "beta"})

	require.Len(t, model.rows, 2)
	assert.Equal(t, "alpha", model.rows[0].name)
	assert.Equal(t, RowPending, model.rows[0].status)
	assert.Equal(t, RowPending, model.rows[1].status)
}

func TestProcessEventLifecycle(t *testing.T) {
	model := NewModel(context.Background(), []string{"alpha"})

	model.processEvent(progress.Event{
		Worker:    "alpha",
		Type:      progress.EventLaunched,
		Timestamp: time.Now(),
		Data:      progress.EventData{Pid: 1234},
	})

	row := model.rows[0]
	assert.Equal(t, RowRunning, row.status)
	assert.Equal(t, 1234, row.pid)
	require.NotNil(t, row.started)

	model.processEvent(progress.Event{
		Worker:    "alpha",
		Type:      progress.EventRunning,
		Timestamp: time.Now(),
		Data:      progress.EventData{Elapsed: time.Second, CPU: 12.5, RSS: 1 << 20},
	})

	assert.Equal(t, time.Second, row.elapsed)
	assert.InDelta(t, 12.5, row.cpu, 0.01)

	model.processEvent(progress.Event{
		Worker:    "alpha",
		Type:      progress.EventExited,
		Timestamp: time.Now(),
		Data:      progress.EventData{ExitCode: 0},
	})

	assert.Equal(t, RowSuccess, row.status)
	require.NotNil(t, row.ended)
}

func TestProcessEventFailurePaths(t *testing.T) {
	model := NewModel(context.Background(), []string{"bad", "gone", "killed"})

	model.processEvent(progress.Event{
		Worker:    "bad",
		Type:      progress.EventExited,
		Timestamp: time.Now(),
		Data:      progress.EventData{ExitCode: 3},
	})
	assert.Equal(t, RowFailed, model.rows[0].status)

	model.processEvent(progress.Event{
		Worker:    "gone",
		Type:      progress.EventStartFailed,
		Timestamp: time.Now(),
		Data:      progress.EventData{Error: assert.AnError},
	})
	assert.Equal(t, RowStartFailed, model.rows[1].status)
	assert.Contains(t, model.rows[1].errMsg, "assert.AnError")

	model.processEvent(progress.Event{
		Worker:    "killed",
		Type:      progress.EventKilled,
		Timestamp: time.Now(),
	})
	assert.Equal(t, RowKilled, model.rows[2].status)
}

func TestRowForCreatesUnknownWorkers(t *testing.T) {
	model := NewModel(context.Background(), nil)

	row := model.rowFor("surprise")
	require.NotNil(t, row)
	assert.Same(t, row, model.rowFor("surprise"))
	assert.Len(t, model.rows, 1)
}

func TestSetDoneEventIsIgnored(t *testing.T) {
	model := NewModel(context.Background(), []string{"alpha"})

	model.processEvent(progress.Event{
		Type:      progress.EventSetDone,
		Timestamp: time.Now(),
	})

	assert.Len(t, model.rows, 1)
	assert.Equal(t, RowPending, model.rows[0].status)
}

func TestCounts(t *testing.T) {
	model := NewModel(context.Background(), []string{"a", "b", "c", "d"})

	model.rows[0].status = RowSuccess
	model.rows[1].status = RowFailed
	model.rows[2].status = RowRunning

	done, failed := model.counts()
	assert.Equal(t, 2, done)
	assert.Equal(t, 1, failed)
}

func TestReporterOnNilProgram(t *testing.T) {
	reporter := &Reporter{}

	event := progress.Event{
		Worker:    "alpha",
		Type:      progress.EventLaunched,
		Timestamp: time.Now(),
	}

	assert.NotPanics(t, func() { reporter.Report(event) })
	assert.NotPanics(t, func() { reporter.Close() })
	assert.NotPanics(t, func() { reporter.Report(event) })
}

func TestFmtBytes(t *testing.T) {
	assert.Equal(t, "1.0MiB", fmtBytes(1<<20))
	assert.Equal(t, "1.5MiB", fmtBytes(3<<19))
}
