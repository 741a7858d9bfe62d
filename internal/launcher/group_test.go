// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/matt-FFFFFF/figrun/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeWorker struct {
	label    string
	delay    time.Duration
	exitCode int
	err      error
	status   Status
}

// Run implements the Runnable interface for fakeWorker.
func (f *fakeWorker) Run(_ context.Context) *Result {
	time.Sleep(f.delay)

	status := f.status
	if status == StatusUnknown {
		if f.exitCode == 0 && f.err == nil {
			status = StatusSuccess
		} else {
			status = StatusFailed
		}
	}

	return &Result{
		Worker:   f.label,
		ExitCode: f.exitCode,
		Error:    f.err,
		Status:   status,
		Duration: f.delay,
	}
}

// Name implements the Runnable interface for fakeWorker.
func (f *fakeWorker) Name() string {
	return f.label
}

// SetReporter implements the Runnable interface for fakeWorker.
func (f *fakeWorker) SetReporter(_ progress.Reporter) {}

func TestGroupRun_AllSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup("all-success",
		&fakeWorker{label: "w1", delay: 10 * time.Millisecond},
		&fakeWorker{label: "w2", delay: 20 * time.Millisecond},
	)

	results, err := g.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results.HasFailures())
	assert.Equal(t, "w1", results[0].Worker)
	assert.Equal(t, "w2", results[1].Worker)
}

func TestGroupRun_OneFailureDoesNotAffectOthers(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup("one-failure",
		&fakeWorker{label: "ok", delay: 10 * time.Millisecond},
		&fakeWorker{label: "bad", delay: 10 * time.Millisecond, exitCode: 1, err: os.ErrPermission},
	)

	results, err := g.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results.HasFailures())
	assert.Equal(t, StatusSuccess, results.ByWorker("ok").Status)
	assert.Equal(t, StatusFailed, results.ByWorker("bad").Status)
}

func TestGroupRun_Parallelism(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup("parallel",
		&fakeWorker{label: "w1", delay: 100 * time.Millisecond},
		&fakeWorker{label: "w2", delay: 100 * time.Millisecond},
		&fakeWorker{label: "w3", delay: 100 * time.Millisecond},
	)

	start := time.Now()
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 250*time.Millisecond,
		"expected parallel execution to be faster than serial")
}

func TestGroupRun_Empty(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup("empty")

	results, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, results.HasFailures())
}

func TestGroupLaunchAllTwice(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewGroup("twice", &fakeWorker{label: "w1"})

	require.NoError(t, g.LaunchAll(context.Background()))
	assert.ErrorIs(t, g.LaunchAll(context.Background()), ErrAlreadyLaunched)

	g.AwaitCompletion()
}

func TestGroupRun_SequentialRunsAreIndependent(t *testing.T) {
	defer goleak.VerifyNone(t)

	for range 2 {
		g := NewGroup("independent",
			&fakeWorker{label: "w1", delay: 5 * time.Millisecond},
		)

		results, err := g.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, StatusSuccess, results[0].Status)
	}
}

// Mirrors the contract scenario: one worker exits immediately, one runs for a
// while, one fails to start. Await returns only after the slow worker is done
// and the start failure is not fatal.
func TestGroupRun_StartFailureIsNonFatal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping subprocess test on windows")
	}

	g := NewGroup("mixed",
		&Worker{Label: "a", Path: "/bin/true", sigCh: make(chan os.Signal, 1)},
		&Worker{Label: "b", Path: "/bin/sleep", Args: []string{"0.3"}, sigCh: make(chan os.Signal, 1)},
		&Worker{Label: "c", Path: "/not/a/real/command", sigCh: make(chan os.Signal, 1)},
	)

	start := time.Now()
	results, err := g.Run(testCtx(t))
	require.NoError(t, err)

	elapsed := time.Since(start)
	require.Len(t, results, 3)

	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond, "await must cover the slowest worker")

	assert.Equal(t, StatusSuccess, results.ByWorker("a").Status)
	assert.Equal(t, StatusSuccess, results.ByWorker("b").Status)
	assert.Equal(t, StatusStartFailed, results.ByWorker("c").Status)

	require.Error(t, results.StartFailures())
	assert.ErrorIs(t, results.StartFailures(), ErrStartWorker)
}

// Mirrors the contract scenario: two long-running workers, cancellation at
// t=1, both terminated within a bounded delay.
func TestGroupRun_CancellationKillsAllWorkers(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping subprocess test on windows")
	}

	g := NewGroup("cancelled",
		&Worker{Label: "a", Path: "/bin/sleep", Args: []string{"30"}, Grace: 500 * time.Millisecond, sigCh: make(chan os.Signal, 1)},
		&Worker{Label: "b", Path: "/bin/sleep", Args: []string{"30"}, Grace: 500 * time.Millisecond, sigCh: make(chan os.Signal, 1)},
	)

	ctx, cancel := context.WithCancel(testCtx(t))

	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results, err := g.Run(ctx)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 3*time.Second, "cancellation must be prompt")
	require.Len(t, results, 2)
	assert.True(t, results.Interrupted())

	for _, res := range results {
		assert.Equal(t, StatusKilled, res.Status)
		assert.ErrorIs(t, res.Error, ErrInterrupted)
	}
}

func TestGroupSetReporterPropagates(t *testing.T) {
	defer goleak.VerifyNone(t)

	reporter := progress.NewChannelReporter(context.Background(), 16)
	defer reporter.Close()

	g := NewGroup("reported", &fakeWorker{label: "w1"})
	g.SetReporter(reporter)

	_, err := g.Run(context.Background())
	require.NoError(t, err)

	// The group emits a set-level done event once everything is accounted for.
	select {
	case event := <-reporter.Events():
		assert.Equal(t, progress.EventSetDone, event.Type)
	case <-time.After(time.Second):
		t.Fatal("expected a set-done event")
	}
}
