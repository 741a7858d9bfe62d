// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
	"github.com/matt-FFFFFF/figrun/internal/progress"
	"github.com/matt-FFFFFF/figrun/internal/signalbroker"
	"github.com/matt-FFFFFF/figrun/internal/stats"
)

const (
	maxCaptureBytes = 8 * 1024 * 1024 // cap on captured stdout/stderr per worker
	statusInterval  = 10 * time.Second

	// DefaultGrace is how long a worker group gets between SIGTERM and
	// SIGKILL when the launcher is cancelled.
	DefaultGrace = 5 * time.Second
)

var (
	// ErrStartWorker is returned when the worker process could not be started.
	ErrStartWorker = errors.New("could not start worker")
	// ErrInterrupted is returned when the launcher terminated the worker
	// because its context was cancelled.
	ErrInterrupted = errors.New("worker terminated, launcher cancelled")
	// ErrSignalReceived is returned when a termination signal was forwarded
	// to the worker's process group.
	ErrSignalReceived = errors.New("signal forwarded to worker")
	// ErrDuplicateSignalReceived is returned when a repeated signal forced
	// the worker group to be killed immediately.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, worker forcefully terminated")
	// ErrOutputTruncated is recorded when a worker produced more output than
	// the capture cap.
	ErrOutputTruncated = fmt.Errorf("worker output exceeded %d bytes and was truncated", maxCaptureBytes)
)

var _ Runnable = (*Worker)(nil)

// Runnable is anything the Group can launch and await.
type Runnable interface {
	// Run starts the worker and blocks until it has exited. It must handle
	// context cancellation by terminating whatever it started.
	Run(ctx context.Context) *Result
	// Name returns the worker's name.
	Name() string
	// SetReporter wires a progress reporter. Must be called before Run.
	SetReporter(progress.Reporter)
}

// Worker is one external command to launch. The zero value is not usable;
// at minimum Path must be set.
type Worker struct {
	Label string            // Worker name, used in logs and results
	Path  string            // Executable, resolved via PATH when not absolute
	Args  []string          // Arguments, excluding the executable name
	Env   map[string]string // Extra environment, merged over the launcher's own
	Cwd   string            // Working directory, empty means inherit
	Grace time.Duration     // SIGTERM to SIGKILL delay, DefaultGrace when zero

	reporter progress.Reporter
	sigCh    chan os.Signal // injectable for tests
}

// Name implements Runnable.
func (w *Worker) Name() string {
	if w.Label == "" {
		return w.Path
	}

	return w.Label
}

// SetReporter implements Runnable.
func (w *Worker) SetReporter(r progress.Reporter) {
	w.reporter = r
}

// Run implements Runnable. It launches the worker in its own process group,
// then blocks until the process has exited. Cancellation of ctx terminates
// the whole group: SIGTERM first, SIGKILL after the grace period.
func (w *Worker) Run(ctx context.Context) *Result {
	logger := ctxlog.Logger(ctx).With("worker", w.Name())

	if w.sigCh == nil {
		w.sigCh = signalbroker.New(ctx)
	}

	grace := w.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}

	reporter := w.reporter
	if reporter == nil {
		reporter = progress.NewNullReporter()
	}

	res := &Result{
		Worker:   w.Name(),
		Status:   StatusUnknown,
		ExitCode: -1,
	}

	cmd := exec.Command(w.Path, w.Args...)
	cmd.Dir = w.Cwd

	env := os.Environ()
	for k, v := range w.Env {
		env = append(env, k+"="+v)
	}

	cmd.Env = env

	stdout := newCappedBuffer(maxCaptureBytes)
	stderr := newCappedBuffer(maxCaptureBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	setSysProcAttr(cmd)

	logger.Debug("starting worker", "path", w.Path, "args", w.Args, "cwd", w.Cwd)

	start := time.Now()

	if err := cmd.Start(); err != nil {
		res.Error = errors.Join(ErrStartWorker, err)
		res.Status = StatusStartFailed

		logger.Warn("worker failed to start", "error", err)
		reporter.Report(progress.Event{
			Worker:    w.Name(),
			Type:      progress.EventStartFailed,
			Message:   res.Error.Error(),
			Timestamp: time.Now(),
			Data:      progress.EventData{Error: res.Error},
		})

		return res
	}

	pid := cmd.Process.Pid
	res.Pid = pid

	logger.Info("worker started", "pid", pid)
	reporter.Report(progress.Event{
		Worker:    w.Name(),
		Type:      progress.EventLaunched,
		Message:   "started",
		Timestamp: time.Now(),
		Data:      progress.EventData{Pid: pid},
	})

	waitDone := make(chan error, 1)

	go func() {
		waitDone <- cmd.Wait()
	}()

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	graceTimer := time.NewTimer(grace)
	graceTimer.Stop() // armed only once the context is cancelled

	defer graceTimer.Stop()

	signalsSeen := make(map[os.Signal]struct{})
	ctxDone := ctx.Done()

	var killErr, waitErr error

loop:
	for {
		select {
		case waitErr = <-waitDone:
			break loop

		case <-ticker.C:
			elapsed := time.Since(start).Round(time.Second)
			event := progress.Event{
				Worker:    w.Name(),
				Type:      progress.EventRunning,
				Message:   fmt.Sprintf("running for %s", elapsed),
				Timestamp: time.Now(),
				Data:      progress.EventData{Pid: pid, Elapsed: elapsed},
			}

			if sample, err := stats.Collect(ctx, pid); err == nil {
				event.Data.CPU = sample.CPU
				event.Data.RSS = sample.RSS

				logger.Info("worker running",
					"elapsed", elapsed.String(), "cpuPercent", sample.CPU, "rssBytes", sample.RSS)
			} else {
				logger.Debug("stats sample unavailable", "error", err)
				logger.Info("worker running", "elapsed", elapsed.String())
			}

			reporter.Report(event)

		case s := <-w.sigCh:
			if _, ok := signalsSeen[s]; ok {
				logger.Info("duplicate signal, killing worker group", "signal", s.String())
				killGroup(ctx, pid)

				killErr = ErrDuplicateSignalReceived

				continue
			}

			signalsSeen[s] = struct{}{}

			logger.Info("forwarding signal to worker group", "signal", s.String())

			if err := signalGroup(pid, s); err != nil {
				logger.Warn("failed to forward signal", "signal", s.String(), "error", err)
			}

			if killErr == nil {
				killErr = ErrSignalReceived
			}

		case <-ctxDone:
			ctxDone = nil // fire once

			logger.Info("context cancelled, terminating worker group", "grace", grace.String())
			terminateGroup(ctx, pid)
			graceTimer.Reset(grace)

			if killErr == nil {
				killErr = ErrInterrupted
			}

		case <-graceTimer.C:
			logger.Info("grace period expired, killing worker group")
			killGroup(ctx, pid)
		}
	}

	res.Duration = time.Since(start)
	res.StdOut = stdout.Bytes()
	res.StdErr = stderr.Bytes()

	if stdout.Truncated() || stderr.Truncated() {
		res.Error = errors.Join(res.Error, ErrOutputTruncated)
	}

	res.ExitCode = cmd.ProcessState.ExitCode()

	eventType := progress.EventExited

	switch {
	case killErr != nil:
		res.Status = StatusKilled
		res.Error = errors.Join(killErr, res.Error)
		eventType = progress.EventKilled

	case waitErr == nil:
		res.Status = StatusSuccess

	default:
		res.Status = StatusFailed

		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			// Wait itself failed, not the worker.
			res.Error = errors.Join(res.Error, waitErr)
		}
	}

	logger.Info("worker finished",
		"status", res.Status.String(), "exitCode", res.ExitCode, "duration", res.Duration.String())

	reporter.Report(progress.Event{
		Worker:    w.Name(),
		Type:      eventType,
		Message:   res.Status.String(),
		Timestamp: time.Now(),
		Data:      progress.EventData{Pid: pid, ExitCode: res.ExitCode, Error: res.Error},
	})

	return res
}
