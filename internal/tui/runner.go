// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/figrun/internal/launcher"
	"github.com/matt-FFFFFF/figrun/internal/progress"
)

// Reporter implements progress.Reporter by forwarding events into the
// running bubbletea program.
type Reporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// NewReporter creates a reporter bound to a tea program.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{program: program}
}

// Report implements progress.Reporter.
func (tr *Reporter) Report(event progress.Event) {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	if tr.closed || tr.program == nil {
		return
	}

	tr.program.Send(ProgressEventMsg{Event: event})
}

// Close implements progress.Reporter.
func (tr *Reporter) Close() {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()
	tr.closed = true
}

// Runner owns the TUI program for the duration of one worker set run.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *Reporter
	mutex    sync.Mutex
}

// NewRunner creates a runner whose view is seeded with the group's workers.
func NewRunner(ctx context.Context, group *launcher.Group) *Runner {
	names := make([]string, 0, len(group.Workers))
	for _, w := range group.Workers {
		names = append(names, w.Name())
	}

	model := NewModel(ctx, names)
	program := tea.NewProgram(model, tea.WithAltScreen())
	reporter := NewReporter(program)

	return &Runner{
		model:    model,
		program:  program,
		reporter: reporter,
	}
}

// GetReporter returns the progress reporter feeding this runner.
func (r *Runner) GetReporter() progress.Reporter {
	return r.reporter
}

// Run launches the group under the TUI and blocks until both the workers and
// the view have finished. Quitting the view before the workers are done
// cancels them, the same way a signal would; their results are still
// collected and returned.
func (r *Runner) Run(ctx context.Context, group *launcher.Group) (launcher.Results, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	group.SetReporter(r.reporter)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultChan := make(chan launcher.Results, 1)

	go func() {
		defer close(resultChan)

		results, err := group.Run(runCtx)
		if err != nil {
			results = launcher.Results{&launcher.Result{Error: err}}
		}

		resultChan <- results
	}()

	tuiDone := make(chan error, 1)

	go func() {
		_, err := r.program.Run()
		tuiDone <- err
	}()

	var (
		results launcher.Results
		tuiErr  error
	)

	select {
	case results = <-resultChan:
		// Workers finished first. Tell the view and wait for the user to quit.
		r.program.Send(SetCompletedMsg{Results: results})
		tuiErr = <-tuiDone

		r.reporter.Close()

	case tuiErr = <-tuiDone:
		// The user quit the view while workers were still running. Stop them
		// and wait for the terminated results.
		cancel()
		r.reporter.Close()

		results = <-resultChan
	}

	return results, tuiErr
}
