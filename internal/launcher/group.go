// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
	"github.com/matt-FFFFFF/figrun/internal/progress"
)

// ErrAlreadyLaunched is returned when LaunchAll is called twice on the same Group.
var ErrAlreadyLaunched = errors.New("worker group already launched")

// Group is a set of workers launched together. A Group is single-use: build
// it, launch it, await it. Two sequential runs need two Groups and share no
// state.
type Group struct {
	Label   string
	Workers []Runnable

	reporter progress.Reporter

	mu       sync.Mutex
	launched bool
	wg       sync.WaitGroup
	results  Results
}

// NewGroup creates a Group for the given workers.
func NewGroup(label string, workers ...Runnable) *Group {
	return &Group{
		Label:   label,
		Workers: workers,
	}
}

// SetReporter wires a progress reporter into the group and all its workers.
// Must be called before LaunchAll.
func (g *Group) SetReporter(r progress.Reporter) {
	g.reporter = r

	for _, w := range g.Workers {
		w.SetReporter(r)
	}
}

// LaunchAll starts every worker concurrently. Workers that cannot start
// produce an error result; the rest launch regardless. It returns
// immediately once all launch attempts are underway.
func (g *Group) LaunchAll(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.launched {
		return ErrAlreadyLaunched
	}

	g.launched = true
	g.results = make(Results, len(g.Workers))

	ctxlog.Info(ctx, "launching workers", "group", g.Label, "count", len(g.Workers))

	for i, w := range g.Workers {
		g.wg.Add(1)

		go func(i int, w Runnable) {
			defer g.wg.Done()

			g.results[i] = w.Run(ctx)
		}(i, w)
	}

	return nil
}

// AwaitCompletion blocks until every launched worker has exited, by whatever
// means, and returns one result per worker in worker order. Calling it
// before LaunchAll returns an empty, non-nil result set.
func (g *Group) AwaitCompletion() Results {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.results == nil {
		g.results = Results{}
	}

	if g.reporter != nil {
		g.reporter.Report(progress.Event{
			Worker:    "",
			Type:      progress.EventSetDone,
			Message:   "all workers accounted for",
			Timestamp: time.Now(),
		})
	}

	return g.results
}

// Run launches every worker and waits for all of them. This is the common
// path; LaunchAll and AwaitCompletion exist separately for callers that want
// to do something between the two.
func (g *Group) Run(ctx context.Context) (Results, error) {
	if err := g.LaunchAll(ctx); err != nil {
		return nil, err
	}

	res := g.AwaitCompletion()

	if err := res.StartFailures(); err != nil {
		ctxlog.Warn(ctx, "some workers never started", "group", g.Label, "error", err)
	}

	return res, nil
}
