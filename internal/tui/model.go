// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/figrun/internal/launcher"
	"github.com/matt-FFFFFF/figrun/internal/progress"
)

// RowStatus represents the displayed state of one worker.
type RowStatus int

const (
	RowPending RowStatus = iota
	RowRunning
	RowSuccess
	RowFailed
	RowStartFailed
	RowKilled
)

// String returns a string representation of the row status.
func (s RowStatus) String() string {
	switch s {
	case RowPending:
		return "pending"
	case RowRunning:
		return "running"
	case RowSuccess:
		return "success"
	case RowFailed:
		return "failed"
	case RowStartFailed:
		return "start-failed"
	case RowKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// workerRow holds the display state for a single worker.
type workerRow struct {
	name    string
	status  RowStatus
	pid     int
	started *time.Time
	ended   *time.Time
	elapsed time.Duration
	cpu     float64
	rss     uint64
	errMsg  string
}

// Model is the bubbletea model for the worker status view.
type Model struct {
	ctx      context.Context
	viewport viewport.Model
	rows     []*workerRow
	index    map[string]*workerRow

	width     int
	height    int
	ready     bool
	quitting  bool
	completed bool
	results   launcher.Results

	mutex  sync.RWMutex
	styles *Styles
}

// Styles contains the lipgloss styling for the view.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Sample  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles creates the default styling.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Sample: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}

// NewModel creates a model pre-seeded with one pending row per worker, in
// launch order. Rows never change order; events only mutate them in place.
func NewModel(ctx context.Context, workerNames []string) *Model {
	rows := make([]*workerRow, 0, len(workerNames))
	index := make(map[string]*workerRow, len(workerNames))

	for _, name := range workerNames {
		row := &workerRow{name: name, status: RowPending}
		rows = append(rows, row)
		index[name] = row
	}

	return &Model{
		ctx:    ctx,
		rows:   rows,
		index:  index,
		styles: NewStyles(),
	}
}

// rowFor looks up a worker's row, creating one for workers that appear in the
// event stream without having been seeded.
func (m *Model) rowFor(name string) *workerRow {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if row, ok := m.index[name]; ok {
		return row
	}

	row := &workerRow{name: name, status: RowPending}
	m.rows = append(m.rows, row)
	m.index[name] = row

	return row
}

// processEvent folds one progress event into the display state.
func (m *Model) processEvent(event progress.Event) {
	if event.Type == progress.EventSetDone {
		return
	}

	row := m.rowFor(event.Worker)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch event.Type {
	case progress.EventLaunched:
		row.status = RowRunning
		row.pid = event.Data.Pid

		if row.started == nil {
			ts := event.Timestamp
			row.started = &ts
		}

	case progress.EventRunning:
		row.elapsed = event.Data.Elapsed
		row.cpu = event.Data.CPU
		row.rss = event.Data.RSS

	case progress.EventExited:
		m.finishRow(row, event)

		if event.Data.Error != nil || event.Data.ExitCode != 0 {
			row.status = RowFailed
		} else {
			row.status = RowSuccess
		}

	case progress.EventStartFailed:
		m.finishRow(row, event)
		row.status = RowStartFailed

	case progress.EventKilled:
		m.finishRow(row, event)
		row.status = RowKilled
	}
}

// finishRow records the terminal timestamp and error for a row.
// Caller holds the mutex.
func (m *Model) finishRow(row *workerRow, event progress.Event) {
	if row.ended == nil {
		ts := event.Timestamp
		row.ended = &ts
	}

	if event.Data.Error != nil {
		row.errMsg = event.Data.Error.Error()
	}
}

// counts returns how many rows are finished and how many of those failed.
// Caller holds the mutex.
func (m *Model) counts() (done, failed int) {
	for _, row := range m.rows {
		switch row.status {
		case RowSuccess:
			done++
		case RowFailed, RowStartFailed, RowKilled:
			done++
			failed++
		}
	}

	return done, failed
}

// fmtBytes renders a byte count as mebibytes for the sample column.
func fmtBytes(b uint64) string {
	const mib = 1 << 20

	return fmt.Sprintf("%.1fMiB", float64(b)/float64(mib))
}
