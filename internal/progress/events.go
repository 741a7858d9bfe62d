// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the lifecycle events emitted while the launcher
// runs a worker set, and the reporter plumbing that carries them to
// listeners such as the TUI. Reporting is always best-effort: a slow or
// absent listener never blocks a worker.
package progress

import (
	"time"
)

// Event is a real-time update about one worker (or the whole set).
type Event struct {
	Worker    string    // Worker name, empty for set-level events
	Type      EventType // What happened
	Message   string    // Human-readable status message
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventLaunched indicates a worker process has been started.
	EventLaunched EventType = iota
	// EventRunning is a periodic heartbeat for a worker that is still going.
	EventRunning
	// EventExited indicates a worker exited on its own, with any status.
	EventExited
	// EventStartFailed indicates a worker could not be started at all.
	EventStartFailed
	// EventKilled indicates the launcher terminated the worker.
	EventKilled
	// EventSetDone indicates every worker in the set has been accounted for.
	EventSetDone
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventLaunched:
		return "launched"
	case EventRunning:
		return "running"
	case EventExited:
		return "exited"
	case EventStartFailed:
		return "start-failed"
	case EventKilled:
		return "killed"
	case EventSetDone:
		return "done"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for progress events.
type EventData struct {
	Pid      int           // Process ID, once launched
	ExitCode int           // For EventExited/EventKilled
	Error    error         // For EventStartFailed/EventExited with failure
	Elapsed  time.Duration // For EventRunning
	CPU      float64       // Percent, for EventRunning (best effort)
	RSS      uint64        // Resident set size in bytes, for EventRunning (best effort)
}

// Reporter is the interface for sending progress events.
// Implementations must be non-blocking and tolerate listeners going away.
type Reporter interface {
	// Report sends a progress event.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events from the launcher.
type Listener interface {
	// OnEvent is called for each event. Implementations should return
	// quickly to avoid backing up the reporting goroutine.
	OnEvent(event Event)
}

// NullReporter is a no-op Reporter, used when nobody is watching.
type NullReporter struct{}

// Report implements Reporter by doing nothing.
func (nr *NullReporter) Report(_ Event) {}

// Close implements Reporter by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
