// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"errors"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Status describes how a worker ended up.
type Status int

const (
	// StatusUnknown means the worker has not finished yet.
	StatusUnknown Status = iota
	// StatusSuccess means the worker exited with code 0.
	StatusSuccess
	// StatusFailed means the worker exited on its own with a non-zero code.
	StatusFailed
	// StatusStartFailed means the worker process could not be started.
	StatusStartFailed
	// StatusKilled means the launcher terminated the worker.
	StatusKilled
)

// String implements the Stringer interface for Status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusStartFailed:
		return "start-failed"
	case StatusKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Result represents the outcome of running a single worker.
type Result struct {
	Worker   string        // Worker name
	Pid      int           // Process ID, zero if the worker never started
	ExitCode int           // Exit code, -1 when the worker was killed or never started
	Status   Status        // Final status
	Error    error         // Error, if any
	StdOut   []byte        // Captured standard output (size-capped)
	StdErr   []byte        // Captured standard error (size-capped)
	Duration time.Duration // Wall time from launch to exit
}

// Results holds one Result per worker, in worker-set order.
type Results []*Result

// HasFailures reports whether any worker failed to start, was killed, or
// exited non-zero.
func (r Results) HasFailures() bool {
	for _, v := range r {
		if v == nil {
			continue
		}

		if v.Error != nil || v.ExitCode != 0 {
			return true
		}
	}

	return false
}

// Interrupted reports whether any worker was terminated by the launcher
// rather than exiting on its own.
func (r Results) Interrupted() bool {
	for _, v := range r {
		if v != nil && v.Status == StatusKilled {
			return true
		}
	}

	return false
}

// StartFailures aggregates the errors of workers that never started.
// It returns nil when every worker launched.
func (r Results) StartFailures() error {
	var merr *multierror.Error

	for _, v := range r {
		if v != nil && v.Status == StatusStartFailed {
			merr = multierror.Append(merr, v.Error)
		}
	}

	return merr.ErrorOrNil()
}

// ByWorker returns the result for the named worker, or nil.
func (r Results) ByWorker(name string) *Result {
	for _, v := range r {
		if v != nil && v.Worker == name {
			return v
		}
	}

	return nil
}

// Err returns the result's error text, or the empty string.
func (res *Result) Err() string {
	if res.Error == nil {
		return ""
	}

	return res.Error.Error()
}

// restoreError converts a serialized error text back into an error value.
func restoreError(text string) error {
	if text == "" {
		return nil
	}

	return errors.New(text)
}
