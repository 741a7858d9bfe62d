// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stats samples resource usage of running worker processes.
// Sampling is strictly best-effort: a worker that exits between being
// spawned and being sampled is not an error worth surfacing.
package stats

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
	"github.com/shirou/gopsutil/v3/process"
)

// ErrProcessGone is returned when the sampled process no longer exists.
var ErrProcessGone = errors.New("process no longer exists")

// Sample is a point-in-time snapshot of one process.
type Sample struct {
	Pid int
	CPU float64 // percent of one core since process start
	RSS uint64  // resident set size in bytes
}

// Collect returns a usage sample for the process with the given pid.
func Collect(ctx context.Context, pid int) (Sample, error) {
	s := Sample{Pid: pid}

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return s, errors.Join(ErrProcessGone, err)
	}

	cpu, err := p.CPUPercentWithContext(ctx)
	if err != nil {
		ctxlog.Debug(ctx, "cpu sample failed", "pid", pid, "error", err)
	} else {
		s.CPU = cpu
	}

	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		ctxlog.Debug(ctx, "memory sample failed", "pid", pid, "error", err)
	} else if mem != nil {
		s.RSS = mem.RSS
	}

	return s, nil
}
