// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package launcher

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
)

// signalGroup has no portable equivalent on Windows; termination is the only
// signal that can reliably be delivered.
func signalGroup(pid int, _ os.Signal) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}

	return p.Kill()
}

func terminateGroup(ctx context.Context, pid int) {
	killGroup(ctx, pid)
}

func killGroup(ctx context.Context, pid int) {
	p, err := os.FindProcess(pid)
	if err != nil {
		ctxlog.Debug(ctx, "worker already gone", "pid", pid)
		return
	}

	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		ctxlog.Error(ctx, "failed to kill worker", "pid", pid, "error", err)
	}
}
