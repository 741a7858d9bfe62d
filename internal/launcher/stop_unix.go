// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package launcher

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/matt-FFFFFF/figrun/internal/ctxlog"
)

// signalGroup forwards sig to the worker's whole process group.
func signalGroup(pid int, sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		s = syscall.SIGTERM
	}

	if err := syscall.Kill(-pid, s); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}

	return nil
}

// terminateGroup asks the worker's process group to stop.
func terminateGroup(ctx context.Context, pid int) {
	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		ctxlog.Warn(ctx, "failed to terminate worker group", "pid", pid, "error", err)
	}
}

// killGroup forcefully ends the worker's process group.
func killGroup(ctx context.Context, pid int) {
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			ctxlog.Debug(ctx, "worker group already gone", "pid", pid)
			return
		}

		ctxlog.Error(ctx, "failed to kill worker group", "pid", pid, "error", err)
	}
}
