// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr puts the worker in its own process group so that signals
// sent to the group reach any grandchildren it spawns.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
