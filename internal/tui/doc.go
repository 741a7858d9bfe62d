// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui renders a live view of a running worker set. Each worker gets
// one row showing its status, elapsed time and, while it runs, a best-effort
// CPU and memory sample. The view stays up after completion until the user
// quits, so results can be read before the terminal is restored.
package tui
