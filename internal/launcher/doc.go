// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launcher starts a set of independent worker processes in parallel,
// waits for all of them to finish and guarantees that none of them outlive
// the launcher. Each worker runs in its own OS process group so that
// termination reaches any grandchildren the worker may have spawned.
//
// Workers are mutually independent: there is no ordering between them, no
// shared state and no aggregation of their exit codes beyond reporting. A
// worker that fails to start does not prevent the others from running.
package launcher
