// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"bytes"
	"sync"
)

// cappedBuffer collects writes up to a byte limit and silently discards the
// rest. Workers can be arbitrarily chatty; the launcher must not be the
// thing that runs out of memory.
type cappedBuffer struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func newCappedBuffer(limit int) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

// Write implements io.Writer. It always reports the full length as written
// so the worker's pipe never sees an error.
func (c *cappedBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.limit - c.buf.Len()
	if room <= 0 {
		c.truncated = true
		return len(p), nil
	}

	if len(p) > room {
		c.truncated = true
		c.buf.Write(p[:room])

		return len(p), nil
	}

	c.buf.Write(p)

	return len(p), nil
}

// Bytes returns the captured output.
func (c *cappedBuffer) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.buf.Bytes()
}

// Truncated reports whether any output was discarded.
func (c *cappedBuffer) Truncated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.truncated
}
