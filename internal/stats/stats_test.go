// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package stats

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectSelf(t *testing.T) {
	s, err := Collect(context.Background(), os.Getpid())
	require.NoError(t, err)

	assert.Equal(t, os.Getpid(), s.Pid)
	assert.Positive(t, s.RSS, "test process should have a nonzero RSS")
}

func TestCollectMissingProcess(t *testing.T) {
	// Pids this large do not exist on any supported platform.
	_, err := Collect(context.Background(), 1<<30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessGone)
}
