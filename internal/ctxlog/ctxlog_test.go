// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerReturnsDefaultWhenAbsent(t *testing.T) {
	logger := Logger(context.Background())
	require.NotNil(t, logger)
	assert.Same(t, DefaultLogger, logger)
}

func TestNewAndLoggerRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	custom := slog.New(slog.NewTextHandler(buf, nil))

	ctx := New(context.Background(), custom)
	assert.Same(t, custom, Logger(ctx))
}

func TestNewNilLoggerUsesDefault(t *testing.T) {
	ctx := New(context.Background(), nil)
	assert.Same(t, DefaultLogger, Logger(ctx))
}

func TestNewForTUIWritesToBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := NewForTUI(context.Background(), buf)

	LevelVar.Set(slog.LevelInfo)
	Info(ctx, "tui message", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "tui message")
	assert.Contains(t, out, "key=value")
}

func TestLogLevelFromEnv(t *testing.T) {
	exec, err := os.Executable()
	require.NoError(t, err)

	name := filepath.Base(exec)
	if ext := filepath.Ext(name); ext == ".exe" {
		name = name[:len(name)-len(ext)]
	}

	envName := strings.ToUpper(name) + "_LOG_LEVEL"

	cases := []struct {
		value string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelWarn},
		{"", slog.LevelWarn},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			stubs := gostub.New()
			defer stubs.Reset()

			stubs.SetEnv(envName, tc.value)
			assert.Equal(t, tc.want, logLevelFromEnv())
		})
	}
}
