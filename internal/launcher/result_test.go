// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsHasFailures(t *testing.T) {
	clean := Results{
		{Worker: "a", Status: StatusSuccess},
		{Worker: "b", Status: StatusSuccess},
	}
	assert.False(t, clean.HasFailures())

	dirty := Results{
		{Worker: "a", Status: StatusSuccess},
		{Worker: "b", Status: StatusFailed, ExitCode: 1},
	}
	assert.True(t, dirty.HasFailures())
}

func TestResultsInterrupted(t *testing.T) {
	r := Results{
		{Worker: "a", Status: StatusSuccess},
		{Worker: "b", Status: StatusKilled, ExitCode: -1, Error: ErrInterrupted},
	}
	assert.True(t, r.Interrupted())
	assert.False(t, Results{{Worker: "a", Status: StatusFailed}}.Interrupted())
}

func TestResultsStartFailures(t *testing.T) {
	boom := errors.Join(ErrStartWorker, errors.New("no such file"))
	r := Results{
		{Worker: "a", Status: StatusSuccess},
		{Worker: "b", Status: StatusStartFailed, Error: boom},
		{Worker: "c", Status: StatusStartFailed, Error: boom},
	}

	err := r.StartFailures()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStartWorker)

	assert.NoError(t, Results{{Worker: "a", Status: StatusSuccess}}.StartFailures())
}

func TestResultsByWorker(t *testing.T) {
	r := Results{
		{Worker: "a"},
		{Worker: "b", ExitCode: 7},
	}

	require.NotNil(t, r.ByWorker("b"))
	assert.Equal(t, 7, r.ByWorker("b").ExitCode)
	assert.Nil(t, r.ByWorker("zzz"))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "start-failed", StatusStartFailed.String())
	assert.Equal(t, "killed", StatusKilled.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func TestWriteAndReadBinary(t *testing.T) {
	in := Results{
		{
			Worker:   "blast-wave",
			Pid:      1234,
			ExitCode: 0,
			Status:   StatusSuccess,
			StdOut:   []byte("saved figure\n"),
			Duration: 3 * time.Second,
		},
		{
			Worker:   "shock-tubes",
			ExitCode: -1,
			Status:   StatusStartFailed,
			Error:    errors.Join(ErrStartWorker, errors.New("no such file")),
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, in.WriteBinary(buf))

	out, err := ReadBinary(buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "blast-wave", out[0].Worker)
	assert.Equal(t, StatusSuccess, out[0].Status)
	assert.Equal(t, in[0].StdOut, out[0].StdOut)
	assert.Equal(t, 3*time.Second, out[0].Duration)

	assert.Equal(t, "shock-tubes", out[1].Worker)
	require.Error(t, out[1].Error)
	assert.Contains(t, out[1].Error.Error(), "no such file")
}

func TestReadBinaryGarbage(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader([]byte("not a gob stream")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadGob)
}
