// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"encoding/gob"
	"errors"
	"io"
	"time"
)

var (
	// ErrWriteGob is returned when writing the results to a binary format fails.
	ErrWriteGob = errors.New("failed to write binary results")
	// ErrReadGob is returned when reading binary results fails.
	ErrReadGob = errors.New("failed to read binary results")
)

// resultRecord is the gob wire form of a Result. Errors travel as text; gob
// cannot encode arbitrary error values.
type resultRecord struct {
	Worker   string
	Pid      int
	ExitCode int
	Status   Status
	ErrText  string
	StdOut   []byte
	StdErr   []byte
	Duration time.Duration
}

// WriteBinary encodes the results so they can be rendered later with the
// show command.
func (r Results) WriteBinary(w io.Writer) error {
	records := make([]resultRecord, 0, len(r))

	for _, res := range r {
		if res == nil {
			continue
		}

		records = append(records, resultRecord{
			Worker:   res.Worker,
			Pid:      res.Pid,
			ExitCode: res.ExitCode,
			Status:   res.Status,
			ErrText:  res.Err(),
			StdOut:   res.StdOut,
			StdErr:   res.StdErr,
			Duration: res.Duration,
		})
	}

	if err := gob.NewEncoder(w).Encode(records); err != nil {
		return errors.Join(ErrWriteGob, err)
	}

	return nil
}

// ReadBinary decodes results previously written with WriteBinary.
func ReadBinary(rd io.Reader) (Results, error) {
	var records []resultRecord

	if err := gob.NewDecoder(rd).Decode(&records); err != nil {
		return nil, errors.Join(ErrReadGob, err)
	}

	results := make(Results, 0, len(records))

	for _, rec := range records {
		results = append(results, &Result{
			Worker:   rec.Worker,
			Pid:      rec.Pid,
			ExitCode: rec.ExitCode,
			Status:   rec.Status,
			Error:    restoreError(rec.ErrText),
			StdOut:   rec.StdOut,
			StdErr:   rec.StdErr,
			Duration: rec.Duration,
		})
	}

	return results, nil
}
