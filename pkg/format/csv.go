// Package format decodes tabular and record data out of a seekable source.
package format

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var ErrEmpty = errors.New("empty input")

// ReadCSV rewinds r and decodes it as CSV. The first record is returned as the header.
func ReadCSV(r io.ReadSeeker) ([]string, [][]string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("failed to seek: %w", err)
	}
	dec := csv.NewReader(r)
	header, err := dec.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmpty
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}
	rows, err := dec.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return header, rows, nil
}
