// Package input reads the hourly test year tables.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/anssilaukkarinen/bfty/internal/constants"
	"github.com/anssilaukkarinen/bfty/internal/types"
)

var (
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("input: missing required column")
	// ErrRowCount is returned when a table does not hold one row per hour.
	ErrRowCount = errors.New("input: table does not cover the annual grid")
)

// Table is a parsed input table keyed by column name.
type Table map[string][]float64

// ReadFile reads a CSV table from path.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a CSV table with a header row. Columns other than the
// required ones are kept if they parse as numbers; RHe_ice in particular is
// passed through.
func Read(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("input: reading header: %w", err)
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	cols := make([][]float64, len(names))
	for i := range cols {
		cols[i] = make([]float64, 0, constants.HoursPerYear)
	}
	numeric := make([]bool, len(names))
	for i := range numeric {
		numeric[i] = true
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("input: line %d: %w", line+1, err)
		}
		line++

		for i, field := range rec {
			if !numeric[i] {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				if isRequired(names[i]) {
					return nil, fmt.Errorf("input: line %d column %q: %w", line, names[i], err)
				}
				numeric[i] = false
				continue
			}
			cols[i] = append(cols[i], v)
		}
	}

	t := make(Table, len(names))
	for i, name := range names {
		if numeric[i] && name != "" {
			t[name] = cols[i]
		}
	}

	for _, req := range types.RequiredColumns {
		if _, ok := t[req]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, req)
		}
	}
	if n := len(t[types.ColTe]); n != constants.HoursPerYear {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrRowCount, n, constants.HoursPerYear)
	}
	return t, nil
}

func isRequired(name string) bool {
	for _, req := range types.RequiredColumns {
		if req == name {
			return true
		}
	}
	return false
}
