package export

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/internal/types"
)

// CSV writes one space separated file per column with the hour index and
// the value.
type CSV struct{}

func (CSV) Name() string { return "csv" }

func (CSV) Export(dir string, r *types.YearResult) error {
	for _, c := range Columns {
		values, err := c.Values(r)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, "csv", r.Dataset, c.FileName(r)+".csv")
		err = writeFile(path, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "t    %s\n", c.D6Name); err != nil {
				return err
			}
			line := "%-2d " + c.format() + "\n"
			for i, v := range values {
				if _, err := fmt.Fprintf(w, line, i, v); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Delphin5 writes climate data files for Delphin 5. Cumulative values are
// moved to the following hour and the beam radiation is left out.
type Delphin5 struct{}

func (Delphin5) Name() string { return "delphin5" }

func (Delphin5) Export(dir string, r *types.YearResult) error {
	for _, c := range Columns {
		if c.D5Keyword == "" {
			continue
		}
		values, err := c.valuesFollowing(r)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, "Delphin5", r.Dataset, c.FileName(r)+".ccd")
		if err := writeCCD(path, c.D5Keyword, c.format(), values); err != nil {
			return err
		}
	}
	return nil
}

// Delphin6 writes climate data files for Delphin 6 with values as they are.
type Delphin6 struct{}

func (Delphin6) Name() string { return "delphin6" }

func (Delphin6) Export(dir string, r *types.YearResult) error {
	for _, c := range Columns {
		values, err := c.Values(r)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, "Delphin6", r.Dataset, c.FileName(r)+".ccd")
		if err := writeCCD(path, c.D6Name, c.format(), values); err != nil {
			return err
		}
	}
	return nil
}

// writeCCD writes a header line and "day hh:00:00 value" rows, days
// counted from zero.
func writeCCD(path, header, valueFormat string, values []float64) error {
	line := "%-4d %02d:00:00 " + valueFormat + "\n"
	return writeFile(path, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for i, v := range values {
			day, hour := timegrid.DayHour(i)
			if _, err := fmt.Fprintf(w, line, day-1, hour, v); err != nil {
				return err
			}
		}
		return nil
	})
}
