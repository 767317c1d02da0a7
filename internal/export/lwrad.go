package export

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/anssilaukkarinen/bfty/internal/types"
)

// LWrad writes the intermediate and final sky radiation tables.
type LWrad struct{}

func (LWrad) Name() string { return "lwrad" }

func (LWrad) Export(dir string, r *types.YearResult) error {
	if r.Sky == nil || r.Clearness == nil || r.Series == nil {
		return fmt.Errorf("export: %s has no sky radiation results", r.Dataset)
	}
	global, err := r.Series.Column(types.ColRglob)
	if err != nil {
		return err
	}

	base := filepath.Join(dir, "LWrad")

	err = writeTable(
		filepath.Join(base, r.Dataset+"_Tair_Tdew_Iglob_I0_Kt.csv"),
		"# Tair(K)   Tdew(degC) Iglob(W/m2)  I0(W/m2)   Kt(-)",
		[]string{"%-10.3f", "%-10.3f", "%-10.3f", "%-10.3f", "%-10.3f"},
		r.Sky.AirTemperature, r.Sky.DewPoint, global, r.Clearness.Extraterrestrial, r.Clearness.Clearness,
	)
	if err != nil {
		return err
	}

	return writeTable(
		filepath.Join(base, r.Dataset+"_LWdn_emissivity_Tsky_dTsky.csv"),
		"# LWdn(W/m2)  emis_sky(-)     T_sky(K)       dTsky(degC)",
		[]string{"%10.2f", "%10.3f", "%15.2f", "%15.2f"},
		r.Sky.LongwaveDown, r.Sky.Emissivity, r.Sky.SkyTemperature, r.Sky.SkyDelta,
	)
}

// writeTable writes fixed-width columns separated by single spaces.
func writeTable(path, header string, formats []string, cols ...[]float64) error {
	return writeFile(path, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		n := len(cols[0])
		for i := 0; i < n; i++ {
			for j, c := range cols {
				if j > 0 {
					if _, err := io.WriteString(w, " "); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, formats[j], c[i]); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	})
}
