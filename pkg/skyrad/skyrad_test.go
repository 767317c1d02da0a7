package skyrad

import (
	"errors"
	"math"
	"testing"

	"github.com/anssilaukkarinen/bfty/pkg/psychro"
)

func TestAlignHalfHour(t *testing.T) {
	te := []float64{0, 10, 20}
	rh := []float64{80, 60, 40}

	teHalf, rhHalf, err := AlignHalfHour(te, rh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTe := []float64{5, 15, 20}
	for i := range wantTe {
		if teHalf[i] != wantTe[i] {
			t.Errorf("Te_half[%d] = %v, want %v", i, teHalf[i], wantTe[i])
		}
	}

	v0 := psychro.VaporConcentration(0, 80)
	v1 := psychro.VaporConcentration(10, 60)
	wantRH := 100 * (v0 + 0.5*(v1-v0)) / psychro.SaturationConcentration(5)
	if math.Abs(rhHalf[0]-wantRH) > 1e-9 {
		t.Errorf("RH_half[0] = %v, want %v", rhHalf[0], wantRH)
	}

	// The last sample has no successor and keeps its humidity.
	if math.Abs(rhHalf[2]-40) > 1e-9 {
		t.Errorf("RH_half[2] = %v, want 40", rhHalf[2])
	}
}

func TestAlignHalfHourLengthMismatch(t *testing.T) {
	if _, _, err := AlignHalfHour(make([]float64, 3), make([]float64, 2)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
}

func TestComputeRadiativeIdentity(t *testing.T) {
	dew := []float64{-15, -2, 5, 12}
	air := []float64{263.15, 273.15, 285.15, 298.15}
	kt := []float64{0, 0.3, 0.5, 0.9}

	r, err := Compute(dew, air, kt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range air {
		want := r.Emissivity[i] * StefanBoltzmann * math.Pow(air[i], 4)
		if r.LongwaveDown[i] != want {
			t.Errorf("LWdn[%d] = %v, want exactly %v", i, r.LongwaveDown[i], want)
		}
		if math.Abs(r.SkyDelta[i]-(r.SkyTemperature[i]-air[i])) > 1e-12 {
			t.Errorf("dTsky[%d] = %v, want T_sky - T_air", i, r.SkyDelta[i])
		}
		if r.SkyTemperature[i] >= air[i] {
			t.Errorf("T_sky[%d] = %v should be below T_air %v", i, r.SkyTemperature[i], air[i])
		}
	}
}

func TestComputeEmissivity(t *testing.T) {
	tests := []struct {
		name string
		dew  float64
		air  float64
		kt   float64
		want float64
	}{
		{"freezing overcast", 0, 273.15, 0, 1.5357 - 0.5687},
		{"clear sky lowers emissivity", 0, 273.15, 1, 1.5357 - 0.5687 - 0.2799},
		{"humid air raises emissivity", 10, 273.15, 0, 1.5357 + 0.05981 - 0.5687},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute([]float64{tt.dew}, []float64{tt.air}, []float64{tt.kt})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(r.Emissivity[0]-tt.want) > 1e-12 {
				t.Errorf("emissivity = %v, want %v", r.Emissivity[0], tt.want)
			}
		})
	}
}

func TestComputeLengthMismatch(t *testing.T) {
	_, err := Compute(make([]float64, 2), make([]float64, 3), make([]float64, 3))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
}

func TestFromWeather(t *testing.T) {
	te := []float64{-5, -4, -3, -2}
	rh := []float64{90, 90, 90, 90}
	kt := []float64{0.5, 0.5, 0.5, 0.5}

	r, err := FromWeather(te, rh, kt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(r.AirTemperature[0]-(273.15-4.5)) > 1e-9 {
		t.Errorf("T_air[0] = %v, want %v", r.AirTemperature[0], 273.15-4.5)
	}
	for i := range te {
		if r.DewPoint[i] >= r.AirTemperature[i]-273.15 {
			t.Errorf("dew point %v not below air temperature at %d", r.DewPoint[i], i)
		}
		if r.LongwaveDown[i] < 150 || r.LongwaveDown[i] > 350 {
			t.Errorf("LWdn[%d] = %v outside plausible winter range", i, r.LongwaveDown[i])
		}
	}
}
