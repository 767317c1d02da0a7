package indoor

import (
	"math"
	"testing"

	"github.com/anssilaukkarinen/bfty/pkg/psychro"
)

func TestMoistureExcess(t *testing.T) {
	tests := []struct {
		te   float64
		want float64
	}{
		{-40, 0.005},
		{-30, 0.005},
		{5, 0.005},
		{10, 0.0035},
		{15, 0.002},
		{35, 0.002},
	}

	for _, tt := range tests {
		if got := MoistureExcess(tt.te); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MoistureExcess(%v) = %v, want %v", tt.te, got, tt.want)
		}
	}
}

func TestS2Setpoint(t *testing.T) {
	tests := []struct {
		te   float64
		want float64
	}{
		{-35, 21.5},
		{0, 21.5},
		{10, 23.5},
		{20, 25.5},
		{31, 25.5},
	}

	for _, tt := range tests {
		if got := S2Setpoint(tt.te); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("S2Setpoint(%v) = %v, want %v", tt.te, got, tt.want)
		}
	}
}

func TestConstantScenario(t *testing.T) {
	te := []float64{-5, -5, -5, -5}
	rhe := []float64{80, 80, 80, 80}

	r, err := Constant(te, rhe, 21, Options{Window: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantVi := psychro.VaporConcentration(-5, 80) + 0.005
	wantRH := 100 * wantVi / psychro.SaturationConcentration(21)
	for i := range te {
		if r.Temperature[i] != 21 {
			t.Errorf("Ti[%d] = %v, want 21", i, r.Temperature[i])
		}
		if math.Abs(r.VaporConcentration[i]-wantVi) > 1e-12 {
			t.Errorf("vi[%d] = %v, want %v", i, r.VaporConcentration[i], wantVi)
		}
		if math.Abs(r.RH[i]-wantRH) > 1e-9 {
			t.Errorf("RHi[%d] = %v, want %v", i, r.RH[i], wantRH)
		}
	}
}

func TestIndoorHumidityCapped(t *testing.T) {
	// Warm saturated outdoor air plus the excess would exceed saturation
	// indoors at 21 °C.
	n := 48
	te := make([]float64, n)
	rhe := make([]float64, n)
	for i := range te {
		te[i] = 20 + float64(i%24)/4
		rhe[i] = 100
	}

	ti21, err := Constant(te, rhe, DefaultTemperature, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s2, err := S2(te, ti21.VaporConcentration, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sawCap := false
	for i := 0; i < n; i++ {
		if ti21.RH[i] > MaxRH || s2.RH[i] > MaxRH {
			t.Fatalf("hour %d: RH %v / %v exceeds %v", i, ti21.RH[i], s2.RH[i], MaxRH)
		}
		if ti21.RH[i] == MaxRH {
			sawCap = true
		}
	}
	if !sawCap {
		t.Error("expected the 21 °C scenario to hit the cap")
	}
}

func TestS2SharesVaporConcentration(t *testing.T) {
	te := []float64{-20, -10, 0, 10, 20, 25}
	rhe := []float64{90, 85, 80, 70, 60, 50}

	ti21, err := Constant(te, rhe, DefaultTemperature, Options{Window: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s2, err := S2(te, ti21.VaporConcentration, Options{Window: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range te {
		if s2.VaporConcentration[i] != ti21.VaporConcentration[i] {
			t.Errorf("vi[%d] differs between scenarios", i)
		}
		if s2.Temperature[i] < 21.5 || s2.Temperature[i] > 25.5 {
			t.Errorf("TiS2[%d] = %v outside setpoint range", i, s2.Temperature[i])
		}
	}
	// Trailing mean at hour 1 is (-20-10)/2 = -15 °C.
	if s2.Temperature[1] != 21.5 {
		t.Errorf("TiS2[1] = %v, want 21.5", s2.Temperature[1])
	}
}

func TestS2LengthMismatch(t *testing.T) {
	if _, err := S2(make([]float64, 3), make([]float64, 2), Options{}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}
