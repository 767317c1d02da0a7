package envelope

import (
	"errors"
	"math"
	"testing"
)

func TestSmallestAngle(t *testing.T) {
	tests := []struct {
		source, target, want float64
	}{
		{0, 90, 90},
		{90, 0, -90},
		{350, 10, 20},
		{10, 350, -20},
		{180, 180, 0},
		{0, 180, 180},
	}

	for _, tt := range tests {
		if got := SmallestAngle(tt.source, tt.target); got != tt.want {
			t.Errorf("SmallestAngle(%v, %v) = %v, want %v", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestPressureCoefficients(t *testing.T) {
	tests := []struct {
		name    string
		wd      float64
		wantCpe float64
		wantCpi float64
	}{
		{"wind along facade normal", 180, 1.0, -0.3},
		{"wind from behind", 0, -0.5, 0.2},
		{"oblique windward", 220, 1.0, -0.3},
		{"side wind", 90, -1.4, 0.2},
		{"side wind at 45 deg", 135, -1.4, 0.2},
		{"rear boundary at 135 deg", 45, -0.5, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpe := ExternalCoefficient(tt.wd, 180)
			if cpe != tt.wantCpe {
				t.Errorf("cpe = %v, want %v", cpe, tt.wantCpe)
			}
			if cpi := InternalCoefficient(cpe, false); cpi != tt.wantCpi {
				t.Errorf("cpi = %v, want %v", cpi, tt.wantCpi)
			}
			if cpi := InternalCoefficient(cpe, true); cpi != -0.3 {
				t.Errorf("recommended cpi = %v, want -0.3", cpi)
			}
		})
	}
}

func TestRoughnessCoefficient(t *testing.T) {
	tests := []struct {
		name     string
		z        float64
		category TerrainCategory
		method   RoughnessMethod
		want     float64
	}{
		{"iso I at 6 m", 6, TerrainI, MethodISO15927, 0.17 * math.Log(6/0.01)},
		{"iso IV below zmin", 6, TerrainIV, MethodISO15927, 0.24 * math.Log(16/1.0)},
		{"en I at 6 m", 6, TerrainI, MethodEN1991, 0.19 * math.Pow(0.01/0.05, 0.07) * math.Log(6/0.01)},
		{"en II reference terrain", 10, TerrainII, MethodEN1991, 0.19 * math.Log(10/0.05)},
		{"en III below zmin", 3, TerrainIII, MethodEN1991, 0.19 * math.Pow(0.3/0.05, 0.07) * math.Log(5/0.3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoughnessCoefficient(tt.z, tt.category, tt.method)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("c_R = %v, want %v", got, tt.want)
			}
		})
	}

	// The two standards give different coefficients for the same site.
	iso, _ := RoughnessCoefficient(6, TerrainI, MethodISO15927)
	en, _ := RoughnessCoefficient(6, TerrainI, MethodEN1991)
	if iso == en {
		t.Errorf("expected distinct coefficients, both %v", iso)
	}
}

func TestRoughnessCoefficientErrors(t *testing.T) {
	if _, err := RoughnessCoefficient(6, "V", MethodISO15927); !errors.Is(err, ErrUnknownTerrain) {
		t.Errorf("got %v, want ErrUnknownTerrain", err)
	}
	if _, err := RoughnessCoefficient(6, TerrainI, "ASCE_7"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Terrain = "0"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownTerrain) {
		t.Errorf("got %v, want ErrUnknownTerrain", err)
	}

	cfg = DefaultConfig()
	cfg.RainMethod = ""
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
}

func TestColumnNames(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.PressureName(); got != "Pi_I_6.0m_180.0deg" {
		t.Errorf("PressureName() = %q", got)
	}
	if got := cfg.RainName(); got != "WDR_I_6.0m_180.0deg" {
		t.Errorf("RainName() = %q", got)
	}

	cfg.Height = 7.5
	cfg.Terrain = TerrainIII
	if got := cfg.RainName(); got != "WDR_III_7.5m_180.0deg" {
		t.Errorf("RainName() = %q", got)
	}
}

func TestPressure(t *testing.T) {
	cfg := DefaultConfig()
	te := []float64{-20, 0}
	ti := []float64{21.5, 21.5}
	pe := []float64{101325, 101325}
	ws := []float64{5, 0}
	wd := []float64{180, 0}

	r, err := Pressure(te, ti, pe, ws, wd, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cr, _ := RoughnessCoefficient(6, TerrainI, MethodEN1991)
	if math.Abs(r.LocalWind[0]-5*cr) > 1e-12 {
		t.Errorf("local wind = %v, want %v", r.LocalWind[0], 5*cr)
	}

	wantStack := (9.81 * 3 * 101325 / 287.0) * (1/253.15 - 1/294.65)
	if math.Abs(r.Stack[0]-wantStack) > 1e-9 {
		t.Errorf("stack = %v, want %v", r.Stack[0], wantStack)
	}
	// Cold outdoor air gives overpressure at the upper half.
	if r.Stack[0] <= 0 {
		t.Errorf("stack effect should push outwards, got %v", r.Stack[0])
	}

	rho := 101325 / (287.0 * (273.15 + 0.75))
	wantWind := (-0.3 - 1.0) * 0.5 * rho * r.LocalWind[0] * r.LocalWind[0]
	if math.Abs(r.Wind[0]-wantWind) > 1e-9 {
		t.Errorf("wind = %v, want %v", r.Wind[0], wantWind)
	}
	if r.Wind[1] != 0 {
		t.Errorf("calm wind pressure = %v, want 0", r.Wind[1])
	}

	for i := range te {
		if math.Abs(r.Total[i]-(r.Stack[i]+r.Wind[i])) > 1e-12 {
			t.Errorf("total[%d] is not stack + wind", i)
		}
		if math.Abs(r.Indoor[i]-(pe[i]+r.Total[i])) > 1e-9 {
			t.Errorf("Pi[%d] = %v, want Pe + dP", i, r.Indoor[i])
		}
	}
	if r.Name != "Pi_I_6.0m_180.0deg" {
		t.Errorf("name = %q", r.Name)
	}
}

func TestPressureLengthMismatch(t *testing.T) {
	one := []float64{0}
	if _, err := Pressure(one, one, one, one, []float64{0, 0}, DefaultConfig()); err == nil {
		t.Error("expected error for mismatched inputs")
	}
}

func TestAirfieldIndex(t *testing.T) {
	ws := []float64{4, 4, 4, 4, 4}
	wd := []float64{180, 0, 120, 180, 180}
	precip := []float64{1, 1, 1, 1, 0}
	te := []float64{5, 5, 5, -31, 5}

	got, err := AirfieldIndex(ws, wd, precip, te, -30, 180)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{
		2.0 / 9.0 * 4,
		0,
		2.0 / 9.0 * 4 * math.Cos(60*math.Pi/180),
		0,
		0,
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("I_A[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDrivingRainBelowFreezeThreshold(t *testing.T) {
	cfg := DefaultConfig()
	n := 24
	ws, wd, precip, te := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		ws[i] = 8
		wd[i] = 180
		precip[i] = 2
		te[i] = -35 + float64(i)
	}

	r, err := DrivingRain(ws, wd, precip, te, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum float64
	for i := 0; i < n; i++ {
		if te[i] < cfg.FreezeThreshold && r.Flux[i] != 0 {
			t.Errorf("hour %d at %v °C: flux = %v, want 0", i, te[i], r.Flux[i])
		}
		if te[i] >= cfg.FreezeThreshold && r.Flux[i] <= 0 {
			t.Errorf("hour %d at %v °C: flux = %v, want > 0", i, te[i], r.Flux[i])
		}
		sum += r.Flux[i]
	}

	if math.Abs(r.AnnualTotal-sum*3600) > 1e-9 {
		t.Errorf("annual total = %v, want %v", r.AnnualTotal, sum*3600)
	}

	cr, _ := RoughnessCoefficient(6, TerrainI, MethodISO15927)
	wantFlux := r.AirfieldIndex[10] * cr * 1.0 * 0.8 * 0.4 / 3600
	if math.Abs(r.Flux[10]-wantFlux) > 1e-15 {
		t.Errorf("flux[10] = %v, want %v", r.Flux[10], wantFlux)
	}
	if r.Name != "WDR_I_6.0m_180.0deg" {
		t.Errorf("name = %q", r.Name)
	}
}
