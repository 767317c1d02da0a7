package series

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestHalfHourShift(t *testing.T) {
	got := HalfHourShift([]float64{0, 2, 6, -2})
	want := []float64{1, 4, 2, -2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if len(HalfHourShift(nil)) != 0 {
		t.Error("empty input should give empty output")
	}
}

func TestRotateEarlier(t *testing.T) {
	got := RotateEarlier([]float64{1, 2, 3})
	want := []float64{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRollingMean(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}

	tests := []struct {
		name     string
		window   int
		centered bool
		expected []float64
	}{
		{"window one is identity", 1, false, []float64{1, 2, 3, 4, 5, 6}},
		{"trailing window of three", 3, false, []float64{1, 1.5, 2, 3, 4, 5}},
		{"centered window of three", 3, true, []float64{1.5, 2, 3, 4, 5, 5.5}},
		{"centered even window leans to the past", 4, true, []float64{1.5, 2, 2.5, 3.5, 4.5, 5}},
		{"window longer than series", 10, false, []float64{1, 1.5, 2, 2.5, 3, 3.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollingMean(x, tt.window, tt.centered)
			for i := range tt.expected {
				if !almostEqual(got[i], tt.expected[i], 1e-12) {
					t.Errorf("index %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTable(t *testing.T) {
	table := MustTable([]float64{-30, 0, 20, 30}, []float64{21.5, 21.5, 25.5, 25.5})

	tests := []struct {
		x, want float64
	}{
		{-40, 21.5},
		{-30, 21.5},
		{-10, 21.5},
		{0, 21.5},
		{10, 23.5},
		{15, 24.5},
		{20, 25.5},
		{35, 25.5},
	}
	for _, tt := range tests {
		if got := table.At(tt.x); !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("At(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestNewTableValidation(t *testing.T) {
	if _, err := NewTable([]float64{0, 1}, []float64{0}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
	if _, err := NewTable([]float64{0, 0}, []float64{1, 2}); err == nil {
		t.Error("expected error for repeated breakpoint")
	}
	if _, err := NewTable([]float64{0}, []float64{1}); err == nil {
		t.Error("expected error for single breakpoint")
	}
}

func TestDifferenceAndCap(t *testing.T) {
	d, err := Difference([]float64{5, 3}, []float64{1, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d[0] != 4 || d[1] != -1 {
		t.Errorf("Difference = %v, want [4 -1]", d)
	}
	if _, err := Difference([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}

	capped := CapAt([]float64{90, 95, 120}, 95)
	if capped[0] != 90 || capped[1] != 95 || capped[2] != 95 {
		t.Errorf("CapAt = %v", capped)
	}
}
