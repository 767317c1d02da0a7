// Package series holds the small elementwise transforms shared by the
// derivation engines. All functions allocate a new slice and leave their
// inputs untouched.
package series

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// ErrLengthMismatch is returned when paired series differ in length.
var ErrLengthMismatch = errors.New("series: length mismatch")

// Map applies f to every sample of x.
func Map(x []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// Map2 applies f pairwise to x and y, which must have equal lengths.
func Map2(x, y []float64, f func(a, b float64) float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y))
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = f(x[i], y[i])
	}
	return out, nil
}

// Constant returns a series of n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// HalfHourShift moves on-the-hour instantaneous values to the middle of
// the following hour by interpolating halfway towards the next sample.
// The last sample has no successor and is held.
func HalfHourShift(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	for i := 0; i < n-1; i++ {
		out[i] = x[i] + 0.5*(x[i+1]-x[i])
	}
	out[n-1] = x[n-1]
	return out
}

// RotateEarlier moves every sample one step earlier and wraps the first
// sample to the end. Exporters use it to turn preceding-hour values into
// following-hour values.
func RotateEarlier(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	copy(out, x[1:])
	out[n-1] = x[0]
	return out
}

// Difference returns x - y.
func Difference(x, y []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y))
	}
	out := make([]float64, len(x))
	floats.SubTo(out, x, y)
	return out, nil
}

// Scaled returns x multiplied by c.
func Scaled(x []float64, c float64) []float64 {
	out := make([]float64, len(x))
	floats.ScaleTo(out, c, x)
	return out
}

// CapAt returns x with every sample limited to at most limit.
func CapAt(x []float64, limit float64) []float64 {
	return Map(x, func(v float64) float64 {
		if v > limit {
			return limit
		}
		return v
	})
}

// RollingMean averages x over a moving window of the given number of
// samples. With centered false the window ends at the current sample
// (trailing); with centered true the window is placed around it, with the
// extra sample of an even window on the past side. Edges use whatever
// samples are available, never fewer than one.
func RollingMean(x []float64, window int, centered bool) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if window < 1 {
		window = 1
	}

	before, after := window-1, 0
	if centered {
		after = (window - 1) / 2
		before = window - 1 - after
	}

	prefix := make([]float64, n+1)
	floats.CumSum(prefix[1:], x)

	for i := 0; i < n; i++ {
		lo := i - before
		if lo < 0 {
			lo = 0
		}
		hi := i + after
		if hi > n-1 {
			hi = n - 1
		}
		out[i] = (prefix[hi+1] - prefix[lo]) / float64(hi-lo+1)
	}
	return out
}

// Table is a piecewise-linear lookup with constant extrapolation beyond
// its first and last points.
type Table struct {
	pl interp.PiecewiseLinear
}

// NewTable creates a lookup table from at least two breakpoints. xs must be
// strictly increasing.
func NewTable(xs, ys []float64) (*Table, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d breakpoints and %d values", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, errors.New("series: a table needs at least two breakpoints")
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("series: table breakpoints not increasing at %d", i)
		}
	}

	t := &Table{}
	if err := t.pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("series: fitting table: %w", err)
	}
	return t, nil
}

// MustTable is NewTable for package-level tables with fixed breakpoints.
func MustTable(xs, ys []float64) *Table {
	t, err := NewTable(xs, ys)
	if err != nil {
		panic(err)
	}
	return t
}

// At evaluates the table at x.
func (t *Table) At(x float64) float64 {
	return t.pl.Predict(x)
}

// Apply evaluates the table at every sample of x.
func (t *Table) Apply(x []float64) []float64 {
	return Map(x, t.At)
}
