package bandit

import (
	"math"
	"testing"
)

func TestSelect_tieBreaksLowestIndex(t *testing.T) {
	l := New(Options{Dim: 2, NumArms: 3, Alpha: 0.3})
	if got := l.Select([]float64{1, 0}); got != 0 {
		t.Errorf("Select() = %d, want 0 (all arms start identical)", got)
	}
}

func TestUpdate_shiftsPreference(t *testing.T) {
	l := New(Options{Dim: 2, NumArms: 2, Alpha: 0})
	x := []float64{1, 0}

	// Arm 0 consistently earns positive reward for this context; arm 1 earns
	// negative reward. With alpha=0 (no exploration bonus), Select should prefer arm 0.
	for i := 0; i < 20; i++ {
		l.Update(0, x, 1.0)
		l.Update(1, x, -1.0)
	}

	if got := l.Select(x); got != 0 {
		t.Errorf("Select() = %d, want 0 after favorable updates", got)
	}
}

func TestUpdate_rejectsNonFinite(t *testing.T) {
	l := New(Options{Dim: 2, NumArms: 1, Alpha: 0.3})
	before := l.score(l.arms[0], []float64{1, 1})

	l.Update(0, []float64{math.NaN(), 1}, 1.0)
	l.Update(0, []float64{1, 1}, math.Inf(1))
	l.Update(0, []float64{1}, 1.0) // wrong dimension

	after := l.score(l.arms[0], []float64{1, 1})
	if before != after {
		t.Errorf("Update() with a non-finite/mismatched observation changed arm state: before=%v after=%v", before, after)
	}
}

func TestRankOneUpdate_matchesDirectInverse(t *testing.T) {
	// Compare the Sherman-Morrison incremental inverse against inverting
	// A = I + x x^T directly for a small 2x2 case (closed form:
	// A^-1 = I - (x x^T)/(1 + x^T x)).
	m := newIdentity(2)
	x := []float64{3, 4}
	m.rankOneUpdate(x)

	denom := 1 + dot(x, x)
	want := newIdentity(2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want.set(i, j, want.at(i, j)-(x[i]*x[j])/denom)
		}
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(m.at(i, j)-want.at(i, j)) > 1e-9 {
				t.Errorf("at(%d,%d) = %v, want %v", i, j, m.at(i, j), want.at(i, j))
			}
		}
	}
}

func TestQuadForm_identity(t *testing.T) {
	m := newIdentity(3)
	x := []float64{1, 2, 3}
	if got := m.quadForm(x); got != 14 {
		t.Errorf("quadForm(identity, x) = %v, want 14 (||x||^2)", got)
	}
}

func TestNumArmsAndDim(t *testing.T) {
	l := New(Options{Dim: 11, NumArms: 4, Alpha: 0.3})
	if l.Dim() != 11 {
		t.Errorf("Dim() = %d, want 11", l.Dim())
	}
	if l.NumArms() != 4 {
		t.Errorf("NumArms() = %d, want 4", l.NumArms())
	}
}
