package bandit

import "math"

// Options configures a LinUCB controller.
type Options struct {
	// Dim is the context vector dimension d (spec §4.6).
	Dim int

	// NumArms is the number of selectable heuristic arms.
	NumArms int

	// Alpha is the exploration constant (default 0.3, spec §4.6).
	Alpha float64
}

// DefaultAlpha is the exploration constant's default value (spec §4.6).
const DefaultAlpha = 0.3

type arm struct {
	aInv *matrix   // A_i^-1, starts as the d x d identity
	b    []float64 // d-vector, starts at zero
}

// LinUCB is a per-arm ridge-regression contextual bandit. On Select it
// scores every arm with an upper-confidence bound and returns the argmax;
// on Update it folds a single (context, reward) observation into the
// chosen arm's (A, b) state via a Sherman-Morrison rank-1 update of A^-1.
type LinUCB struct {
	dim   int
	alpha float64
	arms  []*arm
}

// New returns a LinUCB controller with NumArms arms, each starting from
// A = identity, b = zero (spec §3 "LinUCB per-arm state").
func New(opts Options) *LinUCB {
	arms := make([]*arm, opts.NumArms)
	for i := range arms {
		arms[i] = &arm{
			aInv: newIdentity(opts.Dim),
			b:    make([]float64, opts.Dim),
		}
	}
	return &LinUCB{dim: opts.Dim, alpha: opts.Alpha, arms: arms}
}

// Dim returns the context dimension every arm expects.
func (l *LinUCB) Dim() int {
	return l.dim
}

// NumArms returns the number of arms.
func (l *LinUCB) NumArms() int {
	return len(l.arms)
}

// Select scores every arm against context x and returns the index of the
// arm with the highest score, ties broken by lowest arm index (spec §4.6).
func (l *LinUCB) Select(x []float64) int {
	best := 0
	bestScore := math.Inf(-1)
	for i, a := range l.arms {
		score := l.score(a, x)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

func (l *LinUCB) score(a *arm, x []float64) float64 {
	theta := a.aInv.mulVec(a.b)
	exploit := dot(theta, x)

	bound := a.aInv.quadForm(x)
	if bound < 0 {
		bound = 0 // clamp the square-root argument to >= 0 (spec §4.6)
	}
	explore := l.alpha * math.Sqrt(bound)

	return exploit + explore
}

// Update folds reward r observed for context x under arm i into that arm's
// state: A_i <- A_i + x x^T; b_i <- b_i + r x, applying the rank-1 update
// directly to A_i^-1 (spec §4.6). Non-finite x or r leaves the arm
// untouched: "the controller never fails" (spec §7) is upheld by simply
// discarding observations that would corrupt it rather than by panicking.
func (l *LinUCB) Update(i int, x []float64, r float64) {
	if !finite(r) || len(x) != l.dim {
		return
	}
	for _, xi := range x {
		if !finite(xi) {
			return
		}
	}

	a := l.arms[i]
	a.aInv.rankOneUpdate(x)
	for j, xj := range x {
		a.b[j] += r * xj
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
