package model

// RunBudget caps the number of external scoring calls one user may trigger
// in one run. It is created fresh per user and passed into the scoring
// stage, so no counter state crosses user iterations.
type RunBudget struct {
	remaining int
	used      int
}

// NewRunBudget returns a budget allowing n external calls. Negative n is
// treated as zero.
func NewRunBudget(n int) *RunBudget {
	if n < 0 {
		n = 0
	}
	return &RunBudget{remaining: n}
}

// Take consumes one call from the budget and reports whether one was
// available.
func (b *RunBudget) Take() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	b.used++
	return true
}

// Used returns how many calls have been consumed.
func (b *RunBudget) Used() int { return b.used }

// Remaining returns how many calls are left.
func (b *RunBudget) Remaining() int { return b.remaining }
