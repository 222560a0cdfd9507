package scheduler

// ExitState tracks the visible output across runs to decide when the
// change-exit or stable-count-exit conditions fire.
type ExitState struct {
	// ChgExit stops on the first change of visible output.
	ChgExit bool
	// EquExit stops once the output has been unchanged this many times in a
	// row. Negative disables it.
	EquExit int

	last      string
	hasLast   bool
	unchanged int
}

// Enabled reports whether any exit condition is configured.
func (e *ExitState) Enabled() bool {
	return e.ChgExit || e.EquExit >= 0
}

// Observe records visible and reports whether the loop should stop. The
// first observation only establishes the baseline. Change-exit is checked
// before the stable count.
func (e *ExitState) Observe(visible string) bool {
	defer func() {
		e.last = visible
		e.hasLast = true
	}()

	if !e.hasLast {
		return false
	}

	if visible != e.last {
		e.unchanged = 0
		return e.ChgExit
	}

	e.unchanged++
	return e.EquExit >= 0 && e.unchanged >= e.EquExit
}

// Unchanged returns the current run length of identical observations.
func (e *ExitState) Unchanged() int {
	return e.unchanged
}
