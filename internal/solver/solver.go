// Package solver implements the deduction engine: constraint propagation
// (naked and hidden singles) to a fixed point, then MRV-guided backtracking
// over cloned candidate states. Every move is reported to a StepSink in
// execution order, so two solves of the same grid produce identical traces.
package solver

import (
	"time"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/ports"
)

type nopSink struct{}

func (nopSink) Record(domain.Step) {}

// countingSink wraps the caller's sink and keeps the solve counters.
type countingSink struct {
	next domain.StepSink
	st   *ports.Stats
}

func (c countingSink) Record(s domain.Step) {
	switch s.Kind {
	case domain.StepAssign:
		c.st.Assignments++
	case domain.StepGuess:
		c.st.Guesses++
	case domain.StepBacktrack:
		c.st.Backtracks++
	}
	c.next.Record(s)
}

// Solve solves g without reporting steps.
func Solve(g domain.Grid) (domain.Grid, ports.Stats, error) {
	return SolveWithSteps(g, nil)
}

// SolveWithSteps solves g, delivering every step to sink before returning;
// on failure the steps up to the failure stand. A nil sink is replaced by a
// no-op one. g is passed by value and never modified.
func SolveWithSteps(g domain.Grid, sink domain.StepSink) (domain.Grid, ports.Stats, error) {
	start := time.Now()
	var st ports.Stats
	if sink == nil {
		sink = nopSink{}
	}
	counted := countingSink{next: sink, st: &st}
	s, err := newState(g)
	if err != nil {
		st.Duration = time.Since(start)
		return domain.Grid{}, st, err
	}
	if !s.propagate(counted) {
		st.Duration = time.Since(start)
		return domain.Grid{}, st, ErrUnsolvable
	}
	solved, ok := search(s, counted)
	st.Duration = time.Since(start)
	if !ok {
		return domain.Grid{}, st, ErrNoSolution
	}
	return solved, st, nil
}

// NextSingle reports the first assignment one deduction sweep would make:
// naked singles in cell order, then hidden singles in unit order. found is
// false when only guessing can advance the grid. g is not modified.
func NextSingle(g domain.Grid) (domain.Step, bool, error) {
	s, err := newState(g)
	if err != nil {
		return domain.Step{}, false, err
	}
	for i := 0; i < nCells; i++ {
		if s.grid[i] == 0 && s.cands[i].count() == 1 {
			return domain.Step{
				Kind:   domain.StepAssign,
				Cell:   i,
				Value:  s.cands[i].sole(),
				Reason: domain.ReasonNakedSingle,
			}, true, nil
		}
	}
	for u := 0; u < nUnits; u++ {
		for v := uint8(1); v <= 9; v++ {
			if spot, one := s.hiddenSpot(u, v); one {
				return domain.Step{
					Kind:   domain.StepAssign,
					Cell:   spot,
					Value:  v,
					Reason: domain.ReasonHiddenSingle,
				}, true, nil
			}
		}
	}
	return domain.Step{}, false, nil
}

// Engine exposes the package functions through ports.Solver.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (*Engine) Validate(g domain.Grid) (bool, []int) { return Validate(g) }

func (*Engine) Solve(g domain.Grid) (domain.Grid, ports.Stats, error) { return Solve(g) }

func (*Engine) SolveWithSteps(g domain.Grid, sink domain.StepSink) (domain.Grid, ports.Stats, error) {
	return SolveWithSteps(g, sink)
}
