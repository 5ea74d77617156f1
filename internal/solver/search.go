package solver

import "github.com/fatema-maitham/sudoko-solver/internal/domain"

// mrvCell picks the unresolved cell with the fewest candidates, lowest index
// on ties. Returns -1 on a fully resolved grid.
func (s *state) mrvCell() int {
	best, bestN := -1, 10
	for i := 0; i < nCells; i++ {
		if s.grid[i] != 0 {
			continue
		}
		if n := s.cands[i].count(); n < bestN {
			best, bestN = i, n
		}
	}
	return best
}

// search tries each candidate of the MRV cell in ascending digit order,
// cloning the state per branch so a failed branch never leaks eliminations
// into its siblings. Depth is bounded by the 81 cells.
func search(s *state, sink domain.StepSink) (domain.Grid, bool) {
	cell := s.mrvCell()
	if cell < 0 {
		if ok, _ := Validate(s.grid); ok {
			return s.grid, true
		}
		return domain.Grid{}, false
	}
	sink.Record(domain.Step{Kind: domain.StepFocus, Cell: cell})
	for v := uint8(1); v <= 9; v++ {
		if !s.cands[cell].has(v) {
			continue
		}
		sink.Record(domain.Step{Kind: domain.StepGuess, Cell: cell, Value: v})
		branch := *s
		if branch.assign(cell, v, domain.ReasonGuess, sink) && branch.propagate(sink) {
			if g, ok := search(&branch, sink); ok {
				return g, true
			}
		}
		sink.Record(domain.Step{Kind: domain.StepUnassign, Cell: cell})
		sink.Record(domain.Step{Kind: domain.StepBacktrack, Cell: cell, Value: v})
	}
	return domain.Grid{}, false
}
