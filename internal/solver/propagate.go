package solver

import "github.com/fatema-maitham/sudoko-solver/internal/domain"

// assign writes v into cell: grid value, candidate singleton, one assign
// step, then v is removed from every unresolved peer. Returns false the
// moment a peer is left with no candidate; later peers are not touched.
func (s *state) assign(cell int, v uint8, reason string, sink domain.StepSink) bool {
	s.grid[cell] = v
	s.cands[cell] = singleton(v)
	sink.Record(domain.Step{Kind: domain.StepAssign, Cell: cell, Value: v, Reason: reason})
	for _, p := range peers[cell] {
		if s.grid[p] != 0 {
			continue
		}
		left := s.cands[p].without(v)
		if left == 0 {
			return false
		}
		s.cands[p] = left
	}
	return true
}

// nakedSingles assigns every unresolved cell holding exactly one candidate,
// cells in ascending order.
func (s *state) nakedSingles(sink domain.StepSink) (changed, ok bool) {
	for i := 0; i < nCells; i++ {
		if s.grid[i] != 0 || s.cands[i].count() != 1 {
			continue
		}
		if !s.assign(i, s.cands[i].sole(), domain.ReasonNakedSingle, sink) {
			return changed, false
		}
		changed = true
	}
	return changed, true
}

// hiddenSpot returns the only unresolved cell of unit u admitting v, if
// exactly one does.
func (s *state) hiddenSpot(u int, v uint8) (int, bool) {
	spot, n := -1, 0
	for _, c := range units[u] {
		if s.grid[c] != 0 || !s.cands[c].has(v) {
			continue
		}
		spot = c
		if n++; n > 1 {
			return -1, false
		}
	}
	return spot, n == 1
}

// hiddenSingles assigns each digit that fits exactly one unresolved cell of
// a unit. Units in row/column/box order, digits ascending.
func (s *state) hiddenSingles(sink domain.StepSink) (changed, ok bool) {
	for u := 0; u < nUnits; u++ {
		for v := uint8(1); v <= 9; v++ {
			spot, one := s.hiddenSpot(u, v)
			if !one {
				continue
			}
			if !s.assign(spot, v, domain.ReasonHiddenSingle, sink) {
				return changed, false
			}
			changed = true
		}
	}
	return changed, true
}

// propagate runs naked then hidden single passes until neither changes
// anything. False means a contradiction: some cell lost its last candidate.
// Terminates because every assignment fills a cell for good.
func (s *state) propagate(sink domain.StepSink) bool {
	for {
		naked, ok := s.nakedSingles(sink)
		if !ok {
			return false
		}
		hidden, ok := s.hiddenSingles(sink)
		if !ok {
			return false
		}
		if !naked && !hidden {
			return true
		}
	}
}
