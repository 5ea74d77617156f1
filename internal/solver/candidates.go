package solver

import (
	"fmt"
	"math/bits"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
)

// candSet is the candidate digits of one cell, bit v set for digit v
// (bits 1..9; bit 0 unused).
type candSet uint16

const fullSet candSet = 0x3FE // digits 1..9

func singleton(v uint8) candSet { return 1 << v }

func (s candSet) has(v uint8) bool        { return s&(1<<v) != 0 }
func (s candSet) without(v uint8) candSet { return s &^ (1 << v) }
func (s candSet) count() int              { return bits.OnesCount16(uint16(s)) }

// sole returns the lowest digit in the set; the only one when count()==1.
func (s candSet) sole() uint8 { return uint8(bits.TrailingZeros16(uint16(s))) }

// state is one search node: the grid plus per-cell candidates. Arrays only,
// so cloning a branch is a plain value copy.
type state struct {
	grid  domain.Grid
	cands [nCells]candSet
}

// newState validates g and derives initial candidates: the full set minus the
// values of filled peers. A filled cell holds the singleton of its value. An
// empty cell left with no candidate means the givens are pairwise consistent
// but still over-constrain it.
func newState(g domain.Grid) (*state, error) {
	if err := g.CheckCells(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidPuzzle)
	}
	if ok, conflicts := Validate(g); !ok {
		return nil, &ConflictError{Cells: conflicts}
	}
	s := &state{grid: g}
	for i := 0; i < nCells; i++ {
		if g[i] != 0 {
			s.cands[i] = singleton(g[i])
			continue
		}
		set := fullSet
		for _, p := range peers[i] {
			if v := g[p]; v != 0 {
				set = set.without(v)
			}
		}
		if set == 0 {
			return nil, fmt.Errorf("cell %d has no candidate: %w", i, ErrInvalidPuzzle)
		}
		s.cands[i] = set
	}
	return s, nil
}
