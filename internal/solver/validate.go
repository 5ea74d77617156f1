package solver

import "github.com/fatema-maitham/sudoko-solver/internal/domain"

// Validate scans all 27 units for duplicated digits. Every occurrence of a
// duplicated digit is reported, so two cells sharing one value both show up.
// Empty cells never conflict. conflicts comes back sorted ascending with no
// repeats; it is nil when the grid is clean.
func Validate(g domain.Grid) (bool, []int) {
	var marked [nCells]bool
	bad := false
	for u := 0; u < nUnits; u++ {
		var seen, dup uint16
		for _, c := range units[u] {
			v := g[c]
			if v == 0 {
				continue
			}
			bit := uint16(1) << v
			if seen&bit != 0 {
				dup |= bit
			}
			seen |= bit
		}
		if dup == 0 {
			continue
		}
		for _, c := range units[u] {
			if v := g[c]; v != 0 && dup&(1<<v) != 0 {
				marked[c] = true
				bad = true
			}
		}
	}
	if !bad {
		return true, nil
	}
	conflicts := make([]int, 0, 8)
	for i, m := range marked {
		if m {
			conflicts = append(conflicts, i)
		}
	}
	return false, conflicts
}
