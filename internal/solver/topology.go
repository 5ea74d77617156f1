package solver

import "github.com/fatema-maitham/sudoko-solver/internal/domain"

// Static board topology, built once at package init and never written again.
// Units 0..8 are rows, 9..17 columns, 18..26 boxes; each unit lists its nine
// cells in ascending index order. peers[c] holds the 20 distinct cells that
// share a unit with c, ascending.

const (
	nSize  = 9
	nCells = 81
	nUnits = 27
	nPeers = 20
)

var (
	units = buildUnits()
	peers = buildPeers()
)

func buildUnits() [nUnits][nSize]int {
	var u [nUnits][nSize]int
	for i := 0; i < nSize; i++ {
		for j := 0; j < nSize; j++ {
			u[i][j] = i*nSize + j        // row i
			u[nSize+i][j] = j*nSize + i  // column i
		}
	}
	for b := 0; b < nSize; b++ {
		r0, c0 := (b/3)*3, (b%3)*3
		for j := 0; j < nSize; j++ {
			u[2*nSize+b][j] = (r0+j/3)*nSize + c0 + j%3
		}
	}
	return u
}

func buildPeers() [nCells][nPeers]int {
	var p [nCells][nPeers]int
	for c := 0; c < nCells; c++ {
		n := 0
		for o := 0; o < nCells; o++ {
			if o == c {
				continue
			}
			if domain.RowOf(o) == domain.RowOf(c) ||
				domain.ColOf(o) == domain.ColOf(c) ||
				domain.BoxOf(o) == domain.BoxOf(c) {
				p[c][n] = o
				n++
			}
		}
	}
	return p
}
