package hint

import (
	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
)

// Singles implements a Hinter that suggests the first naked or hidden
// single, the same deduction the solver itself would make next.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the next forced move. found is false on a grid that only
// guessing can advance; validation errors pass through unwrapped so callers
// can classify them.
func (h *Singles) Hint(g domain.Grid) (domain.Hint, bool, error) {
	step, found, err := solver.NextSingle(g)
	if err != nil || !found {
		return domain.Hint{}, false, err
	}
	return domain.Hint{
		Cell:   step.Cell,
		Row:    domain.RowOf(step.Cell),
		Col:    domain.ColOf(step.Cell),
		Value:  step.Value,
		Reason: step.Reason,
	}, true, nil
}
