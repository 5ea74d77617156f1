package ports

import (
	"context"
	"time"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
)

// Stats captures performance characteristics of a solve.
type Stats struct {
	Assignments int
	Guesses     int
	Backtracks  int
	Duration    time.Duration
}

// Solver runs the deduction engine. Solves are CPU-bound and never
// cancelled mid-flight, so these take no context.
type Solver interface {
	Validate(g domain.Grid) (ok bool, conflicts []int)
	Solve(g domain.Grid) (domain.Grid, Stats, error)
	SolveWithSteps(g domain.Grid, sink domain.StepSink) (domain.Grid, Stats, error)
}

// Hinter returns the next forced move, if one exists.
type Hinter interface {
	Hint(g domain.Grid) (domain.Hint, bool, error)
}

// Storage persists puzzles and solve traces.
type Storage interface {
	SavePuzzle(ctx context.Context, p *domain.Puzzle) error
	LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error)
	ListPuzzles(ctx context.Context) ([]domain.PuzzleMeta, error)
	DeletePuzzle(ctx context.Context, id string) error
	SaveTrace(ctx context.Context, t *domain.SolveTrace) error
	LoadTrace(ctx context.Context, id string) (*domain.SolveTrace, error)
	ListTraces(ctx context.Context) ([]domain.TraceMeta, error)
	Close() error
}
