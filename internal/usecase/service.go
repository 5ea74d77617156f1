package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/metrics"
	"github.com/fatema-maitham/sudoko-solver/internal/ports"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
)

type Service struct {
	Solver  ports.Solver
	Hinter  ports.Hinter
	Storage ports.Storage
}

func NewService(s ports.Solver, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Solver: s, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Validate(g domain.Grid) (bool, []int, error) {
	if u.Solver == nil {
		return false, nil, errNotConfigured
	}
	ok, conflicts := u.Solver.Validate(g)
	return ok, conflicts, nil
}

func (u *Service) Solve(g domain.Grid) (domain.Grid, ports.Stats, error) {
	if u.Solver == nil {
		return domain.Grid{}, ports.Stats{}, errNotConfigured
	}
	out, st, err := u.Solver.Solve(g)
	metrics.ObserveSolve(err, st)
	return out, st, err
}

func (u *Service) SolveWithSteps(g domain.Grid, sink domain.StepSink) (domain.Grid, ports.Stats, error) {
	if u.Solver == nil {
		return domain.Grid{}, ports.Stats{}, errNotConfigured
	}
	out, st, err := u.Solver.SolveWithSteps(g, sink)
	metrics.ObserveSolve(err, st)
	return out, st, err
}

func (u *Service) Hint(g domain.Grid) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(g)
}

// RecordSolve runs a traced solve and persists the outcome. Failed solves
// are recorded too: a trace of an exhausted search is still worth replaying.
func (u *Service) RecordSolve(ctx context.Context, g domain.Grid) (*domain.SolveTrace, error) {
	if u.Solver == nil || u.Storage == nil {
		return nil, errNotConfigured
	}
	var rec domain.Recorder
	out, st, err := u.Solver.SolveWithSteps(g, &rec)
	metrics.ObserveSolve(err, st)
	steps := rec.Steps
	if steps == nil {
		// A rejected puzzle records no steps; store [] so the document
		// matches what the steps endpoint serves.
		steps = []domain.Step{}
	}
	tr := &domain.SolveTrace{
		ID:          uuid.NewString(),
		Givens:      g,
		Steps:       steps,
		Assignments: st.Assignments,
		Guesses:     st.Guesses,
		Backtracks:  st.Backtracks,
		DurationMs:  st.Duration.Milliseconds(),
		CreatedAt:   time.Now().UnixNano(),
	}
	if err != nil {
		tr.ErrorCode = solver.ErrorKind(err)
		var ce *solver.ConflictError
		if errors.As(err, &ce) {
			tr.Conflicts = ce.Cells
		}
	} else {
		tr.Solution = out
		tr.Solved = true
	}
	if err := u.Storage.SaveTrace(ctx, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (u *Service) GetTrace(ctx context.Context, id string) (*domain.SolveTrace, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.LoadTrace(ctx, id)
}

func (u *Service) ListTraces(ctx context.Context) ([]domain.TraceMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.ListTraces(ctx)
}

// Persistence
func (u *Service) SavePuzzle(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	return u.Storage.SavePuzzle(ctx, p)
}

func (u *Service) GetPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.LoadPuzzle(ctx, id)
}

func (u *Service) ListPuzzles(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.ListPuzzles(ctx)
}

func (u *Service) DeletePuzzle(ctx context.Context, id string) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.DeletePuzzle(ctx, id)
}
