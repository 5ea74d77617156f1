package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
)

const (
	puzzleBucket = "puzzles"
	traceBucket  = "traces"
)

// FS stores each record as a pretty-printed JSON file:
// dir/puzzles/<id>.json and dir/traces/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(bucket, id string) string {
	return filepath.Join(s.dir, bucket, strings.TrimSpace(id)+".json")
}

func (s *FS) write(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *FS) read(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// scan visits every .json file in a bucket, skipping entries that
// cannot be read or parsed. A missing bucket is an empty list.
func (s *FS) scan(bucket string, visit func(data []byte)) error {
	dir := filepath.Join(s.dir, bucket)
	ents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		visit(data)
	}
	return nil
}

func (s *FS) SavePuzzle(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	return s.write(s.pathFor(puzzleBucket, p.ID), p)
}

func (s *FS) LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	var out domain.Puzzle
	if err := s.read(s.pathFor(puzzleBucket, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FS) ListPuzzles(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	err := s.scan(puzzleBucket, func(data []byte) {
		var p domain.Puzzle
		if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
			return
		}
		out = append(out, puzzleMeta(&p))
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out, func(m domain.PuzzleMeta) int64 { return m.CreatedAt })
	return out, nil
}

func (s *FS) DeletePuzzle(ctx context.Context, id string) error {
	err := os.Remove(s.pathFor(puzzleBucket, id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *FS) SaveTrace(ctx context.Context, t *domain.SolveTrace) error {
	if t == nil || t.ID == "" {
		return errors.New("invalid trace: missing ID")
	}
	return s.write(s.pathFor(traceBucket, t.ID), t)
}

func (s *FS) LoadTrace(ctx context.Context, id string) (*domain.SolveTrace, error) {
	var out domain.SolveTrace
	if err := s.read(s.pathFor(traceBucket, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FS) ListTraces(ctx context.Context) ([]domain.TraceMeta, error) {
	var out []domain.TraceMeta
	err := s.scan(traceBucket, func(data []byte) {
		var t domain.SolveTrace
		if err := json.Unmarshal(data, &t); err != nil || t.ID == "" {
			return
		}
		out = append(out, traceMeta(&t))
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out, func(m domain.TraceMeta) int64 { return m.CreatedAt })
	return out, nil
}

func (s *FS) Close() error { return nil }

func puzzleMeta(p *domain.Puzzle) domain.PuzzleMeta {
	return domain.PuzzleMeta{
		ID:        p.ID,
		Name:      p.Name,
		Clues:     p.Givens.Clues(),
		CreatedAt: p.CreatedAt,
	}
}

func traceMeta(t *domain.SolveTrace) domain.TraceMeta {
	return domain.TraceMeta{
		ID:        t.ID,
		Solved:    t.Solved,
		Steps:     len(t.Steps),
		Guesses:   t.Guesses,
		CreatedAt: t.CreatedAt,
	}
}

func sortNewestFirst[T any](items []T, createdAt func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]) > createdAt(items[j])
	})
}
