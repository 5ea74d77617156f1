package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
)

const (
	puzzleKeyPrefix = "puzzle:"
	traceKeyPrefix  = "trace:"
)

// Badger stores puzzles and traces in an embedded BadgerDB. Values are
// the same JSON documents the FS store writes; keys are "puzzle:<id>"
// and "trace:<id>".
type Badger struct{ db *badger.DB }

// NewBadger opens (creating if needed) a Badger database rooted at dir.
func NewBadger(dir string, logger *slog.Logger) (*Badger, error) {
	return openBadger(badger.DefaultOptions(dir), logger)
}

// NewBadgerInMemory opens a Badger database that lives entirely in RAM.
// Everything is lost on Close; this backs the "memory" storage backend
// and most tests.
func NewBadgerInMemory(logger *slog.Logger) (*Badger, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true), logger)
}

func openBadger(opts badger.Options, logger *slog.Logger) (*Badger, error) {
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Badger{db: db}, nil
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (s *Badger) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Badger) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

func (s *Badger) delete(key string) error {
	k := []byte(key)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(k); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(k)
	})
}

// scanPrefix visits the value of every key under prefix.
func (s *Badger) scanPrefix(prefix string, visit func(val []byte)) error {
	pfx := []byte(prefix)
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(pfx); it.ValidForPrefix(pfx); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				visit(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Badger) SavePuzzle(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	return s.put(puzzleKeyPrefix+p.ID, p)
}

func (s *Badger) LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	var out domain.Puzzle
	if err := s.get(puzzleKeyPrefix+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Badger) ListPuzzles(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	err := s.scanPrefix(puzzleKeyPrefix, func(val []byte) {
		var p domain.Puzzle
		if err := json.Unmarshal(val, &p); err != nil || p.ID == "" {
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

func (s *Badger) DeletePuzzle(ctx context.Context, id string) error {
	return s.delete(puzzleKeyPrefix + id)
}

func (s *Badger) SaveTrace(ctx context.Context, t *domain.SolveTrace) error {
	if t == nil || t.ID == "" {
		return errors.New("invalid trace: missing ID")
	}
	return s.put(traceKeyPrefix+t.ID, t)
}

func (s *Badger) LoadTrace(ctx context.Context, id string) (*domain.SolveTrace, error) {
	var out domain.SolveTrace
	if err := s.get(traceKeyPrefix+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Badger) ListTraces(ctx context.Context) ([]domain.TraceMeta, error) {
	var out []domain.TraceMeta
	err := s.scanPrefix(traceKeyPrefix, func(val []byte) {
		var t domain.SolveTrace
		if err := json.Unmarshal(val, &t); err != nil || t.ID == "" {
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

func (s *Badger) Close() error { return s.db.Close() }
