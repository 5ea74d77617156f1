// Package storage provides the persistence backends for puzzles and
// solve traces: a plain-file JSON store and an embedded BadgerDB store.
// Both write the same JSON documents, so the backend can be swapped in
// configuration without a migration.
package storage

import "errors"

// ErrNotFound is returned by every backend when the requested puzzle or
// trace does not exist.
var ErrNotFound = errors.New("not found")
