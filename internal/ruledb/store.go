package ruledb

import (
	"fmt"
	"sync/atomic"
)

// Store holds the active Database and supports atomic replacement. Classifiers
// take a snapshot per call, so an in-flight classification never sees a
// half-swapped ruleset and a failed reload leaves the previous ruleset in
// place.
type Store struct {
	path    string
	current atomic.Pointer[Database]
	reloads atomic.Uint64
	failed  atomic.Uint64
}

// NewStore wraps an already-loaded Database. path may be empty when the
// database came from the embedded bundle; Reload then rebuilds from it.
func NewStore(path string, db *Database) *Store {
	s := &Store{path: path}
	s.current.Store(db)
	return s
}

// Current returns the active Database snapshot.
func (s *Store) Current() *Database {
	return s.current.Load()
}

// Reload builds a fresh Database from the store's source and swaps it in.
// On failure the active database is left untouched.
func (s *Store) Reload() error {
	var (
		db  *Database
		err error
	)
	if s.path == "" {
		db, err = Default()
	} else {
		db, err = Load(s.path)
	}
	if err != nil {
		s.failed.Add(1)
		return fmt.Errorf("reload rules: %w", err)
	}
	s.current.Store(db)
	s.reloads.Add(1)
	return nil
}

// ReloadStats reports successful and failed reload counts since start.
func (s *Store) ReloadStats() (ok, failed uint64) {
	return s.reloads.Load(), s.failed.Load()
}

// Path returns the file the store reloads from, or "" for the embedded bundle.
func (s *Store) Path() string { return s.path }
