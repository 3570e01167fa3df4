package config

import "sync/atomic"

// LoadFunc produces a fresh resolved configuration snapshot.
type LoadFunc func() (*Resolved, error)

// Store holds the active resolved configuration for a running process.
// Readers always observe a complete snapshot; Reload swaps the active
// reference atomically, so readers holding a previous snapshot keep seeing
// its consistent values.
type Store struct {
	load    LoadFunc
	current atomic.Pointer[Resolved]
}

// NewStore runs the initial load and returns a store holding its result.
func NewStore(load LoadFunc) (*Store, error) {
	snapshot, err := load()
	if err != nil {
		return nil, err
	}
	s := &Store{load: load}
	s.current.Store(snapshot)
	return s, nil
}

// Snapshot returns the active resolved configuration.
func (s *Store) Snapshot() *Resolved {
	return s.current.Load()
}

// Reload re-runs the load function and swaps in the new snapshot. A failed
// reload leaves the previously active snapshot untouched.
func (s *Store) Reload() error {
	snapshot, err := s.load()
	if err != nil {
		return err
	}
	s.current.Store(snapshot)
	return nil
}
