// Package sqlite provides the public API for the SQLite revision store.
// This package exposes the factory function while keeping implementation
// details internal.
package sqlite

import (
	"github.com/mesh-intelligence/wbedit/internal/sqlite"
	"github.com/mesh-intelligence/wbedit/pkg/store"
)

// NewStore creates a new SQLite store instance.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	s := sqlite.NewStore()
//	err := s.Attach(store.Config{DataDir: ".wbedit"})
//	defer s.Detach()
func NewStore() store.Store {
	return sqlite.NewBackend()
}
