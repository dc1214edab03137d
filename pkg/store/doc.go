// Package store defines the revision store: the boundary through which base
// revisions are fetched for validated updates and built updates are
// journaled. Implementations live behind the Store interface; see
// pkg/sqlite for the SQLite factory.
package store
