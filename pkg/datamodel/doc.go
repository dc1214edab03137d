// Package datamodel defines the knowledge-base primitives that updates are
// built over: entity identifiers, values, snaks, statements, monolingual
// terms and entity documents, plus the standard argument errors shared by
// the update engine.
//
// Values in this package are treated as immutable once constructed. Slices
// and maps reachable from a value are never modified by this module.
package datamodel
