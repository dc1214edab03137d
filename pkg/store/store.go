package store

import (
	"errors"
	"time"

	"github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// Store persists base revisions and a journal of built updates. Callers
// attach to a data directory, use the store, and detach when done.
type Store interface {
	// Attach opens the store described by config. Creates the DataDir if it
	// does not exist. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases resources. Idempotent: multiple calls succeed. After
	// Detach, other operations return ErrStoreDetached.
	Detach() error

	// PutRevision stores doc as the current snapshot of its entity,
	// replacing any previous one. The document's ID must be set.
	PutRevision(doc datamodel.EntityDocument) error

	// GetRevision returns the stored snapshot of id. Forms and senses are
	// also found inside a stored lexeme. Returns ErrNotFound when absent.
	GetRevision(id datamodel.EntityID) (datamodel.EntityDocument, error)

	// ListRevisions describes every stored snapshot, ordered by entity ID.
	ListRevisions() ([]RevisionInfo, error)

	// RecordUpdate appends entry to the journal and returns it with its ID
	// and timestamp filled in.
	RecordUpdate(entry JournalEntry) (JournalEntry, error)

	// ListUpdates returns journal entries for id, or for every entity when
	// id is zero, oldest first.
	ListUpdates(id datamodel.EntityID) ([]JournalEntry, error)
}

// RevisionInfo describes a stored snapshot without decoding it.
type RevisionInfo struct {
	EntityID datamodel.EntityID `json:"entity_id"`
	Kind     string             `json:"kind"`
	Revision int64              `json:"revision"`
	StoredAt time.Time          `json:"stored_at"`
}

// Journal modes.
const (
	ModeBlind = "blind"
	ModeBase  = "base"
)

// JournalEntry records one built update.
type JournalEntry struct {
	ID           string             `json:"id"`
	EntityID     datamodel.EntityID `json:"entity_id"`
	Mode         string             `json:"mode"`
	BaseRevision int64              `json:"base_revision"`
	Summary      string             `json:"summary"`
	RecordedAt   time.Time          `json:"recorded_at"`
}

// Store lifecycle and lookup errors.
var (
	ErrStoreDetached       = errors.New("store is detached")
	ErrAlreadyAttached     = errors.New("store is already attached")
	ErrNotFound            = errors.New("not found")
	ErrInvalidMode         = errors.New("journal mode must be blind or base")
	ErrUnsupportedDocument = errors.New("unsupported document type")
)
