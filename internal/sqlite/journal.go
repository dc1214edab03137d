package sqlite

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/store"
)

// RecordUpdate appends entry to the journal. The ID and RecordedAt fields
// are assigned here; values set by the caller are ignored.
func (b *Backend) RecordUpdate(entry store.JournalEntry) (store.JournalEntry, error) {
	if entry.EntityID.IsZero() {
		return store.JournalEntry{}, fmt.Errorf("%w: journal entity ID", dm.ErrMissingArgument)
	}
	switch entry.Mode {
	case store.ModeBlind:
		if entry.BaseRevision != 0 {
			return store.JournalEntry{}, fmt.Errorf("%w: blind update with base revision %d", store.ErrInvalidMode, entry.BaseRevision)
		}
	case store.ModeBase:
	default:
		return store.JournalEntry{}, fmt.Errorf("%w: %q", store.ErrInvalidMode, entry.Mode)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return store.JournalEntry{}, store.ErrStoreDetached
	}

	entry.ID = generateUUID()
	entry.RecordedAt = time.Now().UTC()
	_, err := b.db.Exec(
		"INSERT INTO journal (journal_id, entity_id, mode, base_revision, summary, recorded_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, entry.EntityID.ID(), entry.Mode, entry.BaseRevision, entry.Summary, formatTime(entry.RecordedAt))
	if err != nil {
		return store.JournalEntry{}, fmt.Errorf("record update of %s: %w", entry.EntityID, err)
	}
	zap.S().Debugw("update recorded", "journal_id", entry.ID, "entity", entry.EntityID.ID(), "mode", entry.Mode)
	return entry, nil
}

// ListUpdates returns journal entries for id, or all entries when id is the
// zero ID, oldest first.
func (b *Backend) ListUpdates(id dm.EntityID) ([]store.JournalEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, store.ErrStoreDetached
	}

	query := "SELECT journal_id, entity_id, mode, base_revision, summary, recorded_at FROM journal"
	var args []any
	if !id.IsZero() {
		query += " WHERE entity_id = ?"
		args = append(args, id.ID())
	}
	// UUID v7 IDs sort by creation time.
	query += " ORDER BY journal_id"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []store.JournalEntry
	for rows.Next() {
		var (
			entityID, recordedAt string
			e                    store.JournalEntry
		)
		if err := rows.Scan(&e.ID, &entityID, &e.Mode, &e.BaseRevision, &e.Summary, &recordedAt); err != nil {
			return nil, err
		}
		if e.EntityID, err = dm.ParseEntityID(entityID); err != nil {
			return nil, fmt.Errorf("journal entity ID %q: %w", entityID, err)
		}
		if e.RecordedAt, err = parseTime(recordedAt); err != nil {
			return nil, fmt.Errorf("recorded_at of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
