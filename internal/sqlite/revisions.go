package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/wbedit/internal/script"
	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/store"
)

// PutRevision stores doc as the current snapshot of its entity, replacing
// any previous snapshot.
func (b *Backend) PutRevision(doc dm.EntityDocument) error {
	switch doc.(type) {
	case dm.ItemDocument, dm.PropertyDocument, dm.LexemeDocument, dm.FormDocument, dm.SenseDocument:
	default:
		return fmt.Errorf("%w: %T", store.ErrUnsupportedDocument, doc)
	}
	id := doc.EntityID()
	if id.IsZero() {
		return fmt.Errorf("%w: document ID", dm.ErrMissingArgument)
	}
	data, err := script.MarshalDocument(doc)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return store.ErrStoreDetached
	}

	_, err = b.db.Exec(`INSERT INTO revisions (entity_id, kind, revision, document, stored_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(entity_id) DO UPDATE SET
    kind = excluded.kind,
    revision = excluded.revision,
    document = excluded.document,
    stored_at = excluded.stored_at`,
		id.ID(), id.Kind().String(), doc.Revision(), string(data), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("store revision of %s: %w", id, err)
	}
	zap.S().Debugw("revision stored", "entity", id.ID(), "revision", doc.Revision())
	return nil
}

// GetRevision returns the stored snapshot of id. A form or sense without a
// snapshot of its own is looked up inside its lexeme.
func (b *Backend) GetRevision(id dm.EntityID) (dm.EntityDocument, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: entity ID", dm.ErrMissingArgument)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, store.ErrStoreDetached
	}

	doc, err := b.loadRevision(id)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return doc, err
	}
	if id.Kind() != dm.KindForm && id.Kind() != dm.KindSense {
		return nil, err
	}

	owner, lerr := b.loadRevision(id.LexemeID())
	if lerr != nil {
		if errors.Is(lerr, store.ErrNotFound) {
			return nil, err
		}
		return nil, lerr
	}
	lexeme, ok := owner.(dm.LexemeDocument)
	if !ok {
		return nil, fmt.Errorf("%w: %s is stored as %T", store.ErrUnsupportedDocument, id.LexemeID(), owner)
	}
	if id.Kind() == dm.KindForm {
		if form, ok := lexeme.Form(id); ok {
			return form, nil
		}
	} else if sense, ok := lexeme.Sense(id); ok {
		return sense, nil
	}
	return nil, err
}

// loadRevision reads and decodes one snapshot. The caller must hold b.mu.
func (b *Backend) loadRevision(id dm.EntityID) (dm.EntityDocument, error) {
	var data string
	err := b.db.QueryRow("SELECT document FROM revisions WHERE entity_id = ?", id.ID()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: revision of %s", store.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	doc, err := script.ParseDocument([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode stored revision of %s: %w", id, err)
	}
	return doc, nil
}

// ListRevisions describes every stored snapshot, ordered by entity ID.
func (b *Backend) ListRevisions() ([]store.RevisionInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, store.ErrStoreDetached
	}

	rows, err := b.db.Query("SELECT entity_id, kind, revision, stored_at FROM revisions ORDER BY entity_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []store.RevisionInfo
	for rows.Next() {
		var (
			entityID, kind, storedAt string
			info                     store.RevisionInfo
		)
		if err := rows.Scan(&entityID, &kind, &info.Revision, &storedAt); err != nil {
			return nil, err
		}
		if info.EntityID, err = dm.ParseEntityID(entityID); err != nil {
			return nil, fmt.Errorf("stored entity ID %q: %w", entityID, err)
		}
		if info.StoredAt, err = parseTime(storedAt); err != nil {
			return nil, fmt.Errorf("stored_at of %s: %w", entityID, err)
		}
		info.Kind = kind
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
