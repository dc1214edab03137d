package sqlite

// Schema DDL for the revision store.
const (
	createRevisions = `CREATE TABLE IF NOT EXISTS revisions (
    entity_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    revision INTEGER NOT NULL,
    document TEXT NOT NULL,
    stored_at TEXT NOT NULL
);`

	createJournal = `CREATE TABLE IF NOT EXISTS journal (
    journal_id TEXT PRIMARY KEY,
    entity_id TEXT NOT NULL,
    mode TEXT NOT NULL,
    base_revision INTEGER NOT NULL,
    summary TEXT NOT NULL,
    recorded_at TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxJournalEntity = `CREATE INDEX IF NOT EXISTS idx_journal_entity ON journal(entity_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createRevisions,
	createJournal,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxJournalEntity,
}
