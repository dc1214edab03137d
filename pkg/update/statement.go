package update

import (
	"fmt"
	"slices"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// StatementUpdate is an immutable set of statement changes. The zero value
// is the empty update.
type StatementUpdate struct {
	added   []dm.Statement
	changes changes[dm.Statement]
}

// Added returns the statements to create, in insertion order. Their IDs are
// always empty.
func (u StatementUpdate) Added() []dm.Statement {
	return slices.Clone(u.added)
}

// Replaced returns the statements to overwrite, keyed by statement ID.
func (u StatementUpdate) Replaced() map[string]dm.Statement {
	return u.changes.modifiedCopy()
}

// Removed returns the IDs of statements to delete, sorted.
func (u StatementUpdate) Removed() []string {
	return u.changes.removedKeys()
}

// IsEmpty reports whether the update changes nothing.
func (u StatementUpdate) IsEmpty() bool {
	return len(u.added) == 0 && u.changes.isEmpty()
}

// Subject returns the subject shared by all added and replaced statements.
// It reports false when the update carries no statements.
func (u StatementUpdate) Subject() (dm.EntityID, bool) {
	if len(u.added) > 0 {
		return u.added[0].Subject, true
	}
	if keys := u.changes.modifiedKeys(); len(keys) > 0 {
		return u.changes.modified[keys[0]].Subject, true
	}
	return dm.EntityID{}, false
}

// StatementBuilder accumulates statement changes. Create one with
// NewStatementBuilder for a blind update, or with StatementBuilderFor or
// StatementBuilderForGroups to validate against existing statements.
type StatementBuilder struct {
	subject dm.EntityID
	// base is nil for blind builders.
	base    map[string]dm.Statement
	added   []dm.Statement
	changes changes[dm.Statement]
}

// NewStatementBuilder returns a blind builder. The first statement added or
// replaced fixes the subject of the update.
func NewStatementBuilder() *StatementBuilder {
	return &StatementBuilder{}
}

// StatementBuilderFor returns a builder validated against existing
// statements. Each must have a subject and a unique, non-empty ID, and all
// must share one subject. The existing statements are not part of the
// built update.
func StatementBuilderFor(existing []dm.Statement) (*StatementBuilder, error) {
	b := &StatementBuilder{base: make(map[string]dm.Statement, len(existing))}
	for _, s := range existing {
		if s.IsZero() {
			return nil, fmt.Errorf("%w: base statement", dm.ErrMissingArgument)
		}
		if s.Subject.IsZero() {
			return nil, fmt.Errorf("%w: base statement %q", dm.ErrMissingSubject, s.ID)
		}
		if s.ID == "" {
			return nil, fmt.Errorf("%w: base statement about %s", dm.ErrMissingStatementID, s.Subject)
		}
		if _, dup := b.base[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", dm.ErrDuplicateStatementID, s.ID)
		}
		if !b.subject.IsZero() && s.Subject != b.subject {
			return nil, fmt.Errorf("%w: base statement %q is about %s, not %s", dm.ErrSubjectMismatch, s.ID, s.Subject, b.subject)
		}
		b.subject = s.Subject
		b.base[s.ID] = s
	}
	return b, nil
}

// StatementBuilderForGroups is StatementBuilderFor over grouped statements.
func StatementBuilderForGroups(groups []dm.StatementGroup) (*StatementBuilder, error) {
	return StatementBuilderFor(dm.FlattenGroups(groups))
}

// pin fixes the subject of the builder ahead of any statement.
func (b *StatementBuilder) pin(subject dm.EntityID) error {
	if !b.subject.IsZero() && b.subject != subject {
		return fmt.Errorf("%w: statements are about %s, not %s", dm.ErrSubjectMismatch, b.subject, subject)
	}
	b.subject = subject
	return nil
}

func (b *StatementBuilder) checkSubject(s dm.Statement) error {
	if s.Subject.IsZero() {
		return fmt.Errorf("%w: statement %q", dm.ErrMissingSubject, s.ID)
	}
	if !b.subject.IsZero() && s.Subject != b.subject {
		return fmt.Errorf("%w: statement is about %s, update is about %s", dm.ErrSubjectMismatch, s.Subject, b.subject)
	}
	return nil
}

// Add records a new statement. Any ID on s is stripped; the server assigns
// one. Adding the same statement twice adds it twice.
func (b *StatementBuilder) Add(s dm.Statement) error {
	if s.IsZero() {
		return fmt.Errorf("%w: statement", dm.ErrMissingArgument)
	}
	if err := b.checkSubject(s); err != nil {
		return err
	}
	b.subject = s.Subject
	b.added = append(b.added, s.WithID(""))
	return nil
}

// Replace overwrites the statement with the ID carried by s, cancelling any
// pending removal of that ID. With a base, the ID must exist there, and
// replacing with a value equal to the base statement cancels any pending
// change instead.
func (b *StatementBuilder) Replace(s dm.Statement) error {
	if s.IsZero() {
		return fmt.Errorf("%w: statement", dm.ErrMissingArgument)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: cannot replace a statement about %s without an ID", dm.ErrMissingStatementID, s.Subject)
	}
	if err := b.checkSubject(s); err != nil {
		return err
	}
	if b.base != nil {
		original, ok := b.base[s.ID]
		if !ok {
			return fmt.Errorf("%w: %q", dm.ErrUnknownStatementID, s.ID)
		}
		if dm.StatementsEqual(original, s) {
			b.changes.forget(s.ID)
			return nil
		}
	}
	b.subject = s.Subject
	b.changes.set(s.ID, s)
	return nil
}

// Remove deletes the statement with the given ID, discarding any pending
// replacement. With a base, the ID must exist there.
func (b *StatementBuilder) Remove(id string) error {
	if id == "" {
		return fmt.Errorf("%w: statement ID", dm.ErrMissingArgument)
	}
	if b.base != nil {
		if _, ok := b.base[id]; !ok {
			return fmt.Errorf("%w: %q", dm.ErrUnknownStatementID, id)
		}
	}
	b.changes.remove(id)
	return nil
}

// Apply folds u into the builder as if its additions, replacements and
// removals were issued one by one. Additions keep their order after the
// builder's own. Either all of u applies or none of it does.
func (b *StatementBuilder) Apply(u StatementUpdate) error {
	next := b.clone()
	for _, s := range u.added {
		if err := next.Add(s); err != nil {
			return err
		}
	}
	for _, id := range u.changes.modifiedKeys() {
		if err := next.Replace(u.changes.modified[id]); err != nil {
			return err
		}
	}
	for _, id := range u.changes.removedKeys() {
		if err := next.Remove(id); err != nil {
			return err
		}
	}
	*b = *next
	return nil
}

// Build returns the accumulated update. The builder stays usable.
func (b *StatementBuilder) Build() StatementUpdate {
	return StatementUpdate{added: slices.Clone(b.added), changes: b.changes.clone()}
}

// clone copies the builder. The base map is shared; it is never written
// after construction.
func (b *StatementBuilder) clone() *StatementBuilder {
	return &StatementBuilder{
		subject: b.subject,
		base:    b.base,
		added:   slices.Clone(b.added),
		changes: b.changes.clone(),
	}
}
