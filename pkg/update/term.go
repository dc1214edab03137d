package update

import (
	"fmt"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// TermUpdate is an immutable change to a language-keyed, single-valued term
// collection such as labels or descriptions. The zero value is the empty
// update.
type TermUpdate struct {
	changes changes[dm.MonolingualText]
}

// Modified returns the terms added or overwritten, keyed by language code.
func (u TermUpdate) Modified() map[string]dm.MonolingualText {
	return u.changes.modifiedCopy()
}

// Removed returns the language codes whose term is deleted, sorted.
func (u TermUpdate) Removed() []string {
	return u.changes.removedKeys()
}

// IsEmpty reports whether the update changes nothing.
func (u TermUpdate) IsEmpty() bool {
	return u.changes.isEmpty()
}

// TermBuilder accumulates term changes.
type TermBuilder struct {
	// base is nil for blind builders.
	base    map[string]dm.MonolingualText
	changes changes[dm.MonolingualText]
}

// NewTermBuilder returns a blind term builder.
func NewTermBuilder() *TermBuilder {
	return &TermBuilder{}
}

// TermBuilderFor returns a builder validated against the current terms,
// keyed by language code. Every key must match its term's language.
func TermBuilderFor(base map[string]dm.MonolingualText) (*TermBuilder, error) {
	b := &TermBuilder{base: make(map[string]dm.MonolingualText, len(base))}
	for lang, term := range base {
		if term.IsZero() {
			return nil, fmt.Errorf("%w: base term for %q", dm.ErrMissingArgument, lang)
		}
		if term.Language != lang {
			return nil, fmt.Errorf("%w: term %s listed under %q", dm.ErrLanguageMismatch, term, lang)
		}
		b.base[lang] = term
	}
	return b, nil
}

// Set adds or overwrites the term in its language, cancelling a pending
// removal. With a base, setting the value the base already has cancels any
// pending change instead.
func (b *TermBuilder) Set(term dm.MonolingualText) error {
	if term.IsZero() {
		return fmt.Errorf("%w: term", dm.ErrMissingArgument)
	}
	if term.Language == "" {
		return fmt.Errorf("%w: language code of term %q", dm.ErrMissingArgument, term.Text)
	}
	if b.base != nil {
		if original, ok := b.base[term.Language]; ok && original == term {
			b.changes.forget(term.Language)
			return nil
		}
	}
	b.changes.set(term.Language, term)
	return nil
}

// Remove deletes the term in the given language, cancelling a pending set.
// With a base, removing a language the base lacks only cancels pending
// changes.
func (b *TermBuilder) Remove(language string) error {
	if language == "" {
		return fmt.Errorf("%w: language code", dm.ErrMissingArgument)
	}
	if b.base != nil {
		if _, ok := b.base[language]; !ok {
			b.changes.forget(language)
			return nil
		}
	}
	b.changes.remove(language)
	return nil
}

// Apply folds u into the builder. Its modifications and removals override
// pending changes per language.
func (b *TermBuilder) Apply(u TermUpdate) error {
	next := b.clone()
	for _, lang := range u.changes.modifiedKeys() {
		if err := next.Set(u.changes.modified[lang]); err != nil {
			return err
		}
	}
	for _, lang := range u.changes.removedKeys() {
		if err := next.Remove(lang); err != nil {
			return err
		}
	}
	*b = *next
	return nil
}

// Build returns the accumulated update. The builder stays usable.
func (b *TermBuilder) Build() TermUpdate {
	return TermUpdate{changes: b.changes.clone()}
}

func (b *TermBuilder) clone() *TermBuilder {
	return &TermBuilder{base: b.base, changes: b.changes.clone()}
}
