package update

import (
	"fmt"
	"slices"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// AliasUpdate is an immutable change to the aliases of one language. It
// either recreates the whole alias list or adds and removes individual
// aliases. The zero value is the empty update.
type AliasUpdate struct {
	language  string
	recreated Option[[]dm.MonolingualText]
	added     []dm.MonolingualText
	removed   []dm.MonolingualText
}

// Language returns the language of the aliases, or "" for an empty update.
func (u AliasUpdate) Language() string { return u.language }

// Recreated returns the new full alias list and whether the list is being
// recreated at all. An empty list with true removes every alias.
func (u AliasUpdate) Recreated() ([]dm.MonolingualText, bool) {
	list, ok := u.recreated.Get()
	return slices.Clone(list), ok
}

// Added returns aliases appended to the existing list.
func (u AliasUpdate) Added() []dm.MonolingualText { return slices.Clone(u.added) }

// Removed returns aliases deleted from the existing list.
func (u AliasUpdate) Removed() []dm.MonolingualText { return slices.Clone(u.removed) }

// IsEmpty reports whether the update changes nothing.
func (u AliasUpdate) IsEmpty() bool {
	return !u.recreated.IsSet() && len(u.added) == 0 && len(u.removed) == 0
}

// AliasBuilder accumulates alias changes for a single language.
type AliasBuilder struct {
	language string
	// base is nil for blind builders.
	base       []dm.MonolingualText
	recreating bool
	recreated  []dm.MonolingualText
	added      []dm.MonolingualText
	removed    []dm.MonolingualText
}

// NewAliasBuilder returns a blind alias builder. The first alias fixes the
// language.
func NewAliasBuilder() *AliasBuilder {
	return &AliasBuilder{}
}

// AliasBuilderFor returns a builder validated against the current aliases,
// which must all share one language. Duplicates are collapsed.
func AliasBuilderFor(base []dm.MonolingualText) (*AliasBuilder, error) {
	b := &AliasBuilder{base: []dm.MonolingualText{}}
	for _, alias := range base {
		if err := b.checkAlias(alias); err != nil {
			return nil, err
		}
		b.language = alias.Language
		if !slices.Contains(b.base, alias) {
			b.base = append(b.base, alias)
		}
	}
	return b, nil
}

// aliasBuilderForLanguage is AliasBuilderFor with the language fixed even
// when base is empty.
func aliasBuilderForLanguage(language string, base []dm.MonolingualText) (*AliasBuilder, error) {
	b, err := AliasBuilderFor(base)
	if err != nil {
		return nil, err
	}
	if err := b.checkLanguage(language); err != nil {
		return nil, err
	}
	b.language = language
	return b, nil
}

func (b *AliasBuilder) checkLanguage(language string) error {
	if b.language != "" && language != b.language {
		return fmt.Errorf("%w: alias in %q, update is for %q", dm.ErrLanguageMismatch, language, b.language)
	}
	return nil
}

func (b *AliasBuilder) checkAlias(alias dm.MonolingualText) error {
	if alias.IsZero() {
		return fmt.Errorf("%w: alias", dm.ErrMissingArgument)
	}
	if alias.Language == "" {
		return fmt.Errorf("%w: language code of alias %q", dm.ErrMissingArgument, alias.Text)
	}
	return b.checkLanguage(alias.Language)
}

// Add appends an alias. Adding an alias that is already present, or
// pending, changes nothing.
func (b *AliasBuilder) Add(alias dm.MonolingualText) error {
	if err := b.checkAlias(alias); err != nil {
		return err
	}
	b.language = alias.Language
	switch {
	case b.recreating:
		if !slices.Contains(b.recreated, alias) {
			b.recreated = append(b.recreated, alias)
		}
	case slices.Contains(b.removed, alias):
		b.removed = without(b.removed, alias)
		// Blind: the alias may not have existed before the removal.
		if b.base == nil && !slices.Contains(b.added, alias) {
			b.added = append(b.added, alias)
		}
	case b.base != nil && slices.Contains(b.base, alias):
	case !slices.Contains(b.added, alias):
		b.added = append(b.added, alias)
	}
	return nil
}

// Remove deletes an alias. With a base, removing an alias the base lacks
// only cancels a pending addition.
func (b *AliasBuilder) Remove(alias dm.MonolingualText) error {
	if err := b.checkAlias(alias); err != nil {
		return err
	}
	b.language = alias.Language
	switch {
	case b.recreating:
		b.recreated = without(b.recreated, alias)
	case slices.Contains(b.added, alias):
		b.added = without(b.added, alias)
		// Blind: the alias may have existed before the addition.
		if b.base == nil && !slices.Contains(b.removed, alias) {
			b.removed = append(b.removed, alias)
		}
	case b.base != nil && !slices.Contains(b.base, alias):
	case !slices.Contains(b.removed, alias):
		b.removed = append(b.removed, alias)
	}
	return nil
}

// Recreate replaces the whole alias list. Duplicates are collapsed. With a
// base, recreating exactly the base list cancels all pending changes.
func (b *AliasBuilder) Recreate(aliases []dm.MonolingualText) error {
	list := []dm.MonolingualText{}
	language := b.language
	for _, alias := range aliases {
		if alias.IsZero() || alias.Language == "" {
			return fmt.Errorf("%w: alias", dm.ErrMissingArgument)
		}
		if language != "" && alias.Language != language {
			return fmt.Errorf("%w: alias in %q, update is for %q", dm.ErrLanguageMismatch, alias.Language, language)
		}
		language = alias.Language
		if !slices.Contains(list, alias) {
			list = append(list, alias)
		}
	}
	b.language = language
	b.added, b.removed = nil, nil
	if b.base != nil && slices.Equal(list, b.base) {
		b.recreating, b.recreated = false, nil
		return nil
	}
	b.recreating, b.recreated = true, list
	return nil
}

// Apply folds u into the builder.
func (b *AliasBuilder) Apply(u AliasUpdate) error {
	next := b.clone()
	if u.language != "" {
		if err := next.checkLanguage(u.language); err != nil {
			return err
		}
	}
	if list, ok := u.recreated.Get(); ok {
		if err := next.Recreate(list); err != nil {
			return err
		}
	}
	for _, alias := range u.added {
		if err := next.Add(alias); err != nil {
			return err
		}
	}
	for _, alias := range u.removed {
		if err := next.Remove(alias); err != nil {
			return err
		}
	}
	*b = *next
	return nil
}

// Build returns the accumulated update. The builder stays usable.
func (b *AliasBuilder) Build() AliasUpdate {
	u := AliasUpdate{language: b.language}
	if b.recreating {
		if b.base != nil && slices.Equal(b.recreated, b.base) {
			return AliasUpdate{}
		}
		u.recreated = Some(slices.Clone(b.recreated))
		return u
	}
	u.added = slices.Clone(b.added)
	u.removed = slices.Clone(b.removed)
	if u.IsEmpty() {
		u.language = ""
	}
	return u
}

func (b *AliasBuilder) clone() *AliasBuilder {
	return &AliasBuilder{
		language:   b.language,
		base:       b.base,
		recreating: b.recreating,
		recreated:  slices.Clone(b.recreated),
		added:      slices.Clone(b.added),
		removed:    slices.Clone(b.removed),
	}
}

func without(list []dm.MonolingualText, alias dm.MonolingualText) []dm.MonolingualText {
	return slices.DeleteFunc(slices.Clone(list), func(a dm.MonolingualText) bool { return a == alias })
}
