package update

import (
	"fmt"
	"slices"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// LexemeUpdate is an immutable change to a lexeme, including changes to its
// forms and senses.
type LexemeUpdate struct {
	entityCore
	lemmas          TermUpdate
	lexicalCategory Option[dm.EntityID]
	language        Option[dm.EntityID]
	addedForms      []dm.FormDocument
	forms           changes[*FormUpdate]
	addedSenses     []dm.SenseDocument
	senses          changes[*SenseUpdate]
}

// Lemmas returns the lemma changes.
func (u *LexemeUpdate) Lemmas() TermUpdate { return u.lemmas }

// LexicalCategory returns the new lexical category and whether it changes.
func (u *LexemeUpdate) LexicalCategory() (dm.EntityID, bool) { return u.lexicalCategory.Get() }

// Language returns the new language and whether it changes.
func (u *LexemeUpdate) Language() (dm.EntityID, bool) { return u.language.Get() }

// AddedForms returns the new forms in insertion order. Their IDs are zero.
func (u *LexemeUpdate) AddedForms() []dm.FormDocument { return slices.Clone(u.addedForms) }

// UpdatedForms returns the form updates keyed by form ID.
func (u *LexemeUpdate) UpdatedForms() map[dm.EntityID]*FormUpdate {
	out := make(map[dm.EntityID]*FormUpdate, len(u.forms.modified))
	for _, f := range u.forms.modified {
		out[f.EntityID()] = f
	}
	return out
}

// RemovedForms returns the IDs of forms to delete, sorted.
func (u *LexemeUpdate) RemovedForms() []dm.EntityID {
	return u.nestedIDs(dm.KindForm, u.forms.removedKeys())
}

// AddedSenses returns the new senses in insertion order. Their IDs are zero.
func (u *LexemeUpdate) AddedSenses() []dm.SenseDocument { return slices.Clone(u.addedSenses) }

// UpdatedSenses returns the sense updates keyed by sense ID.
func (u *LexemeUpdate) UpdatedSenses() map[dm.EntityID]*SenseUpdate {
	out := make(map[dm.EntityID]*SenseUpdate, len(u.senses.modified))
	for _, s := range u.senses.modified {
		out[s.EntityID()] = s
	}
	return out
}

// RemovedSenses returns the IDs of senses to delete, sorted.
func (u *LexemeUpdate) RemovedSenses() []dm.EntityID {
	return u.nestedIDs(dm.KindSense, u.senses.removedKeys())
}

func (u *LexemeUpdate) nestedIDs(kind dm.EntityKind, keys []string) []dm.EntityID {
	ids := make([]dm.EntityID, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, nestedID(kind, key, u.entityID.SiteIRI()))
	}
	return ids
}

// IsEmpty reports whether the update changes nothing.
func (u *LexemeUpdate) IsEmpty() bool {
	return u.statements.IsEmpty() && u.lemmas.IsEmpty() &&
		!u.lexicalCategory.IsSet() && !u.language.IsSet() &&
		len(u.addedForms) == 0 && u.forms.isEmpty() &&
		len(u.addedSenses) == 0 && u.senses.isEmpty()
}

func (*LexemeUpdate) sealed() {}

// nestedID rebuilds a form or sense ID from a key that was validated when
// it was recorded.
func nestedID(kind dm.EntityKind, key, site string) dm.EntityID {
	id, _ := dm.NewEntityID(kind, key)
	return id.WithSite(site)
}

// LexemeBuilder accumulates changes to one lexeme and its forms and senses.
type LexemeBuilder struct {
	entityBuilder
	// base is nil for blind builders.
	base            *dm.LexemeDocument
	lemmas          *TermBuilder
	lexicalCategory Option[dm.EntityID]
	language        Option[dm.EntityID]
	addedForms      []dm.FormDocument
	forms           changes[*FormUpdate]
	addedSenses     []dm.SenseDocument
	senses          changes[*SenseUpdate]
}

// LexemeBuilderForID returns a blind builder for the lexeme id.
func LexemeBuilderForID(id dm.EntityID) (*LexemeBuilder, error) {
	eb, err := newEntityBuilder(dm.KindLexeme, id, nil)
	if err != nil {
		return nil, err
	}
	return &LexemeBuilder{entityBuilder: eb, lemmas: NewTermBuilder()}, nil
}

// LexemeBuilderForRevision returns a builder validated against doc, whose
// ID must be set. Form and sense updates are validated against the forms
// and senses of doc.
func LexemeBuilderForRevision(doc dm.LexemeDocument) (*LexemeBuilder, error) {
	eb, err := newEntityBuilder(dm.KindLexeme, doc.ID, doc)
	if err != nil {
		return nil, err
	}
	lemmas, err := TermBuilderFor(doc.Lemmas)
	if err != nil {
		return nil, err
	}
	for _, f := range doc.Forms {
		if f.ID.LexemeID() != doc.ID {
			return nil, fmt.Errorf("%w: form %s listed in %s", dm.ErrEntityIDMismatch, f.ID, doc.ID)
		}
	}
	for _, s := range doc.Senses {
		if s.ID.LexemeID() != doc.ID {
			return nil, fmt.Errorf("%w: sense %s listed in %s", dm.ErrEntityIDMismatch, s.ID, doc.ID)
		}
	}
	return &LexemeBuilder{entityBuilder: eb, base: &doc, lemmas: lemmas}, nil
}

// UpdateLemmas merges u into the lemma changes held so far.
func (b *LexemeBuilder) UpdateLemmas(u TermUpdate) error {
	return b.lemmas.Apply(u)
}

// SetLexicalCategory changes the lexical category, which must be an item.
func (b *LexemeBuilder) SetLexicalCategory(category dm.EntityID) error {
	if err := checkItem("lexical category", category); err != nil {
		return err
	}
	if b.base != nil && b.base.LexicalCategory == category {
		b.lexicalCategory = None[dm.EntityID]()
		return nil
	}
	b.lexicalCategory = Some(category)
	return nil
}

// SetLanguage changes the language of the lexeme, which must be an item.
func (b *LexemeBuilder) SetLanguage(language dm.EntityID) error {
	if err := checkItem("language", language); err != nil {
		return err
	}
	if b.base != nil && b.base.Language == language {
		b.language = None[dm.EntityID]()
		return nil
	}
	b.language = Some(language)
	return nil
}

func checkItem(what string, id dm.EntityID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: %s", dm.ErrMissingArgument, what)
	}
	if id.Kind() != dm.KindItem {
		return fmt.Errorf("%w: %s %s is not an item", dm.ErrEntityKindMismatch, what, id)
	}
	return nil
}

// checkNested verifies that id is a form or sense of this lexeme.
func (b *LexemeBuilder) checkNested(kind dm.EntityKind, id dm.EntityID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: %s ID", dm.ErrMissingArgument, kind)
	}
	if id.Kind() != kind {
		return fmt.Errorf("%w: %s is not a %s ID", dm.ErrEntityKindMismatch, id, kind)
	}
	if id.LexemeID() != b.entityID {
		return fmt.Errorf("%w: %s does not belong to %s", dm.ErrEntityIDMismatch, id, b.entityID)
	}
	return nil
}

// AddForm records a new form. The form's ID and revision are dropped; the
// server assigns them.
func (b *LexemeBuilder) AddForm(form dm.FormDocument) error {
	if _, err := TermBuilderFor(form.Representations); err != nil {
		return err
	}
	if len(form.Representations) == 0 {
		return fmt.Errorf("%w: representation of new form", dm.ErrMissingArgument)
	}
	if _, err := normalizeFeatures(form.GrammaticalFeatures); err != nil {
		return err
	}
	form.ID, form.RevisionID = dm.EntityID{}, 0
	b.addedForms = append(b.addedForms, form)
	return nil
}

// UpdateForm merges u into the changes held for its form. With a base, the
// form must exist there. Updating a form that is being removed fails.
func (b *LexemeBuilder) UpdateForm(u *FormUpdate) error {
	if u == nil {
		return fmt.Errorf("%w: form update", dm.ErrMissingArgument)
	}
	id := u.EntityID()
	if err := b.checkNested(dm.KindForm, id); err != nil {
		return err
	}
	if b.forms.isRemoved(id.ID()) {
		return fmt.Errorf("%w: form %s is being removed", dm.ErrInvalidArgument, id)
	}
	var fb *FormBuilder
	var err error
	if b.base != nil {
		doc, ok := b.base.Form(id)
		if !ok {
			return fmt.Errorf("%w: form %s", dm.ErrUnknownEntityID, id)
		}
		fb, err = FormBuilderForRevision(doc)
	} else {
		fb, err = FormBuilderForID(id)
	}
	if err != nil {
		return err
	}
	if pending, ok := b.forms.get(id.ID()); ok {
		if err := fb.Apply(pending); err != nil {
			return err
		}
	}
	if err := fb.Apply(u); err != nil {
		return err
	}
	if merged := fb.Build(); merged.IsEmpty() {
		b.forms.forget(id.ID())
	} else {
		b.forms.set(id.ID(), merged)
	}
	return nil
}

// RemoveForm deletes a form, discarding any pending update of it. With a
// base, the form must exist there.
func (b *LexemeBuilder) RemoveForm(id dm.EntityID) error {
	if err := b.checkNested(dm.KindForm, id); err != nil {
		return err
	}
	if b.base != nil {
		if _, ok := b.base.Form(id); !ok {
			return fmt.Errorf("%w: form %s", dm.ErrUnknownEntityID, id)
		}
	}
	b.forms.remove(id.ID())
	return nil
}

// AddSense records a new sense. The sense's ID and revision are dropped.
func (b *LexemeBuilder) AddSense(sense dm.SenseDocument) error {
	if _, err := TermBuilderFor(sense.Glosses); err != nil {
		return err
	}
	if len(sense.Glosses) == 0 {
		return fmt.Errorf("%w: gloss of new sense", dm.ErrMissingArgument)
	}
	sense.ID, sense.RevisionID = dm.EntityID{}, 0
	b.addedSenses = append(b.addedSenses, sense)
	return nil
}

// UpdateSense merges u into the changes held for its sense. With a base,
// the sense must exist there. Updating a sense that is being removed fails.
func (b *LexemeBuilder) UpdateSense(u *SenseUpdate) error {
	if u == nil {
		return fmt.Errorf("%w: sense update", dm.ErrMissingArgument)
	}
	id := u.EntityID()
	if err := b.checkNested(dm.KindSense, id); err != nil {
		return err
	}
	if b.senses.isRemoved(id.ID()) {
		return fmt.Errorf("%w: sense %s is being removed", dm.ErrInvalidArgument, id)
	}
	var sb *SenseBuilder
	var err error
	if b.base != nil {
		doc, ok := b.base.Sense(id)
		if !ok {
			return fmt.Errorf("%w: sense %s", dm.ErrUnknownEntityID, id)
		}
		sb, err = SenseBuilderForRevision(doc)
	} else {
		sb, err = SenseBuilderForID(id)
	}
	if err != nil {
		return err
	}
	if pending, ok := b.senses.get(id.ID()); ok {
		if err := sb.Apply(pending); err != nil {
			return err
		}
	}
	if err := sb.Apply(u); err != nil {
		return err
	}
	if merged := sb.Build(); merged.IsEmpty() {
		b.senses.forget(id.ID())
	} else {
		b.senses.set(id.ID(), merged)
	}
	return nil
}

// RemoveSense deletes a sense, discarding any pending update of it. With a
// base, the sense must exist there.
func (b *LexemeBuilder) RemoveSense(id dm.EntityID) error {
	if err := b.checkNested(dm.KindSense, id); err != nil {
		return err
	}
	if b.base != nil {
		if _, ok := b.base.Sense(id); !ok {
			return fmt.Errorf("%w: sense %s", dm.ErrUnknownEntityID, id)
		}
	}
	b.senses.remove(id.ID())
	return nil
}

// Apply folds every part of u into the builder.
func (b *LexemeBuilder) Apply(u *LexemeUpdate) error {
	if u == nil {
		return fmt.Errorf("%w: lexeme update", dm.ErrMissingArgument)
	}
	if err := b.checkTarget(u); err != nil {
		return err
	}
	next := b.clone()
	if err := next.apply(u); err != nil {
		return err
	}
	*b = *next
	return nil
}

func (b *LexemeBuilder) apply(u *LexemeUpdate) error {
	if err := b.UpdateStatements(u.statements); err != nil {
		return err
	}
	if err := b.UpdateLemmas(u.lemmas); err != nil {
		return err
	}
	if category, ok := u.lexicalCategory.Get(); ok {
		if err := b.SetLexicalCategory(category); err != nil {
			return err
		}
	}
	if language, ok := u.language.Get(); ok {
		if err := b.SetLanguage(language); err != nil {
			return err
		}
	}
	for _, f := range u.addedForms {
		if err := b.AddForm(f); err != nil {
			return err
		}
	}
	for _, key := range u.forms.modifiedKeys() {
		if err := b.UpdateForm(u.forms.modified[key]); err != nil {
			return err
		}
	}
	for _, id := range u.RemovedForms() {
		if err := b.RemoveForm(id); err != nil {
			return err
		}
	}
	for _, s := range u.addedSenses {
		if err := b.AddSense(s); err != nil {
			return err
		}
	}
	for _, key := range u.senses.modifiedKeys() {
		if err := b.UpdateSense(u.senses.modified[key]); err != nil {
			return err
		}
	}
	for _, id := range u.RemovedSenses() {
		if err := b.RemoveSense(id); err != nil {
			return err
		}
	}
	return nil
}

// Build returns the accumulated update. The builder stays usable.
func (b *LexemeBuilder) Build() *LexemeUpdate {
	return &LexemeUpdate{
		entityCore:      b.core(),
		lemmas:          b.lemmas.Build(),
		lexicalCategory: b.lexicalCategory,
		language:        b.language,
		addedForms:      slices.Clone(b.addedForms),
		forms:           b.forms.clone(),
		addedSenses:     slices.Clone(b.addedSenses),
		senses:          b.senses.clone(),
	}
}

func (b *LexemeBuilder) clone() *LexemeBuilder {
	next := *b
	next.entityBuilder = b.entityBuilder.clone()
	next.lemmas = b.lemmas.clone()
	next.addedForms = slices.Clone(b.addedForms)
	next.forms = b.forms.clone()
	next.addedSenses = slices.Clone(b.addedSenses)
	next.senses = b.senses.clone()
	return &next
}
