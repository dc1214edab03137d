package script

import (
	"fmt"
	"maps"
	"slices"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/update"
)

// Build replays s through the update builder for its entity kind. With a
// nil base the update is blind; otherwise base must be a revision of the
// same kind and is used to validate every change.
func Build(s *Script, base dm.EntityDocument) (update.EntityUpdate, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: script", dm.ErrMissingArgument)
	}
	id, err := s.EntityID()
	if err != nil {
		return nil, err
	}
	if err := s.checkFields(id.Kind()); err != nil {
		return nil, err
	}
	if base != nil && base.EntityID().Kind() != id.Kind() {
		return nil, fmt.Errorf("%w: %s revision given for %s", dm.ErrEntityKindMismatch, base.EntityID().Kind(), id)
	}
	if base != nil && base.EntityID() != id {
		return nil, fmt.Errorf("%w: revision of %s given for %s", dm.ErrEntityIDMismatch, base.EntityID(), id)
	}
	switch id.Kind() {
	case dm.KindItem:
		return asEntity(s.buildItem(id, base))
	case dm.KindProperty:
		return asEntity(s.buildProperty(id, base))
	case dm.KindLexeme:
		return asEntity(s.buildLexeme(id, base))
	case dm.KindForm:
		return asEntity(s.buildForm(id, base))
	default:
		return asEntity(s.buildSense(id, base))
	}
}

func asEntity(u update.EntityUpdate, err error) (update.EntityUpdate, error) {
	if err != nil {
		return nil, err
	}
	return u, nil
}

// baseAs returns base as the document type D.
func baseAs[D dm.EntityDocument](base dm.EntityDocument, id dm.EntityID) (D, error) {
	doc, ok := base.(D)
	if !ok {
		var zero D
		return zero, fmt.Errorf("%w: base revision %T cannot validate %s", dm.ErrEntityKindMismatch, base, id)
	}
	return doc, nil
}

func (s *Script) checkFields(kind dm.EntityKind) error {
	termed := kind == dm.KindItem || kind == dm.KindProperty
	fields := []struct {
		name    string
		present bool
		allowed bool
	}{
		{"labels", s.Labels != nil, termed},
		{"descriptions", s.Descriptions != nil, termed},
		{"aliases", len(s.Aliases) > 0, termed},
		{"lemmas", s.Lemmas != nil, kind == dm.KindLexeme},
		{"lexical_category", s.LexicalCategory != "", kind == dm.KindLexeme},
		{"language", s.Language != "", kind == dm.KindLexeme},
		{"forms", s.Forms != nil, kind == dm.KindLexeme},
		{"senses", s.Senses != nil, kind == dm.KindLexeme},
		{"representations", s.Representations != nil, kind == dm.KindForm},
		{"grammatical_features", s.GrammaticalFeatures != nil, kind == dm.KindForm},
		{"glosses", s.Glosses != nil, kind == dm.KindSense},
	}
	for _, f := range fields {
		if f.present && !f.allowed {
			return fmt.Errorf("%w: %s does not apply to a %s", ErrInvalidScript, f.name, kind)
		}
	}
	return nil
}

func (s *Script) buildItem(id dm.EntityID, base dm.EntityDocument) (*update.ItemUpdate, error) {
	var b *update.ItemBuilder
	var err error
	if base == nil {
		b, err = update.ItemBuilderForID(id)
	} else {
		var doc dm.ItemDocument
		if doc, err = baseAs[dm.ItemDocument](base, id); err != nil {
			return nil, err
		}
		b, err = update.ItemBuilderForRevision(doc)
	}
	if err != nil {
		return nil, err
	}
	if err := s.applyTermed(b, id); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (s *Script) buildProperty(id dm.EntityID, base dm.EntityDocument) (*update.PropertyUpdate, error) {
	var b *update.PropertyBuilder
	var err error
	if base == nil {
		b, err = update.PropertyBuilderForID(id)
	} else {
		var doc dm.PropertyDocument
		if doc, err = baseAs[dm.PropertyDocument](base, id); err != nil {
			return nil, err
		}
		b, err = update.PropertyBuilderForRevision(doc)
	}
	if err != nil {
		return nil, err
	}
	if err := s.applyTermed(b, id); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (s *Script) buildForm(id dm.EntityID, base dm.EntityDocument) (*update.FormUpdate, error) {
	var b *update.FormBuilder
	var err error
	if base == nil {
		b, err = update.FormBuilderForID(id)
	} else {
		var doc dm.FormDocument
		if doc, err = baseAs[dm.FormDocument](base, id); err != nil {
			return nil, err
		}
		b, err = update.FormBuilderForRevision(doc)
	}
	if err != nil {
		return nil, err
	}
	if err := s.applyStatements(b, id); err != nil {
		return nil, err
	}
	if err := applyTerms(s.Representations, b.UpdateRepresentations); err != nil {
		return nil, err
	}
	if s.GrammaticalFeatures != nil {
		features, err := parseItems(*s.GrammaticalFeatures)
		if err != nil {
			return nil, fmt.Errorf("grammatical features: %w", err)
		}
		if err := b.SetGrammaticalFeatures(features); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func (s *Script) buildSense(id dm.EntityID, base dm.EntityDocument) (*update.SenseUpdate, error) {
	var b *update.SenseBuilder
	var err error
	if base == nil {
		b, err = update.SenseBuilderForID(id)
	} else {
		var doc dm.SenseDocument
		if doc, err = baseAs[dm.SenseDocument](base, id); err != nil {
			return nil, err
		}
		b, err = update.SenseBuilderForRevision(doc)
	}
	if err != nil {
		return nil, err
	}
	if err := s.applyStatements(b, id); err != nil {
		return nil, err
	}
	if err := applyTerms(s.Glosses, b.UpdateGlosses); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (s *Script) buildLexeme(id dm.EntityID, base dm.EntityDocument) (*update.LexemeUpdate, error) {
	var b *update.LexemeBuilder
	var err error
	if base == nil {
		b, err = update.LexemeBuilderForID(id)
	} else {
		var doc dm.LexemeDocument
		if doc, err = baseAs[dm.LexemeDocument](base, id); err != nil {
			return nil, err
		}
		b, err = update.LexemeBuilderForRevision(doc)
	}
	if err != nil {
		return nil, err
	}
	if err := s.applyStatements(b, id); err != nil {
		return nil, err
	}
	if err := applyTerms(s.Lemmas, b.UpdateLemmas); err != nil {
		return nil, err
	}
	if s.LexicalCategory != "" {
		category, err := dm.NewItemID(s.LexicalCategory)
		if err != nil {
			return nil, fmt.Errorf("lexical category: %w", err)
		}
		if err := b.SetLexicalCategory(category); err != nil {
			return nil, err
		}
	}
	if s.Language != "" {
		language, err := dm.NewItemID(s.Language)
		if err != nil {
			return nil, fmt.Errorf("language: %w", err)
		}
		if err := b.SetLanguage(language); err != nil {
			return nil, err
		}
	}
	if err := s.applyForms(b); err != nil {
		return nil, err
	}
	if err := s.applySenses(b); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (s *Script) applyForms(b *update.LexemeBuilder) error {
	if s.Forms == nil {
		return nil
	}
	for _, spec := range s.Forms.Add {
		form, err := spec.decodeForm(dm.EntityID{})
		if err != nil {
			return err
		}
		if err := b.AddForm(form); err != nil {
			return err
		}
	}
	for i := range s.Forms.Update {
		nested, err := nestedUpdate[*update.FormUpdate](&s.Forms.Update[i], dm.KindForm)
		if err != nil {
			return err
		}
		if err := b.UpdateForm(nested); err != nil {
			return err
		}
	}
	for _, raw := range s.Forms.Remove {
		id, err := dm.NewFormID(raw)
		if err != nil {
			return err
		}
		if err := b.RemoveForm(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Script) applySenses(b *update.LexemeBuilder) error {
	if s.Senses == nil {
		return nil
	}
	for _, spec := range s.Senses.Add {
		sense, err := spec.decodeSense(dm.EntityID{})
		if err != nil {
			return err
		}
		if err := b.AddSense(sense); err != nil {
			return err
		}
	}
	for i := range s.Senses.Update {
		nested, err := nestedUpdate[*update.SenseUpdate](&s.Senses.Update[i], dm.KindSense)
		if err != nil {
			return err
		}
		if err := b.UpdateSense(nested); err != nil {
			return err
		}
	}
	for _, raw := range s.Senses.Remove {
		id, err := dm.NewSenseID(raw)
		if err != nil {
			return err
		}
		if err := b.RemoveSense(id); err != nil {
			return err
		}
	}
	return nil
}

// nestedUpdate builds a blind form or sense update from a nested script.
// The enclosing lexeme builder validates it against its own base.
func nestedUpdate[U update.EntityUpdate](s *Script, kind dm.EntityKind) (U, error) {
	var zero U
	id, err := s.EntityID()
	if err != nil {
		return zero, err
	}
	if id.Kind() != kind {
		return zero, fmt.Errorf("%w: nested script for %s is not a %s", dm.ErrEntityKindMismatch, id, kind)
	}
	if s.Base {
		return zero, fmt.Errorf("%w: nested %s scripts use the lexeme's base", ErrInvalidScript, kind)
	}
	u, err := Build(s, nil)
	if err != nil {
		return zero, err
	}
	return u.(U), nil
}

// statementUpdater is implemented by every entity builder.
type statementUpdater interface {
	UpdateStatements(update.StatementUpdate) error
}

// termedUpdater is implemented by item and property builders.
type termedUpdater interface {
	statementUpdater
	UpdateLabels(update.TermUpdate) error
	UpdateDescriptions(update.TermUpdate) error
	UpdateAliases(language string, u update.AliasUpdate) error
}

func (s *Script) applyStatements(b statementUpdater, subject dm.EntityID) error {
	if s.Statements == nil {
		return nil
	}
	u, err := s.Statements.build(subject)
	if err != nil {
		return err
	}
	return b.UpdateStatements(u)
}

func (s *Script) applyTermed(b termedUpdater, id dm.EntityID) error {
	if err := s.applyStatements(b, id); err != nil {
		return err
	}
	if err := applyTerms(s.Labels, b.UpdateLabels); err != nil {
		return err
	}
	if err := applyTerms(s.Descriptions, b.UpdateDescriptions); err != nil {
		return err
	}
	for _, lang := range slices.Sorted(maps.Keys(s.Aliases)) {
		u, err := s.Aliases[lang].build(lang)
		if err != nil {
			return err
		}
		if err := b.UpdateAliases(lang, u); err != nil {
			return err
		}
	}
	return nil
}

// build returns the term changes as an update. Removals apply after sets.
func (c *TermChanges) build() (update.TermUpdate, error) {
	b := update.NewTermBuilder()
	for _, lang := range slices.Sorted(maps.Keys(c.Set)) {
		if err := b.Set(dm.NewTerm(lang, c.Set[lang])); err != nil {
			return update.TermUpdate{}, err
		}
	}
	for _, lang := range c.Remove {
		if err := b.Remove(lang); err != nil {
			return update.TermUpdate{}, err
		}
	}
	return b.Build(), nil
}

// applyTerms builds c, if given, and hands it to apply.
func applyTerms(c *TermChanges, apply func(update.TermUpdate) error) error {
	if c == nil {
		return nil
	}
	u, err := c.build()
	if err != nil {
		return err
	}
	return apply(u)
}

func (c AliasChanges) build(lang string) (update.AliasUpdate, error) {
	b := update.NewAliasBuilder()
	if c.Recreate != nil {
		if err := b.Recreate(termList(lang, *c.Recreate)); err != nil {
			return update.AliasUpdate{}, err
		}
	}
	for _, text := range c.Add {
		if err := b.Add(dm.NewTerm(lang, text)); err != nil {
			return update.AliasUpdate{}, err
		}
	}
	for _, text := range c.Remove {
		if err := b.Remove(dm.NewTerm(lang, text)); err != nil {
			return update.AliasUpdate{}, err
		}
	}
	return b.Build(), nil
}

func (c *StatementChanges) build(subject dm.EntityID) (update.StatementUpdate, error) {
	b := update.NewStatementBuilder()
	for _, spec := range c.Add {
		st, err := spec.decode(subject)
		if err != nil {
			return update.StatementUpdate{}, err
		}
		if err := b.Add(st); err != nil {
			return update.StatementUpdate{}, err
		}
	}
	for _, spec := range c.Replace {
		st, err := spec.decode(subject)
		if err != nil {
			return update.StatementUpdate{}, err
		}
		if err := b.Replace(st); err != nil {
			return update.StatementUpdate{}, err
		}
	}
	for _, id := range c.Remove {
		if err := b.Remove(id); err != nil {
			return update.StatementUpdate{}, err
		}
	}
	return b.Build(), nil
}
