package update

import (
	"cmp"
	"fmt"
	"slices"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// FormUpdate is an immutable change to a lexeme form.
type FormUpdate struct {
	entityCore
	representations     TermUpdate
	grammaticalFeatures Option[[]dm.EntityID]
}

// Representations returns the representation changes.
func (u *FormUpdate) Representations() TermUpdate { return u.representations }

// GrammaticalFeatures returns the new feature set and whether it changes.
// An empty set with true clears every feature.
func (u *FormUpdate) GrammaticalFeatures() ([]dm.EntityID, bool) {
	features, ok := u.grammaticalFeatures.Get()
	return slices.Clone(features), ok
}

// IsEmpty reports whether the update changes nothing.
func (u *FormUpdate) IsEmpty() bool {
	return u.representations.IsEmpty() && !u.grammaticalFeatures.IsSet() && u.statements.IsEmpty()
}

func (*FormUpdate) sealed() {}

// FormBuilder accumulates changes to one form.
type FormBuilder struct {
	entityBuilder
	representations *TermBuilder
	features        Option[[]dm.EntityID]
	// baseFeatures is nil for blind builders.
	baseFeatures []dm.EntityID
}

// FormBuilderForID returns a blind builder for the form id.
func FormBuilderForID(id dm.EntityID) (*FormBuilder, error) {
	eb, err := newEntityBuilder(dm.KindForm, id, nil)
	if err != nil {
		return nil, err
	}
	return &FormBuilder{entityBuilder: eb, representations: NewTermBuilder()}, nil
}

// FormBuilderForRevision returns a builder validated against doc, whose ID
// must be set.
func FormBuilderForRevision(doc dm.FormDocument) (*FormBuilder, error) {
	eb, err := newEntityBuilder(dm.KindForm, doc.ID, doc)
	if err != nil {
		return nil, err
	}
	representations, err := TermBuilderFor(doc.Representations)
	if err != nil {
		return nil, err
	}
	features, err := normalizeFeatures(doc.GrammaticalFeatures)
	if err != nil {
		return nil, err
	}
	return &FormBuilder{entityBuilder: eb, representations: representations, baseFeatures: features}, nil
}

// UpdateRepresentations merges u into the representation changes held so
// far.
func (b *FormBuilder) UpdateRepresentations(u TermUpdate) error {
	return b.representations.Apply(u)
}

// SetGrammaticalFeatures replaces the feature set. Every feature must be an
// item ID; duplicates are collapsed. With a base, setting the base's own
// set cancels the change.
func (b *FormBuilder) SetGrammaticalFeatures(features []dm.EntityID) error {
	normalized, err := normalizeFeatures(features)
	if err != nil {
		return err
	}
	if b.baseFeatures != nil && slices.Equal(normalized, b.baseFeatures) {
		b.features = None[[]dm.EntityID]()
		return nil
	}
	b.features = Some(normalized)
	return nil
}

// Apply folds every part of u into the builder.
func (b *FormBuilder) Apply(u *FormUpdate) error {
	if u == nil {
		return fmt.Errorf("%w: form update", dm.ErrMissingArgument)
	}
	if err := b.checkTarget(u); err != nil {
		return err
	}
	next := b.clone()
	if err := next.UpdateStatements(u.statements); err != nil {
		return err
	}
	if err := next.UpdateRepresentations(u.representations); err != nil {
		return err
	}
	if features, ok := u.grammaticalFeatures.Get(); ok {
		if err := next.SetGrammaticalFeatures(features); err != nil {
			return err
		}
	}
	*b = *next
	return nil
}

// Build returns the accumulated update. The builder stays usable.
func (b *FormBuilder) Build() *FormUpdate {
	u := &FormUpdate{entityCore: b.core(), representations: b.representations.Build()}
	if features, ok := b.features.Get(); ok {
		u.grammaticalFeatures = Some(slices.Clone(features))
	}
	return u
}

func (b *FormBuilder) clone() *FormBuilder {
	return &FormBuilder{
		entityBuilder:   b.entityBuilder.clone(),
		representations: b.representations.clone(),
		features:        b.features,
		baseFeatures:    b.baseFeatures,
	}
}

// normalizeFeatures checks that every feature is an item and returns the
// set sorted by ID, never nil.
func normalizeFeatures(features []dm.EntityID) ([]dm.EntityID, error) {
	out := make([]dm.EntityID, 0, len(features))
	for _, f := range features {
		if f.IsZero() {
			return nil, fmt.Errorf("%w: grammatical feature", dm.ErrMissingArgument)
		}
		if f.Kind() != dm.KindItem {
			return nil, fmt.Errorf("%w: grammatical feature %s is not an item", dm.ErrEntityKindMismatch, f)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b dm.EntityID) int { return cmp.Compare(a.ID(), b.ID()) })
	return out, nil
}
