package update

import (
	"fmt"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// SenseUpdate is an immutable change to a lexeme sense.
type SenseUpdate struct {
	entityCore
	glosses TermUpdate
}

// Glosses returns the gloss changes.
func (u *SenseUpdate) Glosses() TermUpdate { return u.glosses }

// IsEmpty reports whether the update changes nothing.
func (u *SenseUpdate) IsEmpty() bool {
	return u.glosses.IsEmpty() && u.statements.IsEmpty()
}

func (*SenseUpdate) sealed() {}

// SenseBuilder accumulates changes to one sense.
type SenseBuilder struct {
	entityBuilder
	glosses *TermBuilder
}

// SenseBuilderForID returns a blind builder for the sense id.
func SenseBuilderForID(id dm.EntityID) (*SenseBuilder, error) {
	eb, err := newEntityBuilder(dm.KindSense, id, nil)
	if err != nil {
		return nil, err
	}
	return &SenseBuilder{entityBuilder: eb, glosses: NewTermBuilder()}, nil
}

// SenseBuilderForRevision returns a builder validated against doc, whose ID
// must be set.
func SenseBuilderForRevision(doc dm.SenseDocument) (*SenseBuilder, error) {
	eb, err := newEntityBuilder(dm.KindSense, doc.ID, doc)
	if err != nil {
		return nil, err
	}
	glosses, err := TermBuilderFor(doc.Glosses)
	if err != nil {
		return nil, err
	}
	return &SenseBuilder{entityBuilder: eb, glosses: glosses}, nil
}

// UpdateGlosses merges u into the gloss changes held so far.
func (b *SenseBuilder) UpdateGlosses(u TermUpdate) error {
	return b.glosses.Apply(u)
}

// Apply folds every part of u into the builder.
func (b *SenseBuilder) Apply(u *SenseUpdate) error {
	if u == nil {
		return fmt.Errorf("%w: sense update", dm.ErrMissingArgument)
	}
	if err := b.checkTarget(u); err != nil {
		return err
	}
	next := &SenseBuilder{entityBuilder: b.entityBuilder.clone(), glosses: b.glosses.clone()}
	if err := next.UpdateStatements(u.statements); err != nil {
		return err
	}
	if err := next.UpdateGlosses(u.glosses); err != nil {
		return err
	}
	*b = *next
	return nil
}

// Build returns the accumulated update. The builder stays usable.
func (b *SenseBuilder) Build() *SenseUpdate {
	return &SenseUpdate{entityCore: b.core(), glosses: b.glosses.Build()}
}
