package update

import (
	"fmt"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// PropertyUpdate is an immutable change to a property.
type PropertyUpdate struct {
	termedCore
}

// IsEmpty reports whether the update changes nothing.
func (u *PropertyUpdate) IsEmpty() bool { return u.isEmpty() }

func (*PropertyUpdate) sealed() {}

// PropertyBuilder accumulates changes to one property.
type PropertyBuilder struct {
	termedBuilder
}

// PropertyBuilderForID returns a blind builder for the property id.
func PropertyBuilderForID(id dm.EntityID) (*PropertyBuilder, error) {
	tb, err := newTermedBuilder(dm.KindProperty, id, nil)
	if err != nil {
		return nil, err
	}
	return &PropertyBuilder{tb}, nil
}

// PropertyBuilderForRevision returns a builder validated against doc, whose ID
// must be set.
func PropertyBuilderForRevision(doc dm.PropertyDocument) (*PropertyBuilder, error) {
	tb, err := newTermedBuilder(dm.KindProperty, doc.ID, doc)
	if err != nil {
		return nil, err
	}
	return &PropertyBuilder{tb}, nil
}

// Apply folds every part of u into the builder.
func (b *PropertyBuilder) Apply(u *PropertyUpdate) error {
	if u == nil {
		return fmt.Errorf("%w: property update", dm.ErrMissingArgument)
	}
	if err := b.checkTarget(u); err != nil {
		return err
	}
	next := b.termedBuilder.clone()
	if err := next.applyTermed(u.termedCore); err != nil {
		return err
	}
	b.termedBuilder = next
	return nil
}

// Build returns the accumulated update. The builder stays usable.
func (b *PropertyBuilder) Build() *PropertyUpdate {
	return &PropertyUpdate{b.termedCore()}
}
