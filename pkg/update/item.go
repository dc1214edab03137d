package update

import (
	"fmt"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// ItemUpdate is an immutable change to an item.
type ItemUpdate struct {
	termedCore
}

// IsEmpty reports whether the update changes nothing.
func (u *ItemUpdate) IsEmpty() bool { return u.isEmpty() }

func (*ItemUpdate) sealed() {}

// ItemBuilder accumulates changes to one item.
type ItemBuilder struct {
	termedBuilder
}

// ItemBuilderForID returns a blind builder for the item id.
func ItemBuilderForID(id dm.EntityID) (*ItemBuilder, error) {
	tb, err := newTermedBuilder(dm.KindItem, id, nil)
	if err != nil {
		return nil, err
	}
	return &ItemBuilder{tb}, nil
}

// ItemBuilderForRevision returns a builder validated against doc, whose ID
// must be set.
func ItemBuilderForRevision(doc dm.ItemDocument) (*ItemBuilder, error) {
	tb, err := newTermedBuilder(dm.KindItem, doc.ID, doc)
	if err != nil {
		return nil, err
	}
	return &ItemBuilder{tb}, nil
}

// Apply folds every part of u into the builder.
func (b *ItemBuilder) Apply(u *ItemUpdate) error {
	if u == nil {
		return fmt.Errorf("%w: item update", dm.ErrMissingArgument)
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
func (b *ItemBuilder) Build() *ItemUpdate {
	return &ItemUpdate{b.termedCore()}
}
