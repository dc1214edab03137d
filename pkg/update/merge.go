package update

import (
	"fmt"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// applier is a builder that can fold in and produce updates of type U.
type applier[U any] interface {
	Apply(U) error
	Build() U
}

// mergeInto replays updates in order into b and returns the result.
func mergeInto[U any](b applier[U], updates ...U) (U, error) {
	for _, u := range updates {
		if err := b.Apply(u); err != nil {
			var zero U
			return zero, err
		}
	}
	return b.Build(), nil
}

// MergeStatements returns an update equivalent to applying a and then b.
func MergeStatements(a, b StatementUpdate) (StatementUpdate, error) {
	return mergeInto[StatementUpdate](NewStatementBuilder(), a, b)
}

// MergeTerms returns an update equivalent to applying a and then b.
func MergeTerms(a, b TermUpdate) (TermUpdate, error) {
	return mergeInto[TermUpdate](NewTermBuilder(), a, b)
}

// MergeAliases returns an update equivalent to applying a and then b. Both
// must concern the same language.
func MergeAliases(a, b AliasUpdate) (AliasUpdate, error) {
	return mergeInto[AliasUpdate](NewAliasBuilder(), a, b)
}

// MergeItems returns an update equivalent to applying a and then b. The
// result keeps the base revision of a.
func MergeItems(a, b *ItemUpdate) (*ItemUpdate, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: item update", dm.ErrMissingArgument)
	}
	builder, err := ItemBuilderForID(a.EntityID())
	if err != nil {
		return nil, err
	}
	builder.revisionID = a.revisionID
	return mergeInto[*ItemUpdate](builder, a, b)
}

// MergeProperties returns an update equivalent to applying a and then b.
// The result keeps the base revision of a.
func MergeProperties(a, b *PropertyUpdate) (*PropertyUpdate, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: property update", dm.ErrMissingArgument)
	}
	builder, err := PropertyBuilderForID(a.EntityID())
	if err != nil {
		return nil, err
	}
	builder.revisionID = a.revisionID
	return mergeInto[*PropertyUpdate](builder, a, b)
}

// MergeLexemes returns an update equivalent to applying a and then b. The
// result keeps the base revision of a.
func MergeLexemes(a, b *LexemeUpdate) (*LexemeUpdate, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: lexeme update", dm.ErrMissingArgument)
	}
	builder, err := LexemeBuilderForID(a.EntityID())
	if err != nil {
		return nil, err
	}
	builder.revisionID = a.revisionID
	return mergeInto[*LexemeUpdate](builder, a, b)
}

// MergeForms returns an update equivalent to applying a and then b. The
// result keeps the base revision of a.
func MergeForms(a, b *FormUpdate) (*FormUpdate, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: form update", dm.ErrMissingArgument)
	}
	builder, err := FormBuilderForID(a.EntityID())
	if err != nil {
		return nil, err
	}
	builder.revisionID = a.revisionID
	return mergeInto[*FormUpdate](builder, a, b)
}

// MergeSenses returns an update equivalent to applying a and then b. The
// result keeps the base revision of a.
func MergeSenses(a, b *SenseUpdate) (*SenseUpdate, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: sense update", dm.ErrMissingArgument)
	}
	builder, err := SenseBuilderForID(a.EntityID())
	if err != nil {
		return nil, err
	}
	builder.revisionID = a.revisionID
	return mergeInto[*SenseUpdate](builder, a, b)
}

// Merge merges two entity updates of the same kind and entity.
func Merge(a, b EntityUpdate) (EntityUpdate, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: entity update", dm.ErrMissingArgument)
	}
	mismatch := func() error {
		return fmt.Errorf("%w: cannot merge %T into %T", dm.ErrEntityKindMismatch, b, a)
	}
	switch a := a.(type) {
	case *ItemUpdate:
		b, ok := b.(*ItemUpdate)
		if !ok {
			return nil, mismatch()
		}
		return asEntity(MergeItems(a, b))
	case *PropertyUpdate:
		b, ok := b.(*PropertyUpdate)
		if !ok {
			return nil, mismatch()
		}
		return asEntity(MergeProperties(a, b))
	case *LexemeUpdate:
		b, ok := b.(*LexemeUpdate)
		if !ok {
			return nil, mismatch()
		}
		return asEntity(MergeLexemes(a, b))
	case *FormUpdate:
		b, ok := b.(*FormUpdate)
		if !ok {
			return nil, mismatch()
		}
		return asEntity(MergeForms(a, b))
	case *SenseUpdate:
		b, ok := b.(*SenseUpdate)
		if !ok {
			return nil, mismatch()
		}
		return asEntity(MergeSenses(a, b))
	default:
		return nil, fmt.Errorf("%w: unknown update type %T", dm.ErrInvalidArgument, a)
	}
}

// asEntity keeps a failed merge from yielding a non-nil interface around a
// nil pointer.
func asEntity(u EntityUpdate, err error) (EntityUpdate, error) {
	if err != nil {
		return nil, err
	}
	return u, nil
}
