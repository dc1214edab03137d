package update

import (
	"fmt"
	"maps"
	"slices"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// EntityUpdate is a built update of one entity. The set of implementations
// is closed: *ItemUpdate, *PropertyUpdate, *LexemeUpdate, *FormUpdate and
// *SenseUpdate.
type EntityUpdate interface {
	// EntityID returns the entity being updated.
	EntityID() dm.EntityID
	// BaseRevisionID returns the revision the update was validated
	// against, or 0 for a blind update.
	BaseRevisionID() int64
	// Statements returns the statement changes.
	Statements() StatementUpdate
	// IsEmpty reports whether applying the update would change nothing.
	IsEmpty() bool

	sealed()
}

// entityCore is the part of an update shared by all entity kinds.
type entityCore struct {
	entityID   dm.EntityID
	revisionID int64
	statements StatementUpdate
}

func (u entityCore) EntityID() dm.EntityID        { return u.entityID }
func (u entityCore) BaseRevisionID() int64        { return u.revisionID }
func (u entityCore) Statements() StatementUpdate { return u.statements }

// termedCore adds labels, descriptions and aliases.
type termedCore struct {
	entityCore
	labels       TermUpdate
	descriptions TermUpdate
	aliases      map[string]AliasUpdate
}

// Labels returns the label changes.
func (u termedCore) Labels() TermUpdate { return u.labels }

// Descriptions returns the description changes.
func (u termedCore) Descriptions() TermUpdate { return u.descriptions }

// Aliases returns the alias changes keyed by language code.
func (u termedCore) Aliases() map[string]AliasUpdate { return maps.Clone(u.aliases) }

func (u termedCore) isEmpty() bool {
	return u.labels.IsEmpty() && u.descriptions.IsEmpty() && len(u.aliases) == 0 && u.statements.IsEmpty()
}

// entityBuilder holds what every entity builder needs: the target ID, the
// base revision number, and a statement builder pinned to the entity.
type entityBuilder struct {
	entityID   dm.EntityID
	revisionID int64
	statements *StatementBuilder
}

// newEntityBuilder checks id against kind and prepares the statement
// builder. doc is nil for blind builders; otherwise its statements seed
// validation and its ID, if set, must equal id.
func newEntityBuilder(kind dm.EntityKind, id dm.EntityID, doc dm.StatementDocument) (entityBuilder, error) {
	if id.IsZero() {
		return entityBuilder{}, fmt.Errorf("%w: %s ID", dm.ErrMissingArgument, kind)
	}
	if id.Kind() != kind {
		return entityBuilder{}, fmt.Errorf("%w: %s is not a %s ID", dm.ErrEntityKindMismatch, id, kind)
	}
	b := entityBuilder{entityID: id, statements: NewStatementBuilder()}
	if doc != nil {
		if docID := doc.EntityID(); !docID.IsZero() && docID != id {
			return entityBuilder{}, fmt.Errorf("%w: revision of %s used for %s", dm.ErrEntityIDMismatch, docID, id)
		}
		statements, err := StatementBuilderFor(doc.AllStatements())
		if err != nil {
			return entityBuilder{}, err
		}
		b.statements = statements
		b.revisionID = doc.Revision()
	}
	if err := b.statements.pin(id); err != nil {
		return entityBuilder{}, err
	}
	return b, nil
}

// UpdateStatements merges u into the statement changes held so far.
func (b *entityBuilder) UpdateStatements(u StatementUpdate) error {
	return b.statements.Apply(u)
}

func (b entityBuilder) clone() entityBuilder {
	b.statements = b.statements.clone()
	return b
}

func (b entityBuilder) core() entityCore {
	return entityCore{entityID: b.entityID, revisionID: b.revisionID, statements: b.statements.Build()}
}

func (b entityBuilder) checkTarget(u EntityUpdate) error {
	if u.EntityID() != b.entityID {
		return fmt.Errorf("%w: update for %s applied to %s", dm.ErrEntityIDMismatch, u.EntityID(), b.entityID)
	}
	return nil
}

// termedBuilder adds labels, descriptions and aliases to entityBuilder.
type termedBuilder struct {
	entityBuilder
	labels       *TermBuilder
	descriptions *TermBuilder
	aliases      map[string]*AliasBuilder
	// baseAliases is nil for blind builders.
	baseAliases map[string][]dm.MonolingualText
}

func newTermedBuilder(kind dm.EntityKind, id dm.EntityID, doc dm.TermedDocument) (termedBuilder, error) {
	var statements dm.StatementDocument
	if doc != nil {
		statements = doc
	}
	eb, err := newEntityBuilder(kind, id, statements)
	if err != nil {
		return termedBuilder{}, err
	}
	b := termedBuilder{
		entityBuilder: eb,
		labels:        NewTermBuilder(),
		descriptions:  NewTermBuilder(),
		aliases:       map[string]*AliasBuilder{},
	}
	if doc != nil {
		if b.labels, err = TermBuilderFor(doc.LabelTerms()); err != nil {
			return termedBuilder{}, err
		}
		if b.descriptions, err = TermBuilderFor(doc.DescriptionTerms()); err != nil {
			return termedBuilder{}, err
		}
		b.baseAliases = map[string][]dm.MonolingualText{}
		for lang, list := range doc.AliasTerms() {
			b.baseAliases[lang] = list
		}
	}
	return b, nil
}

// UpdateLabels merges u into the label changes held so far.
func (b *termedBuilder) UpdateLabels(u TermUpdate) error {
	return b.labels.Apply(u)
}

// UpdateDescriptions merges u into the description changes held so far.
func (b *termedBuilder) UpdateDescriptions(u TermUpdate) error {
	return b.descriptions.Apply(u)
}

// UpdateAliases merges u into the alias changes held for language.
func (b *termedBuilder) UpdateAliases(language string, u AliasUpdate) error {
	if language == "" {
		return fmt.Errorf("%w: alias language code", dm.ErrMissingArgument)
	}
	if u.language != "" && u.language != language {
		return fmt.Errorf("%w: %q aliases given for %q", dm.ErrLanguageMismatch, u.language, language)
	}
	ab, ok := b.aliases[language]
	if !ok {
		var err error
		if b.baseAliases != nil {
			ab, err = aliasBuilderForLanguage(language, b.baseAliases[language])
		} else {
			ab, err = aliasBuilderForLanguage(language, nil)
		}
		if err != nil {
			return err
		}
		if b.baseAliases == nil {
			ab.base = nil
		}
	}
	if err := ab.Apply(u); err != nil {
		return err
	}
	b.aliases[language] = ab
	return nil
}

func (b termedBuilder) clone() termedBuilder {
	b.entityBuilder = b.entityBuilder.clone()
	b.labels = b.labels.clone()
	b.descriptions = b.descriptions.clone()
	aliases := make(map[string]*AliasBuilder, len(b.aliases))
	for lang, ab := range b.aliases {
		aliases[lang] = ab.clone()
	}
	b.aliases = aliases
	return b
}

// applyTermed folds every part of u into b.
func (b *termedBuilder) applyTermed(u termedCore) error {
	if err := b.UpdateStatements(u.statements); err != nil {
		return err
	}
	if err := b.UpdateLabels(u.labels); err != nil {
		return err
	}
	if err := b.UpdateDescriptions(u.descriptions); err != nil {
		return err
	}
	for _, lang := range slices.Sorted(maps.Keys(u.aliases)) {
		if err := b.UpdateAliases(lang, u.aliases[lang]); err != nil {
			return err
		}
	}
	return nil
}

func (b termedBuilder) termedCore() termedCore {
	aliases := map[string]AliasUpdate{}
	for lang, ab := range b.aliases {
		if u := ab.Build(); !u.IsEmpty() {
			aliases[lang] = u
		}
	}
	return termedCore{
		entityCore:   b.core(),
		labels:       b.labels.Build(),
		descriptions: b.descriptions.Build(),
		aliases:      aliases,
	}
}
