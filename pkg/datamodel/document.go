package datamodel

// EntityDocument is a snapshot of an entity at some revision.
type EntityDocument interface {
	// EntityID returns the ID of the entity, or the zero ID if unknown.
	EntityID() EntityID
	// Revision returns the revision number, or 0 if unknown.
	Revision() int64
}

// StatementDocument is an entity document that carries statements.
type StatementDocument interface {
	EntityDocument
	AllStatements() []Statement
}

// TermedDocument is a statement document with labels, descriptions and
// aliases.
type TermedDocument interface {
	StatementDocument
	LabelTerms() map[string]MonolingualText
	DescriptionTerms() map[string]MonolingualText
	AliasTerms() map[string][]MonolingualText
}

// Terms collects terms into a language-keyed map. A later term in the same
// language overwrites an earlier one.
func Terms(terms ...MonolingualText) map[string]MonolingualText {
	m := make(map[string]MonolingualText, len(terms))
	for _, t := range terms {
		m[t.Language] = t
	}
	return m
}

// ItemDocument is a snapshot of an item.
type ItemDocument struct {
	ID           EntityID
	RevisionID   int64
	Labels       map[string]MonolingualText
	Descriptions map[string]MonolingualText
	Aliases      map[string][]MonolingualText
	Statements   []StatementGroup
}

func (d ItemDocument) EntityID() EntityID { return d.ID }
func (d ItemDocument) Revision() int64 { return d.RevisionID }
func (d ItemDocument) AllStatements() []Statement { return FlattenGroups(d.Statements) }
func (d ItemDocument) LabelTerms() map[string]MonolingualText { return d.Labels }
func (d ItemDocument) DescriptionTerms() map[string]MonolingualText { return d.Descriptions }
func (d ItemDocument) AliasTerms() map[string][]MonolingualText { return d.Aliases }

// PropertyDocument is a snapshot of a property.
type PropertyDocument struct {
	ID           EntityID
	RevisionID   int64
	Datatype     string
	Labels       map[string]MonolingualText
	Descriptions map[string]MonolingualText
	Aliases      map[string][]MonolingualText
	Statements   []StatementGroup
}

func (d PropertyDocument) EntityID() EntityID { return d.ID }
func (d PropertyDocument) Revision() int64 { return d.RevisionID }
func (d PropertyDocument) AllStatements() []Statement { return FlattenGroups(d.Statements) }
func (d PropertyDocument) LabelTerms() map[string]MonolingualText { return d.Labels }
func (d PropertyDocument) DescriptionTerms() map[string]MonolingualText { return d.Descriptions }
func (d PropertyDocument) AliasTerms() map[string][]MonolingualText { return d.Aliases }

// LexemeDocument is a snapshot of a lexeme with its forms and senses.
type LexemeDocument struct {
	ID              EntityID
	RevisionID      int64
	Lemmas          map[string]MonolingualText
	LexicalCategory EntityID
	Language        EntityID
	Statements      []StatementGroup
	Forms           []FormDocument
	Senses          []SenseDocument
}

func (d LexemeDocument) EntityID() EntityID { return d.ID }
func (d LexemeDocument) Revision() int64 { return d.RevisionID }
func (d LexemeDocument) AllStatements() []Statement { return FlattenGroups(d.Statements) }

// Form returns the form with the given ID.
func (d LexemeDocument) Form(id EntityID) (FormDocument, bool) {
	for _, f := range d.Forms {
		if f.ID == id {
			return f, true
		}
	}
	return FormDocument{}, false
}

// Sense returns the sense with the given ID.
func (d LexemeDocument) Sense(id EntityID) (SenseDocument, bool) {
	for _, s := range d.Senses {
		if s.ID == id {
			return s, true
		}
	}
	return SenseDocument{}, false
}

// FormDocument is a snapshot of a lexeme form.
type FormDocument struct {
	ID                  EntityID
	RevisionID          int64
	Representations     map[string]MonolingualText
	GrammaticalFeatures []EntityID
	Statements          []StatementGroup
}

func (d FormDocument) EntityID() EntityID { return d.ID }
func (d FormDocument) Revision() int64 { return d.RevisionID }
func (d FormDocument) AllStatements() []Statement { return FlattenGroups(d.Statements) }

// SenseDocument is a snapshot of a lexeme sense.
type SenseDocument struct {
	ID         EntityID
	RevisionID int64
	Glosses    map[string]MonolingualText
	Statements []StatementGroup
}

func (d SenseDocument) EntityID() EntityID { return d.ID }
func (d SenseDocument) Revision() int64 { return d.RevisionID }
func (d SenseDocument) AllStatements() []Statement { return FlattenGroups(d.Statements) }
