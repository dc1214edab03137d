package datamodel

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultSiteIRI is the site prefix used for identifiers that do not name one.
const DefaultSiteIRI = "http://www.wikidata.org/entity/"

// EntityKind tells which kind of entity an identifier denotes.
type EntityKind int

// Entity kinds. KindNone is the kind of the zero EntityID.
const (
	KindNone EntityKind = iota
	KindItem
	KindProperty
	KindLexeme
	KindForm
	KindSense
)

func (k EntityKind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindProperty:
		return "property"
	case KindLexeme:
		return "lexeme"
	case KindForm:
		return "form"
	case KindSense:
		return "sense"
	default:
		return "none"
	}
}

var entityIDPatterns = []struct {
	kind    EntityKind
	pattern *regexp.Regexp
}{
	{KindItem, regexp.MustCompile(`^Q[1-9][0-9]*$`)},
	{KindProperty, regexp.MustCompile(`^P[1-9][0-9]*$`)},
	{KindLexeme, regexp.MustCompile(`^L[1-9][0-9]*$`)},
	{KindForm, regexp.MustCompile(`^L[1-9][0-9]*-F[1-9][0-9]*$`)},
	{KindSense, regexp.MustCompile(`^L[1-9][0-9]*-S[1-9][0-9]*$`)},
}

// EntityID identifies an entity on a site. The zero value means "no ID".
// EntityID is comparable; two IDs are equal when both the ID string and the
// site IRI match.
type EntityID struct {
	kind EntityKind
	id   string
	site string
}

// ParseEntityID parses an identifier such as "Q42", "P31", "L7", "L7-F2" or
// "L7-S1" on the default site.
func ParseEntityID(s string) (EntityID, error) {
	if s == "" {
		return EntityID{}, fmt.Errorf("%w: entity ID", ErrMissingArgument)
	}
	for _, p := range entityIDPatterns {
		if p.pattern.MatchString(s) {
			return EntityID{kind: p.kind, id: s, site: DefaultSiteIRI}, nil
		}
	}
	return EntityID{}, fmt.Errorf("%w: %q", ErrMalformedEntityID, s)
}

// NewEntityID parses s and checks that it denotes an entity of the given kind.
func NewEntityID(kind EntityKind, s string) (EntityID, error) {
	id, err := ParseEntityID(s)
	if err != nil {
		return EntityID{}, err
	}
	if id.kind != kind {
		return EntityID{}, fmt.Errorf("%w: %s is a %s ID, not a %s ID", ErrEntityKindMismatch, s, id.kind, kind)
	}
	return id, nil
}

// NewItemID parses an item ID such as "Q42".
func NewItemID(s string) (EntityID, error) { return NewEntityID(KindItem, s) }

// NewPropertyID parses a property ID such as "P31".
func NewPropertyID(s string) (EntityID, error) { return NewEntityID(KindProperty, s) }

// NewLexemeID parses a lexeme ID such as "L7".
func NewLexemeID(s string) (EntityID, error) { return NewEntityID(KindLexeme, s) }

// NewFormID parses a form ID such as "L7-F2".
func NewFormID(s string) (EntityID, error) { return NewEntityID(KindForm, s) }

// NewSenseID parses a sense ID such as "L7-S1".
func NewSenseID(s string) (EntityID, error) { return NewEntityID(KindSense, s) }

// MustEntityID is like ParseEntityID but panics on error. Intended for
// constants and test fixtures.
func MustEntityID(s string) EntityID {
	id, err := ParseEntityID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// MustItemID panics unless s is an item ID.
func MustItemID(s string) EntityID { return mustKind(KindItem, s) }

// MustPropertyID panics unless s is a property ID.
func MustPropertyID(s string) EntityID { return mustKind(KindProperty, s) }

// MustLexemeID panics unless s is a lexeme ID.
func MustLexemeID(s string) EntityID { return mustKind(KindLexeme, s) }

// MustFormID panics unless s is a form ID.
func MustFormID(s string) EntityID { return mustKind(KindForm, s) }

// MustSenseID panics unless s is a sense ID.
func MustSenseID(s string) EntityID { return mustKind(KindSense, s) }

func mustKind(kind EntityKind, s string) EntityID {
	id, err := NewEntityID(kind, s)
	if err != nil {
		panic(err)
	}
	return id
}

// WithSite returns a copy of the ID bound to another site IRI.
func (e EntityID) WithSite(siteIRI string) EntityID {
	if e.IsZero() {
		return e
	}
	e.site = siteIRI
	return e
}

// ID returns the local identifier, e.g. "Q42".
func (e EntityID) ID() string { return e.id }

// Kind returns the entity kind denoted by the identifier.
func (e EntityID) Kind() EntityKind { return e.kind }

// SiteIRI returns the site prefix the identifier belongs to.
func (e EntityID) SiteIRI() string { return e.site }

// IRI returns the full entity IRI.
func (e EntityID) IRI() string { return e.site + e.id }

// IsZero reports whether e is the zero "no ID" value.
func (e EntityID) IsZero() bool { return e.id == "" }

// Equal reports whether e and o identify the same entity.
func (e EntityID) Equal(o EntityID) bool { return e == o }

// LexemeID returns the owning lexeme of a form or sense, the ID itself for a
// lexeme, and the zero ID for other kinds.
func (e EntityID) LexemeID() EntityID {
	switch e.kind {
	case KindLexeme:
		return e
	case KindForm, KindSense:
		lexeme, _, _ := strings.Cut(e.id, "-")
		return EntityID{kind: KindLexeme, id: lexeme, site: e.site}
	default:
		return EntityID{}
	}
}

func (e EntityID) String() string {
	if e.IsZero() {
		return "<none>"
	}
	return e.id
}

// MarshalText encodes the local identifier.
func (e EntityID) MarshalText() ([]byte, error) {
	return []byte(e.id), nil
}

// UnmarshalText parses a local identifier on the default site. Empty text
// decodes to the zero ID.
func (e *EntityID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*e = EntityID{}
		return nil
	}
	id, err := ParseEntityID(string(text))
	if err != nil {
		return err
	}
	*e = id
	return nil
}

func (EntityID) isValue() {}
