package datamodel

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Rank orders statements about the same property. The zero value is
// RankNormal.
type Rank int

// Statement ranks.
const (
	RankNormal Rank = iota
	RankPreferred
	RankDeprecated
)

func (r Rank) String() string {
	switch r {
	case RankPreferred:
		return "preferred"
	case RankDeprecated:
		return "deprecated"
	default:
		return "normal"
	}
}

// Statement is a claim about a subject entity. An empty ID means the
// statement has not been assigned one yet. Two statements occupy the same
// slot on an entity iff their IDs are equal and non-empty.
type Statement struct {
	ID         string
	Subject    EntityID
	MainSnak   Snak
	Qualifiers []Snak
	References []Reference
	Rank       Rank
}

// NewStatement returns a normal-rank statement that subject has value for
// property.
func NewStatement(subject, property EntityID, value Value) Statement {
	return Statement{
		Subject:  subject,
		MainSnak: ValueSnak{PropertyID: property, Value: value},
	}
}

// IsZero reports whether s is absent, i.e. carries no main snak.
func (s Statement) IsZero() bool {
	return s.MainSnak == nil
}

// WithID returns a copy of s with the given statement ID.
func (s Statement) WithID(id string) Statement {
	s.ID = id
	return s
}

// Property returns the property of the main snak.
func (s Statement) Property() EntityID {
	if s.MainSnak == nil {
		return EntityID{}
	}
	return s.MainSnak.Property()
}

// Value returns the main value, or nil for some-value and no-value snaks.
func (s Statement) Value() Value {
	if vs, ok := s.MainSnak.(ValueSnak); ok {
		return vs.Value
	}
	return nil
}

// StatementsEqual reports whether a and b are structurally identical,
// including ID, subject, qualifiers, references and rank. Nil and empty
// slices compare equal.
func StatementsEqual(a, b Statement) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// StatementGroup holds the statements of one subject about one property.
type StatementGroup struct {
	Property   EntityID
	Statements []Statement
}

// GroupStatements groups statements by main snak property, keeping the
// first-seen property order and the statement order within each group.
func GroupStatements(statements []Statement) []StatementGroup {
	index := make(map[EntityID]int)
	var groups []StatementGroup
	for _, s := range statements {
		p := s.Property()
		i, ok := index[p]
		if !ok {
			i = len(groups)
			index[p] = i
			groups = append(groups, StatementGroup{Property: p})
		}
		groups[i].Statements = append(groups[i].Statements, s)
	}
	return groups
}

// FlattenGroups returns the statements of all groups in order.
func FlattenGroups(groups []StatementGroup) []Statement {
	var out []Statement
	for _, g := range groups {
		out = append(out, g.Statements...)
	}
	return out
}
