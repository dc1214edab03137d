package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementsEqual(t *testing.T) {
	q42 := MustItemID("Q42")
	p31 := MustPropertyID("P31")
	base := NewStatement(q42, p31, MustItemID("Q5")).WithID("Q42$1")

	tests := []struct {
		name   string
		change func(s Statement) Statement
		want   bool
	}{
		{
			name:   "identical",
			change: func(s Statement) Statement { return s },
			want:   true,
		},
		{
			name: "nil and empty qualifiers",
			change: func(s Statement) Statement {
				s.Qualifiers = []Snak{}
				s.References = []Reference{}
				return s
			},
			want: true,
		},
		{
			name:   "different ID",
			change: func(s Statement) Statement { return s.WithID("Q42$2") },
		},
		{
			name: "different rank",
			change: func(s Statement) Statement {
				s.Rank = RankDeprecated
				return s
			},
		},
		{
			name: "different value",
			change: func(s Statement) Statement {
				s.MainSnak = ValueSnak{PropertyID: p31, Value: MustItemID("Q6")}
				return s
			},
		},
		{
			name: "some value instead of a value",
			change: func(s Statement) Statement {
				s.MainSnak = SomeValueSnak{PropertyID: p31}
				return s
			},
		},
		{
			name: "added qualifier",
			change: func(s Statement) Statement {
				s.Qualifiers = []Snak{NoValueSnak{PropertyID: p31}}
				return s
			},
		},
		{
			name: "added reference",
			change: func(s Statement) Statement {
				s.References = []Reference{{Snaks: []Snak{ValueSnak{PropertyID: p31, Value: StringValue("x")}}}}
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatementsEqual(base, tt.change(base)))
		})
	}
}

func TestStatementAccessors(t *testing.T) {
	s := NewStatement(MustItemID("Q42"), MustPropertyID("P1"), StringValue("brown"))
	assert.Equal(t, MustPropertyID("P1"), s.Property())
	assert.Equal(t, StringValue("brown"), s.Value())
	assert.Equal(t, RankNormal, s.Rank)
	assert.False(t, s.IsZero())
	assert.True(t, Statement{}.IsZero())
	assert.Nil(t, Statement{MainSnak: NoValueSnak{PropertyID: MustPropertyID("P1")}}.Value())
}

func TestGroupStatements(t *testing.T) {
	q42 := MustItemID("Q42")
	p1, p2 := MustPropertyID("P1"), MustPropertyID("P2")
	a := NewStatement(q42, p1, StringValue("a"))
	b := NewStatement(q42, p2, StringValue("b"))
	c := NewStatement(q42, p1, StringValue("c"))

	groups := GroupStatements([]Statement{a, b, c})
	assert.Equal(t, []StatementGroup{
		{Property: p1, Statements: []Statement{a, c}},
		{Property: p2, Statements: []Statement{b}},
	}, groups)
	assert.Equal(t, []Statement{a, c, b}, FlattenGroups(groups))
}
