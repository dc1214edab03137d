package update

import (
	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

var (
	john   = dm.MustItemID("Q42")
	rita   = dm.MustItemID("Q43")
	p1     = dm.MustPropertyID("P1")
	p2     = dm.MustPropertyID("P2")
	noun   = dm.MustItemID("Q1084")
	verb   = dm.MustItemID("Q24905")
	plural = dm.MustItemID("Q146786")
	single = dm.MustItemID("Q110786")
)

// claim returns a statement about subject with a string value.
func claim(subject, property dm.EntityID, value, id string) dm.Statement {
	return dm.NewStatement(subject, property, dm.StringValue(value)).WithID(id)
}

func en(text string) dm.MonolingualText { return dm.NewTerm("en", text) }
func de(text string) dm.MonolingualText { return dm.NewTerm("de", text) }

func mustStatementBuilder(existing ...dm.Statement) *StatementBuilder {
	b, err := StatementBuilderFor(existing)
	if err != nil {
		panic(err)
	}
	return b
}
