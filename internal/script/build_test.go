package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/update"
)

func mustParse(t *testing.T, input string) *Script {
	t.Helper()
	s, err := Parse([]byte(input))
	require.NoError(t, err)
	return s
}

func mustDocument(t *testing.T, input string) dm.EntityDocument {
	t.Helper()
	doc, err := ParseDocument([]byte(input))
	require.NoError(t, err)
	return doc
}

const itemScript = `
entity: Q42
labels:
  set: {en: Douglas Adams, de: Douglas Adams}
  remove: [fr]
aliases:
  en: {add: [DNA], remove: [Doug]}
statements:
  add:
    - {property: P69, value: {entity: Q691283}}
  replace:
    - {id: Q42$1, property: P31, value: {entity: Q5}, rank: preferred}
  remove: [Q42$3]
`

func TestBuildItem(t *testing.T) {
	t.Run("blind", func(t *testing.T) {
		u, err := Build(mustParse(t, itemScript), nil)
		require.NoError(t, err)
		item, ok := u.(*update.ItemUpdate)
		require.True(t, ok)

		assert.Equal(t, int64(0), item.BaseRevisionID())
		assert.Len(t, item.Labels().Modified(), 2)
		assert.Equal(t, []string{"fr"}, item.Labels().Removed())
		assert.Equal(t, []dm.MonolingualText{dm.NewTerm("en", "DNA")}, item.Aliases()["en"].Added())
		assert.Len(t, item.Statements().Added(), 1)
		assert.Contains(t, item.Statements().Replaced(), "Q42$1")
		assert.Equal(t, []string{"Q42$3"}, item.Statements().Removed())
	})

	t.Run("against a base revision", func(t *testing.T) {
		u, err := Build(mustParse(t, itemScript), mustDocument(t, itemYAML))
		require.NoError(t, err)
		item := u.(*update.ItemUpdate)

		assert.Equal(t, int64(1234), item.BaseRevisionID())
		assert.Equal(t, map[string]dm.MonolingualText{"de": dm.NewTerm("de", "Douglas Adams")}, item.Labels().Modified())
		assert.Empty(t, item.Labels().Removed())
		assert.Equal(t, []dm.MonolingualText{dm.NewTerm("en", "Doug")}, item.Aliases()["en"].Removed())
		assert.Empty(t, item.Aliases()["en"].Added())
	})

	t.Run("unknown statement in base mode", func(t *testing.T) {
		s := mustParse(t, "entity: Q42\nstatements: {remove: [Q42$9]}\n")
		_, err := Build(s, mustDocument(t, itemYAML))
		assert.ErrorIs(t, err, dm.ErrUnknownStatementID)

		_, err = Build(s, nil)
		assert.NoError(t, err)
	})

	t.Run("base of another kind", func(t *testing.T) {
		_, err := Build(mustParse(t, "entity: Q42\n"), mustDocument(t, lexemeYAML))
		assert.ErrorIs(t, err, dm.ErrEntityKindMismatch)
		assert.NotErrorIs(t, err, dm.ErrEntityIDMismatch)

		_, err = Build(mustParse(t, "entity: L7\n"), mustDocument(t, itemYAML))
		assert.ErrorIs(t, err, dm.ErrEntityKindMismatch)
	})

	t.Run("base of another item", func(t *testing.T) {
		_, err := Build(mustParse(t, "entity: Q43\n"), mustDocument(t, itemYAML))
		assert.ErrorIs(t, err, dm.ErrEntityIDMismatch)
	})

	t.Run("empty script builds an empty update", func(t *testing.T) {
		u, err := Build(mustParse(t, "entity: Q42\n"), nil)
		require.NoError(t, err)
		assert.True(t, u.IsEmpty())
	})
}

func TestBuildLexeme(t *testing.T) {
	script := `
entity: L7
lexical_category: Q24905
lemmas: {set: {en: apple}}
forms:
  add:
    - representations: {en: appled}
  update:
    - entity: L7-F1
      grammatical_features: [Q110786]
    - entity: L7-F2
      representations: {set: {en-gb: apples}}
  remove: []
senses:
  remove: [L7-S1]
`
	u, err := Build(mustParse(t, script), mustDocument(t, lexemeYAML))
	require.NoError(t, err)
	lexeme := u.(*update.LexemeUpdate)

	category, ok := lexeme.LexicalCategory()
	require.True(t, ok)
	assert.Equal(t, dm.MustItemID("Q24905"), category)
	assert.True(t, lexeme.Lemmas().IsEmpty())
	assert.Len(t, lexeme.AddedForms(), 1)

	updated := lexeme.UpdatedForms()
	assert.NotContains(t, updated, dm.MustFormID("L7-F1"), "unchanged features are elided")
	require.Contains(t, updated, dm.MustFormID("L7-F2"))
	assert.Len(t, updated[dm.MustFormID("L7-F2")].Representations().Modified(), 1)
	assert.Equal(t, []dm.EntityID{dm.MustSenseID("L7-S1")}, lexeme.RemovedSenses())
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "labels on a form", input: "entity: L1-F1\nlabels: {set: {en: x}}\n", wantErr: ErrInvalidScript},
		{name: "features on an item", input: "entity: Q1\ngrammatical_features: []\n", wantErr: ErrInvalidScript},
		{name: "replace without ID", input: "entity: Q1\nstatements: {replace: [{property: P1, novalue: true}]}\n", wantErr: dm.ErrMissingStatementID},
		{name: "nested script for a sense in forms", input: "entity: L1\nforms: {update: [{entity: L1-S1}]}\n", wantErr: dm.ErrEntityKindMismatch},
		{name: "nested script with base", input: "entity: L1\nforms: {update: [{entity: L1-F1, base: true}]}\n", wantErr: ErrInvalidScript},
		{name: "form of another lexeme", input: "entity: L1\nforms: {remove: [L2-F1]}\n", wantErr: dm.ErrEntityIDMismatch},
		{name: "empty label language", input: "entity: Q1\nlabels: {remove: [\"\"]}\n", wantErr: dm.ErrMissingArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(mustParse(t, tt.input), nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseScript(t *testing.T) {
	_, err := Parse([]byte("base: true\n"))
	assert.ErrorIs(t, err, dm.ErrMissingArgument)

	_, err = Parse([]byte("entity: Q1\nlabel: {}\n"))
	assert.ErrorIs(t, err, ErrInvalidScript)

	s, err := Parse([]byte("entity: Q1\naliases: {en: {recreate: []}}\n"))
	require.NoError(t, err)
	require.NotNil(t, s.Aliases["en"].Recreate)
	assert.Empty(t, *s.Aliases["en"].Recreate)
}
