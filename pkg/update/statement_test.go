package update

import (
	"testing"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementBuilderBlind(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *StatementBuilder)
	}{
		{
			name: "empty build has no changes",
			check: func(t *testing.T, b *StatementBuilder) {
				u := b.Build()
				assert.True(t, u.IsEmpty())
				assert.Empty(t, u.Added())
				assert.Empty(t, u.Replaced())
				assert.Empty(t, u.Removed())
				_, ok := u.Subject()
				assert.False(t, ok)
			},
		},
		{
			name: "add strips the statement ID",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Add(claim(john, p1, "brown", "ID1")))
				assert.Equal(t, []dm.Statement{claim(john, p1, "brown", "")}, b.Build().Added())
			},
		},
		{
			name: "adding the same statement twice keeps both in call order",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Add(claim(john, p1, "brown", "")))
				require.NoError(t, b.Add(claim(john, p2, "green", "")))
				require.NoError(t, b.Add(claim(john, p1, "brown", "")))
				assert.Equal(t, []dm.Statement{
					claim(john, p1, "brown", ""),
					claim(john, p2, "green", ""),
					claim(john, p1, "brown", ""),
				}, b.Build().Added())
			},
		},
		{
			name: "add rejects a zero statement",
			check: func(t *testing.T, b *StatementBuilder) {
				assert.ErrorIs(t, b.Add(dm.Statement{}), dm.ErrMissingArgument)
			},
		},
		{
			name: "add rejects a statement without subject",
			check: func(t *testing.T, b *StatementBuilder) {
				err := b.Add(claim(dm.EntityID{}, p1, "brown", ""))
				assert.ErrorIs(t, err, dm.ErrMissingSubject)
				assert.ErrorIs(t, err, dm.ErrInvalidArgument)
			},
		},
		{
			name: "second subject is rejected and leaves the update unchanged",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Add(claim(john, p1, "brown", "")))
				before := b.Build()
				assert.ErrorIs(t, b.Add(claim(rita, p1, "brown", "")), dm.ErrSubjectMismatch)
				assert.ErrorIs(t, b.Replace(claim(rita, p1, "brown", "ID2")), dm.ErrSubjectMismatch)
				assert.Equal(t, before, b.Build())
				subject, ok := b.Build().Subject()
				require.True(t, ok)
				assert.Equal(t, john, subject)
			},
		},
		{
			name: "replace requires a statement ID",
			check: func(t *testing.T, b *StatementBuilder) {
				err := b.Replace(claim(john, p1, "brown", ""))
				assert.ErrorIs(t, err, dm.ErrMissingStatementID)
				assert.ErrorIs(t, err, dm.ErrInvalidArgument)
				assert.True(t, b.Build().IsEmpty())
			},
		},
		{
			name: "replacing twice keeps the latest value",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Replace(claim(john, p1, "brown", "ID1")))
				require.NoError(t, b.Replace(claim(john, p1, "blue", "ID1")))
				assert.Equal(t, map[string]dm.Statement{"ID1": claim(john, p1, "blue", "ID1")}, b.Build().Replaced())
			},
		},
		{
			name: "remove rejects an empty ID",
			check: func(t *testing.T, b *StatementBuilder) {
				assert.ErrorIs(t, b.Remove(""), dm.ErrMissingArgument)
			},
		},
		{
			name: "removing an unknown ID is allowed",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Remove("ID999"))
				assert.Equal(t, []string{"ID999"}, b.Build().Removed())
			},
		},
		{
			name: "replace then remove leaves only the removal",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Replace(claim(john, p1, "brown", "ID1")))
				require.NoError(t, b.Remove("ID1"))
				u := b.Build()
				assert.Empty(t, u.Replaced())
				assert.Equal(t, []string{"ID1"}, u.Removed())
			},
		},
		{
			name: "remove then replace leaves only the replacement",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Remove("ID1"))
				require.NoError(t, b.Replace(claim(john, p1, "brown", "ID1")))
				u := b.Build()
				assert.Equal(t, map[string]dm.Statement{"ID1": claim(john, p1, "brown", "ID1")}, u.Replaced())
				assert.Empty(t, u.Removed())
			},
		},
		{
			name: "add, replace, remove scenario",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Add(claim(john, p1, "brown", "")))
				assert.Equal(t, []dm.Statement{claim(john, p1, "brown", "")}, b.Build().Added())

				require.NoError(t, b.Replace(claim(john, p2, "brown", "ID4")))
				require.NoError(t, b.Remove("ID4"))
				u := b.Build()
				assert.Equal(t, []dm.Statement{claim(john, p1, "brown", "")}, u.Added())
				assert.Empty(t, u.Replaced())
				assert.Equal(t, []string{"ID4"}, u.Removed())
			},
		},
		{
			name: "built update does not change with the builder",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Add(claim(john, p1, "brown", "")))
				u := b.Build()
				require.NoError(t, b.Add(claim(john, p2, "green", "")))
				require.NoError(t, b.Remove("ID1"))
				assert.Len(t, u.Added(), 1)
				assert.Empty(t, u.Removed())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewStatementBuilder())
		})
	}
}

func TestStatementBuilderForValidatesBase(t *testing.T) {
	tests := []struct {
		name     string
		existing []dm.Statement
		wantErr  error
	}{
		{
			name:     "no statements",
			existing: nil,
		},
		{
			name:     "distinct IDs on one subject",
			existing: []dm.Statement{claim(john, p1, "a", "ID1"), claim(john, p2, "b", "ID2")},
		},
		{
			name:     "duplicate ID",
			existing: []dm.Statement{claim(john, p1, "a", "ID1"), claim(john, p2, "b", "ID1")},
			wantErr:  dm.ErrDuplicateStatementID,
		},
		{
			name:     "statement without ID",
			existing: []dm.Statement{claim(john, p1, "a", "")},
			wantErr:  dm.ErrMissingStatementID,
		},
		{
			name:     "statement without subject",
			existing: []dm.Statement{claim(dm.EntityID{}, p1, "a", "ID1")},
			wantErr:  dm.ErrMissingSubject,
		},
		{
			name:     "two subjects",
			existing: []dm.Statement{claim(john, p1, "a", "ID1"), claim(rita, p1, "a", "ID2")},
			wantErr:  dm.ErrSubjectMismatch,
		},
		{
			name:     "zero statement",
			existing: []dm.Statement{{}},
			wantErr:  dm.ErrMissingArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := StatementBuilderFor(tt.existing)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, b.Build().IsEmpty())
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, b)
		})
	}
}

func TestStatementBuilderWithBase(t *testing.T) {
	s1 := claim(john, p1, "brown", "ID1")
	s2 := claim(john, p2, "green", "ID2")

	tests := []struct {
		name  string
		check func(t *testing.T, b *StatementBuilder)
	}{
		{
			name: "remove of an unknown ID fails",
			check: func(t *testing.T, b *StatementBuilder) {
				err := b.Remove("ID999")
				assert.ErrorIs(t, err, dm.ErrUnknownStatementID)
				assert.ErrorIs(t, err, dm.ErrInvalidArgument)
				assert.True(t, b.Build().IsEmpty())
			},
		},
		{
			name: "replace of an unknown ID fails",
			check: func(t *testing.T, b *StatementBuilder) {
				assert.ErrorIs(t, b.Replace(claim(john, p1, "brown", "ID999")), dm.ErrUnknownStatementID)
			},
		},
		{
			name: "subject is fixed by the base",
			check: func(t *testing.T, b *StatementBuilder) {
				assert.ErrorIs(t, b.Add(claim(rita, p1, "x", "")), dm.ErrSubjectMismatch)
				require.NoError(t, b.Add(claim(john, p1, "x", "")))
			},
		},
		{
			name: "replacing with the base value is elided",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Replace(s1))
				assert.True(t, b.Build().IsEmpty())
			},
		},
		{
			name: "replacing with the base value after a change restores it",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Replace(claim(john, p1, "blue", "ID1")))
				require.NoError(t, b.Replace(s1))
				assert.True(t, b.Build().IsEmpty())
			},
		},
		{
			name: "restore by replace after removal",
			check: func(t *testing.T, b *StatementBuilder) {
				require.NoError(t, b.Remove("ID1"))
				require.NoError(t, b.Replace(s1))
				u := b.Build()
				assert.Empty(t, u.Removed())
				assert.Empty(t, u.Replaced())
			},
		},
		{
			name: "a real replacement is kept",
			check: func(t *testing.T, b *StatementBuilder) {
				changed := s2
				changed.Rank = dm.RankPreferred
				require.NoError(t, b.Replace(changed))
				assert.Equal(t, map[string]dm.Statement{"ID2": changed}, b.Build().Replaced())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, mustStatementBuilder(s1, s2))
		})
	}
}

func TestStatementBuilderForGroups(t *testing.T) {
	groups := dm.GroupStatements([]dm.Statement{
		claim(john, p1, "a", "ID1"),
		claim(john, p2, "b", "ID2"),
		claim(john, p1, "c", "ID3"),
	})
	b, err := StatementBuilderForGroups(groups)
	require.NoError(t, err)
	require.NoError(t, b.Remove("ID3"))
	assert.ErrorIs(t, b.Remove("ID4"), dm.ErrUnknownStatementID)
}

func TestStatementBuilderApply(t *testing.T) {
	t.Run("merge of two independent builders", func(t *testing.T) {
		b1 := NewStatementBuilder()
		require.NoError(t, b1.Add(claim(john, p1, "e1", "")))
		require.NoError(t, b1.Replace(claim(john, p1, "e2", "id2")))
		require.NoError(t, b1.Remove("id3"))

		b2 := NewStatementBuilder()
		require.NoError(t, b2.Add(claim(john, p2, "e4", "")))
		require.NoError(t, b2.Replace(claim(john, p2, "e5", "id5")))
		require.NoError(t, b2.Remove("id6"))

		require.NoError(t, b1.Apply(b2.Build()))
		u := b1.Build()
		assert.Equal(t, []dm.Statement{claim(john, p1, "e1", ""), claim(john, p2, "e4", "")}, u.Added())
		assert.Equal(t, map[string]dm.Statement{
			"id2": claim(john, p1, "e2", "id2"),
			"id5": claim(john, p2, "e5", "id5"),
		}, u.Replaced())
		assert.Equal(t, []string{"id3", "id6"}, u.Removed())
	})

	t.Run("later update wins on shared IDs", func(t *testing.T) {
		b1 := NewStatementBuilder()
		require.NoError(t, b1.Replace(claim(john, p1, "old", "id1")))
		require.NoError(t, b1.Remove("id2"))

		b2 := NewStatementBuilder()
		require.NoError(t, b2.Remove("id1"))
		require.NoError(t, b2.Replace(claim(john, p1, "new", "id2")))

		require.NoError(t, b1.Apply(b2.Build()))
		u := b1.Build()
		assert.Equal(t, map[string]dm.Statement{"id2": claim(john, p1, "new", "id2")}, u.Replaced())
		assert.Equal(t, []string{"id1"}, u.Removed())
	})

	t.Run("failed apply leaves the builder unchanged", func(t *testing.T) {
		b := mustStatementBuilder(claim(john, p1, "a", "ID1"))
		require.NoError(t, b.Add(claim(john, p1, "mine", "")))
		before := b.Build()

		other := NewStatementBuilder()
		require.NoError(t, other.Add(claim(john, p2, "theirs", "")))
		require.NoError(t, other.Remove("ID9"))

		assert.ErrorIs(t, b.Apply(other.Build()), dm.ErrUnknownStatementID)
		assert.Equal(t, before, b.Build())
	})

	t.Run("apply rejects another subject", func(t *testing.T) {
		b := NewStatementBuilder()
		require.NoError(t, b.Add(claim(john, p1, "a", "")))

		other := NewStatementBuilder()
		require.NoError(t, other.Add(claim(rita, p1, "a", "")))

		assert.ErrorIs(t, b.Apply(other.Build()), dm.ErrSubjectMismatch)
		assert.Len(t, b.Build().Added(), 1)
	})

	t.Run("apply equals replaying the operations", func(t *testing.T) {
		ops1 := func(b *StatementBuilder) {
			require.NoError(t, b.Add(claim(john, p1, "a", "")))
			require.NoError(t, b.Replace(claim(john, p1, "b", "id1")))
			require.NoError(t, b.Remove("id2"))
		}
		ops2 := func(b *StatementBuilder) {
			require.NoError(t, b.Remove("id1"))
			require.NoError(t, b.Add(claim(john, p2, "c", "")))
			require.NoError(t, b.Replace(claim(john, p2, "d", "id2")))
		}

		replayed := NewStatementBuilder()
		ops1(replayed)
		ops2(replayed)

		first, second := NewStatementBuilder(), NewStatementBuilder()
		ops1(first)
		ops2(second)
		require.NoError(t, first.Apply(second.Build()))

		assert.Equal(t, replayed.Build(), first.Build())
	})
}

func TestBuildDoesNotConsumeBuilders(t *testing.T) {
	statements := NewStatementBuilder()
	require.NoError(t, statements.Add(claim(john, p1, "a", "")))
	first := statements.Build()
	require.NoError(t, statements.Add(claim(john, p1, "b", "")))
	require.NoError(t, statements.Remove("id1"))
	assert.Equal(t, []dm.Statement{claim(john, p1, "a", "")}, first.Added())
	assert.Empty(t, first.Removed())
	assert.Len(t, statements.Build().Added(), 2)

	items, err := ItemBuilderForID(john)
	require.NoError(t, err)
	empty := items.Build()
	labels := NewTermBuilder()
	require.NoError(t, labels.Set(en("a")))
	require.NoError(t, items.UpdateLabels(labels.Build()))
	assert.True(t, empty.IsEmpty())
	assert.False(t, items.Build().IsEmpty())
}
