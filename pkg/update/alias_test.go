package update

import (
	"testing"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasBuilderBlind(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *AliasBuilder)
	}{
		{
			name: "empty builder builds the zero update",
			check: func(t *testing.T, b *AliasBuilder) {
				assert.Equal(t, AliasUpdate{}, b.Build())
			},
		},
		{
			name: "added aliases keep their order and collapse duplicates",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Add(en("DNA")))
				require.NoError(t, b.Add(en("Doug")))
				require.NoError(t, b.Add(en("DNA")))
				u := b.Build()
				assert.Equal(t, "en", u.Language())
				assert.Equal(t, []dm.MonolingualText{en("DNA"), en("Doug")}, u.Added())
			},
		},
		{
			name: "first alias fixes the language",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Add(en("DNA")))
				assert.ErrorIs(t, b.Add(de("DNA")), dm.ErrLanguageMismatch)
				assert.ErrorIs(t, b.Remove(de("DNA")), dm.ErrLanguageMismatch)
				assert.Len(t, b.Build().Added(), 1)
			},
		},
		{
			name: "remove after add is kept as a removal",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Add(en("DNA")))
				require.NoError(t, b.Remove(en("DNA")))
				u := b.Build()
				assert.Empty(t, u.Added())
				assert.Equal(t, []dm.MonolingualText{en("DNA")}, u.Removed())
			},
		},
		{
			name: "recreate discards additions and removals",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Add(en("DNA")))
				require.NoError(t, b.Remove(en("Doug")))
				require.NoError(t, b.Recreate([]dm.MonolingualText{en("Douglas"), en("Douglas")}))
				require.NoError(t, b.Add(en("D.")))
				u := b.Build()
				list, ok := u.Recreated()
				require.True(t, ok)
				assert.Equal(t, []dm.MonolingualText{en("Douglas"), en("D.")}, list)
				assert.Empty(t, u.Added())
				assert.Empty(t, u.Removed())
			},
		},
		{
			name: "recreating an empty list clears all aliases",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Recreate(nil))
				u := b.Build()
				list, ok := u.Recreated()
				assert.True(t, ok)
				assert.Empty(t, list)
				assert.False(t, u.IsEmpty())
			},
		},
		{
			name: "missing arguments are rejected",
			check: func(t *testing.T, b *AliasBuilder) {
				assert.ErrorIs(t, b.Add(dm.MonolingualText{}), dm.ErrMissingArgument)
				assert.ErrorIs(t, b.Remove(dm.NewTerm("", "x")), dm.ErrMissingArgument)
				assert.ErrorIs(t, b.Recreate([]dm.MonolingualText{{}}), dm.ErrMissingArgument)
				assert.True(t, b.Build().IsEmpty())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewAliasBuilder())
		})
	}
}

func TestAliasBuilderWithBase(t *testing.T) {
	base := []dm.MonolingualText{en("DNA"), en("Doug")}

	tests := []struct {
		name  string
		check func(t *testing.T, b *AliasBuilder)
	}{
		{
			name: "adding an existing alias is elided",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Add(en("DNA")))
				assert.True(t, b.Build().IsEmpty())
			},
		},
		{
			name: "removing an absent alias is elided",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Remove(en("Douglas")))
				assert.True(t, b.Build().IsEmpty())
			},
		},
		{
			name: "remove then add of an existing alias restores it",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Remove(en("DNA")))
				require.NoError(t, b.Add(en("DNA")))
				assert.True(t, b.Build().IsEmpty())
			},
		},
		{
			name: "recreating the base list is empty",
			check: func(t *testing.T, b *AliasBuilder) {
				require.NoError(t, b.Add(en("Douglas")))
				require.NoError(t, b.Recreate(base))
				assert.Equal(t, AliasUpdate{}, b.Build())
			},
		},
		{
			name: "base fixes the language",
			check: func(t *testing.T, b *AliasBuilder) {
				assert.ErrorIs(t, b.Add(de("DNA")), dm.ErrLanguageMismatch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := AliasBuilderFor(base)
			require.NoError(t, err)
			tt.check(t, b)
		})
	}
}

func TestAliasBuilderForRejectsMixedLanguages(t *testing.T) {
	_, err := AliasBuilderFor([]dm.MonolingualText{en("DNA"), de("DNA")})
	assert.ErrorIs(t, err, dm.ErrLanguageMismatch)
}

func TestAliasBuilderApply(t *testing.T) {
	first := NewAliasBuilder()
	require.NoError(t, first.Add(en("DNA")))
	require.NoError(t, first.Remove(en("Doug")))

	second := NewAliasBuilder()
	require.NoError(t, second.Add(en("Doug")))

	require.NoError(t, first.Apply(second.Build()))
	u := first.Build()
	assert.Equal(t, []dm.MonolingualText{en("DNA"), en("Doug")}, u.Added())
	assert.Empty(t, u.Removed())

	other := NewAliasBuilder()
	require.NoError(t, other.Add(de("DNA")))
	assert.ErrorIs(t, first.Apply(other.Build()), dm.ErrLanguageMismatch)
	assert.Equal(t, u, first.Build())
}
