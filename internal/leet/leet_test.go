package leet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcrack/internal/permute"
)

func TestChoices_A(t *testing.T) {
	want := []permute.Choice[rune]{
		{Value: 'a', Cost: 0},
		{Value: 'A', Cost: 1},
		{Value: '4', Cost: 1},
		{Value: '@', Cost: 1},
	}
	assert.Equal(t, want, Default().Choices('a'))
}

func TestChoices_NoDuplicateUpper(t *testing.T) {
	assert.Equal(t, []permute.Choice[rune]{{Value: 'Q', Cost: 0}}, Default().Choices('Q'))
	assert.Equal(t, []permute.Choice[rune]{{Value: '7', Cost: 0}}, Default().Choices('7'))
}

func TestChoices_OverrideRepeatsExisting(t *testing.T) {
	tbl := Default().With('x', []permute.Choice[rune]{
		{Value: 'X', Cost: 1},
		{Value: 'x', Cost: 2},
		{Value: '%', Cost: 1},
		{Value: '%', Cost: 3},
	})

	want := []permute.Choice[rune]{
		{Value: 'x', Cost: 0},
		{Value: 'X', Cost: 1},
		{Value: '%', Cost: 1},
	}
	assert.Equal(t, want, tbl.Choices('x'))

	out, err := tbl.Variants("xx", 3)
	require.NoError(t, err)
	assert.Len(t, out, 9)
}

func TestVariants_Facebook(t *testing.T) {
	out, err := Default().Variants("facebook", DefaultBudget)
	require.NoError(t, err)

	assert.Len(t, out, 1481)
	assert.Equal(t, "facebook", out[0])
	assert.Contains(t, out, "F4ceb00k")
	assert.NotContains(t, out, "F4c3b00k", "five substitutions exceed the budget")
}

func TestVariants_SmallBudget(t *testing.T) {
	out, err := Default().Variants("ab", 2)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"ab", "Ab", "4b", "@b", "aB", "a8"}, out)
}

func TestVariants_Unique(t *testing.T) {
	out, err := Default().Variants("password", DefaultBudget)
	require.NoError(t, err)

	seen := make(map[string]bool, len(out))
	for _, v := range out {
		assert.False(t, seen[v], "duplicate %q", v)
		seen[v] = true
		assert.Len(t, []rune(v), len("password"))
	}
}

func TestVariantsConcurrent_MatchesVariants(t *testing.T) {
	want, err := Default().Variants("facebook", DefaultBudget)
	require.NoError(t, err)

	for _, workers := range []int{1, 4} {
		got, err := Default().VariantsConcurrent(context.Background(), "facebook", DefaultBudget, workers)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Default().VariantsConcurrent(ctx, "facebook", DefaultBudget, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVariants_ZeroBudget(t *testing.T) {
	_, err := Default().Variants("abc", 0)
	assert.ErrorIs(t, err, permute.ErrInvalidConfiguration)
}

func TestWith_OverridesCharacter(t *testing.T) {
	base := Default()
	tbl := base.With('x', []permute.Choice[rune]{{Value: '%', Cost: 1}})

	out, err := tbl.Variants("x", 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x", "X", "%"}, out)

	assert.Len(t, base.Choices('x'), 2, "original table untouched")
}

func TestWord_LeftToRight(t *testing.T) {
	s := permute.New[permute.Step[rune]]().
		Push(permute.Step[rune]{Value: 'c'}).
		Push(permute.Step[rune]{Value: 'a'}).
		Push(permute.Step[rune]{Value: 't'})

	assert.Equal(t, "cat", Word(s))
}
