package rarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Rarity
	}{
		{raw: "Special Art", want: SpecialIllustrationRare},
		{raw: "  special-art  ", want: SpecialIllustrationRare},
		{raw: "SIR", want: SpecialIllustrationRare},
		{raw: "Special Illustration Rare", want: SpecialIllustrationRare},
		{raw: "illustration rare", want: IllustrationRare},
		{raw: "Rare Holo", want: HoloRare},
		{raw: "ur", want: UltraRare},
		{raw: "vmax", want: VMAX},
		{raw: "ace_spec", want: AceSpecRare},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"Special", "illustration", "mythic", "rare-ish"} {
		_, ok := Normalize(raw)
		assert.False(t, ok, raw)
	}
}

func TestEveryVocabularyEntryNormalizesToItself(t *testing.T) {
	for _, r := range Vocabulary {
		got, ok := Normalize(string(r))
		require.True(t, ok, r)
		assert.Equal(t, r, got)
	}
}

func TestMembers(t *testing.T) {
	assert.Contains(t, Members(SpecialIllustrationRare), "Special Illustration Rare")
	assert.Contains(t, Members(SpecialIllustrationRare), "Special Art")
	// Illustration Rare must not pick up its special tier.
	assert.Equal(t, []string{"Illustration Rare"}, Members(IllustrationRare))

	m := Members(HoloRare)
	m[0] = "mutated"
	assert.Equal(t, "Holo Rare", Members(HoloRare)[0])
}

func TestIsAll(t *testing.T) {
	assert.True(t, IsAll(""))
	assert.True(t, IsAll(" ALL "))
	assert.False(t, IsAll("all rare"))
}

// rarities published by the Pokemon TCG API v2 /rarities endpoint
var apiRarities = []string{
	"ACE SPEC Rare", "Amazing Rare", "Classic Collection", "Common", "Double Rare",
	"Hyper Rare", "Illustration Rare", "LEGEND", "Promo", "Radiant Rare", "Rare",
	"Rare ACE", "Rare BREAK", "Rare Holo", "Rare Holo EX", "Rare Holo GX",
	"Rare Holo LV.X", "Rare Holo Star", "Rare Holo V", "Rare Holo VMAX",
	"Rare Holo VSTAR", "Rare Prime", "Rare Prism Star", "Rare Rainbow", "Rare Secret",
	"Rare Shining", "Rare Shiny", "Rare Shiny GX", "Rare Ultra", "Shiny Rare",
	"Shiny Ultra Rare", "Special Illustration Rare", "Trainer Gallery Rare Holo",
	"Ultra Rare", "Uncommon",
}

func TestAPIRaritiesAreFilterable(t *testing.T) {
	for _, stored := range apiRarities {
		r, ok := Normalize(stored)
		require.True(t, ok, stored)
		assert.Contains(t, Members(r), stored, "%q selected through %q", stored, r)
	}
	assert.Empty(t, Uncovered(apiRarities))
}

func TestUncovered(t *testing.T) {
	got := Uncovered([]string{"Special Art", "Full Art", "", "Mystery Rare", "Rare Holo VSTAR"})
	assert.Equal(t, []string{"Mystery Rare"}, got)
}
