package models_test

import (
	"testing"

	"badge-rally-system/models"

	"github.com/stretchr/testify/require"
)

func TestCatalogIntegrity(t *testing.T) {
	require.Equal(t, 8, models.CatalogSize())

	seen := map[string]bool{}
	legendaries := 0
	for _, b := range models.BadgeCatalog {
		require.NotEmpty(t, b.ID, "badge %q has no id", b.Name)
		require.False(t, seen[b.ID], "duplicate badge id %q", b.ID)
		seen[b.ID] = true

		require.NotEmpty(t, b.Name)
		require.NotEmpty(t, b.Description)

		// all spots sit inside the Hakusan Tedorigawa area
		require.InDelta(t, 36.35, b.Lat, 0.36, "badge %q latitude", b.ID)
		require.InDelta(t, 136.57, b.Lng, 0.08, "badge %q longitude", b.ID)

		if b.Rarity == models.RarityLegendary {
			legendaries++
		}
	}
	require.Equal(t, 1, legendaries, "exactly one legendary badge")
}

func TestLookupBadge(t *testing.T) {
	b, ok := models.LookupBadge("shiramine")
	require.True(t, ok)
	require.Equal(t, "白峰", b.Name)

	_, ok = models.LookupBadge("nonexistent-id")
	require.False(t, ok)
}

func TestLookupBadgeNormalizesScannedCodes(t *testing.T) {
	// tags written on phones sometimes carry case, whitespace or
	// full-width characters
	for _, code := range []string{
		"Shiramine",
		"  shiramine \n",
		"ｓｈｉｒａｍｉｎｅ",
	} {
		b, ok := models.LookupBadge(code)
		require.True(t, ok, "code %q should resolve", code)
		require.Equal(t, "shiramine", b.ID)
	}
}

func TestSetBadgeArtwork(t *testing.T) {
	require.False(t, models.SetBadgeArtwork("nonexistent-id", "x"))

	original, _ := models.LookupBadge("mikawa")
	prev := original.ArtworkURL
	t.Cleanup(func() { models.SetBadgeArtwork("mikawa", prev) })

	require.True(t, models.SetBadgeArtwork("mikawa", "https://cdn.example/badges/mikawa.png"))
	b, _ := models.LookupBadge("mikawa")
	require.Equal(t, "https://cdn.example/badges/mikawa.png", b.ArtworkURL)
}
