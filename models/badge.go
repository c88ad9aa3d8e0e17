package models

import (
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/unicode/norm"
)

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityUncommon  BadgeRarity = "uncommon"
	RarityRare      BadgeRarity = "rare"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge: static catalog entry (one per rally spot)
type Badge struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`      // display name, e.g. "白峰"
	SpotName    string      `json:"spot_name"` // romanized spot name, used to derive the ID
	Description string      `json:"description"`
	Rarity      BadgeRarity `json:"rarity"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	ArtworkURL  string      `json:"artwork_url"`
}

// BadgeCatalog is the fixed set of claimable badges. IDs left empty are
// derived from SpotName at init via slug, so NFC tags carry stable ASCII
// codes regardless of the Japanese display names.
var BadgeCatalog = []Badge{
	{Name: "白峰", SpotName: "Shiramine", Description: "恐竜と雪の村", Rarity: RarityLegendary, Lat: 36.173, Lng: 136.632, ArtworkURL: "badges/1_shiramine.png"},
	{Name: "尾口", SpotName: "Oguchi", Description: "ダムと自然", Rarity: RarityRare, Lat: 36.241, Lng: 136.611, ArtworkURL: "badges/2_oguchi.png"},
	{Name: "吉野谷", SpotName: "Yoshinodani", Description: "木工の里", Rarity: RarityRare, Lat: 36.289, Lng: 136.602, ArtworkURL: "badges/3_yoshinodani.png"},
	{Name: "鳥越", SpotName: "Torigoe", Description: "城跡とそば", Rarity: RarityRare, Lat: 36.331, Lng: 136.589, ArtworkURL: "badges/4_torigoe.png"},
	{Name: "河内", SpotName: "Kawachi", Description: "峡谷の村", Rarity: RarityUncommon, Lat: 36.353, Lng: 136.621, ArtworkURL: "badges/5_kawachi.png"},
	{Name: "鶴来", SpotName: "Tsurugi", Description: "白山比咩神社", Rarity: RarityUncommon, Lat: 36.442, Lng: 136.638, ArtworkURL: "badges/6_tsurugi.png"},
	{Name: "松任", SpotName: "Matto", Description: "市の中心", Rarity: RarityCommon, Lat: 36.526, Lng: 136.565, ArtworkURL: "badges/7_matto.png"},
	{Name: "美川", SpotName: "Mikawa", Description: "港とふぐ", Rarity: RarityUncommon, Lat: 36.494, Lng: 136.502, ArtworkURL: "badges/8_mikawa.png"},
}

var badgeIndex = map[string]*Badge{}

func init() {
	for i := range BadgeCatalog {
		b := &BadgeCatalog[i]
		if b.ID == "" {
			b.ID = slug.Make(b.SpotName)
		}
		badgeIndex[b.ID] = b
	}
}

// NormalizeBadgeCode canonicalizes a scanned badge code. Tags written on
// phones sometimes carry full-width characters or stray whitespace, so
// apply NFKC before lookup.
func NormalizeBadgeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(code)))
}

// LookupBadge resolves a scanned code against the catalog.
func LookupBadge(code string) (*Badge, bool) {
	b, ok := badgeIndex[NormalizeBadgeCode(code)]
	return b, ok
}

func CatalogSize() int {
	return len(BadgeCatalog)
}

// SetBadgeArtwork updates the artwork reference for a catalog entry.
// Returns false when the badge id is unknown.
func SetBadgeArtwork(id, url string) bool {
	b, ok := badgeIndex[id]
	if !ok {
		return false
	}
	b.ArtworkURL = url
	return true
}
