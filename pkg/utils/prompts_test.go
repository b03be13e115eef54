package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daejeonmate/internal/models/db_models"
)

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "", PriceLabel(0), "unknown price has no label")
	assert.Equal(t, "Budget-friendly", PriceLabel(1))
	assert.Equal(t, "Moderate", PriceLabel(2))
	assert.Equal(t, "High-end", PriceLabel(3))
	assert.Equal(t, "Luxury", PriceLabel(4))
	assert.Equal(t, "", PriceLabel(5))
	assert.Equal(t, "", PriceLabel(-1))
}

func TestFormatPlaceForContextFieldOrder(t *testing.T) {
	place := &db_models.Place{
		Name:              "성심당",
		NameEn:            "Sungsimdang",
		Category:          db_models.CategoryRestaurant,
		DescriptionEn:     "Daejeon's famous bakery",
		District:          "Jung-gu",
		Address:           "Daejong-ro 480",
		Specialties:       []string{"Soboro bread"},
		Features:          []string{"local_favorite"},
		PriceRange:        1,
		OpeningHours:      "08:00-22:00",
		NearbyAttractions: []string{"Daejeon Skyroad"},
		IsLocalBusiness:   true,
	}

	block := FormatPlaceForContext(place)
	lines := strings.Split(block, "\n")

	require.Equal(t, []string{
		"**Sungsimdang** (성심당)",
		"- Category: restaurant",
		"- District: Jung-gu",
		"- Description: Daejeon's famous bakery",
		"- Specialties: Soboro bread",
		"- Price: Budget-friendly",
		"- Features: local_favorite",
		"- Hours: 08:00-22:00",
		"- Address: Daejong-ro 480",
		"- Nearby: Daejeon Skyroad",
		"- Local Business: Yes",
	}, lines)
}

func TestFormatPlaceForContextOmitsOptionalFields(t *testing.T) {
	place := &db_models.Place{
		NameEn:          "Hanbat Arboretum",
		Name:            "한밭수목원",
		Category:        db_models.CategoryAttraction,
		District:        "Seo-gu",
		IsLocalBusiness: true,
	}

	block := FormatPlaceForContext(place)
	assert.NotContains(t, block, "- Specialties:")
	assert.NotContains(t, block, "- Price:")
	assert.NotContains(t, block, "- Hours:")
	assert.NotContains(t, block, "- Address:")
	assert.NotContains(t, block, "- Nearby:")
	assert.Contains(t, block, "- Local Business: Yes")
}

func TestFormatPlaceForContextMarksFranchises(t *testing.T) {
	place := &db_models.Place{
		NameEn:   "Mega Coffee",
		Category: db_models.CategoryCafe,
	}

	block := FormatPlaceForContext(place)
	assert.Contains(t, block, "- Local Business: No (chain/franchise)")
}

func TestBuildContextPromptFrame(t *testing.T) {
	framed := BuildContextPrompt("1. **Sungsimdang**")

	assert.True(t, strings.HasPrefix(framed, "**Available Places Context:**"))
	assert.Contains(t, framed, "1. **Sungsimdang**")
	assert.Contains(t, framed, "Only recommend places from the context above")
}

func TestNoDataSentinelIsStable(t *testing.T) {
	assert.NotEmpty(t, NoDataSentinel)
	assert.Contains(t, NoDataSentinel, "No relevant places found")
}
