package source_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daejeonmate/internal/models/db_models"
)

func validDoc() SanityPlace {
	return SanityPlace{
		ID:        "doc-1",
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Name:      "성심당",
		NameEn:    "Sungsimdang",
		Category:  "restaurant",
		District:  "Jung-gu",
	}
}

func TestValidateRejectsBrokenDocuments(t *testing.T) {
	cases := map[string]func(*SanityPlace){
		"missing id":         func(d *SanityPlace) { d.ID = " " },
		"missing updatedAt":  func(d *SanityPlace) { d.UpdatedAt = time.Time{} },
		"missing name_en":    func(d *SanityPlace) { d.NameEn = "" },
		"unknown category":   func(d *SanityPlace) { d.Category = "spaceport" },
		"price out of range": func(d *SanityPlace) { d.PriceRange = 5 },
	}

	for name, mutate := range cases {
		doc := validDoc()
		mutate(&doc)
		assert.Error(t, doc.Validate(), name)
	}

	doc := validDoc()
	assert.NoError(t, doc.Validate())
}

func TestToPlaceMapsFields(t *testing.T) {
	doc := validDoc()
	doc.Coordinates = &SanityCoordinates{Lat: 36.3278, Lng: 127.4274}
	doc.Specialties = []SanitySpecialty{
		{Name: "Soboro bread", ImageURL: "https://cdn.example/soboro.jpg"},
		{Name: "Fried croquette"},
	}
	doc.PriceRange = 1

	place, err := doc.ToPlace()
	require.NoError(t, err)

	assert.Equal(t, "Sungsimdang", place.NameEn)
	assert.Equal(t, db_models.CategoryRestaurant, place.Category)
	require.NotNil(t, place.SanityID)
	assert.Equal(t, "doc-1", *place.SanityID)
	assert.Equal(t, doc.UpdatedAt, place.SanityUpdatedAt)

	require.NotNil(t, place.Latitude)
	require.NotNil(t, place.Longitude)
	assert.InDelta(t, 36.3278, *place.Latitude, 1e-9)
	assert.InDelta(t, 127.4274, *place.Longitude, 1e-9)

	assert.Equal(t, []string{"Soboro bread", "Fried croquette"}, []string(place.Specialties))
	assert.Equal(t, []string{"https://cdn.example/soboro.jpg"}, []string(place.SpecialtyImageURLs))

	// Deferred to the sync engine.
	assert.Empty(t, place.SearchableText)
	assert.Empty(t, place.Embedding.Slice())
}

func TestToPlaceDefaultsLocalBusiness(t *testing.T) {
	doc := validDoc()
	place, err := doc.ToPlace()
	require.NoError(t, err)
	assert.True(t, place.IsLocalBusiness, "absent flag means locally owned")

	franchise := false
	doc.IsLocalBusiness = &franchise
	place, err = doc.ToPlace()
	require.NoError(t, err)
	assert.False(t, place.IsLocalBusiness)
}

func TestToPlaceRejectsInvalidDocument(t *testing.T) {
	doc := validDoc()
	doc.Category = "spaceport"

	_, err := doc.ToPlace()
	assert.Error(t, err)
}
