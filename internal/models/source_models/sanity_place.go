package source_models

import (
	"fmt"
	"strings"
	"time"

	"daejeonmate/internal/models/db_models"
)

// SanityPlace is the projection returned by the content source for one
// place document. It is deliberately separate from db_models.Place: the
// source payload is validated and mapped at this boundary, not trusted.
type SanityPlace struct {
	ID                string             `json:"_id"`
	UpdatedAt         time.Time          `json:"_updatedAt"`
	Name              string             `json:"name"`
	NameEn            string             `json:"name_en"`
	Category          string             `json:"category"`
	Description       string             `json:"description"`
	DescriptionEn     string             `json:"description_en"`
	Address           string             `json:"address"`
	District          string             `json:"district"`
	Coordinates       *SanityCoordinates `json:"coordinates,omitempty"`
	ImageURL          string             `json:"image_url,omitempty"`
	Features          []string           `json:"features"`
	PriceRange        int                `json:"price_range,omitempty"`
	OpeningHours      string             `json:"opening_hours,omitempty"`
	Contact           string             `json:"contact,omitempty"`
	IsLocalBusiness   *bool              `json:"is_local_business"`
	Specialties       []SanitySpecialty  `json:"specialties,omitempty"`
	NearbyAttractions []string           `json:"nearby_attractions,omitempty"`
}

type SanityCoordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SanitySpecialty struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Validate checks the fields the sync engine depends on. A document that
// fails here is counted as a per-document error, never stored partially.
func (sp *SanityPlace) Validate() error {
	if strings.TrimSpace(sp.ID) == "" {
		return fmt.Errorf("sanity place missing _id")
	}
	if sp.UpdatedAt.IsZero() {
		return fmt.Errorf("sanity place %s missing _updatedAt", sp.ID)
	}
	if strings.TrimSpace(sp.NameEn) == "" {
		return fmt.Errorf("sanity place %s missing name_en", sp.ID)
	}
	if _, err := db_models.ParsePlaceCategory(sp.Category); err != nil {
		return fmt.Errorf("sanity place %s: %w", sp.ID, err)
	}
	if sp.PriceRange < 0 || sp.PriceRange > 4 {
		return fmt.Errorf("sanity place %s: price_range %d out of range", sp.ID, sp.PriceRange)
	}
	return nil
}

// ToPlace maps the validated source document onto the internal model.
// SearchableText and Embedding are left empty; the sync engine fills them.
func (sp *SanityPlace) ToPlace() (*db_models.Place, error) {
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	category, _ := db_models.ParsePlaceCategory(sp.Category)

	place := &db_models.Place{
		Name:          sp.Name,
		NameEn:        sp.NameEn,
		Category:      category,
		Description:   sp.Description,
		DescriptionEn: sp.DescriptionEn,
		Address:       sp.Address,
		District:      sp.District,
		ImageURL:      sp.ImageURL,
		Features:      sp.Features,
		PriceRange:    sp.PriceRange,
		OpeningHours:  sp.OpeningHours,
		Contact:       sp.Contact,
		// Locally owned unless the source says otherwise.
		IsLocalBusiness:   sp.IsLocalBusiness == nil || *sp.IsLocalBusiness,
		NearbyAttractions: sp.NearbyAttractions,
		SanityID:          &sp.ID,
		SanityUpdatedAt:   sp.UpdatedAt,
	}

	if sp.Coordinates != nil {
		lat, lng := sp.Coordinates.Lat, sp.Coordinates.Lng
		place.Latitude = &lat
		place.Longitude = &lng
	}

	for _, s := range sp.Specialties {
		place.Specialties = append(place.Specialties, s.Name)
		if s.ImageURL != "" {
			place.SpecialtyImageURLs = append(place.SpecialtyImageURLs, s.ImageURL)
		}
	}

	return place, nil
}
