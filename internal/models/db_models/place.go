package db_models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type PlaceCategory string

const (
	CategoryRestaurant    PlaceCategory = "restaurant"
	CategoryCafe          PlaceCategory = "cafe"
	CategoryAccommodation PlaceCategory = "accommodation"
	CategoryAttraction    PlaceCategory = "attraction"
	CategoryShopping      PlaceCategory = "shopping"
)

// ParsePlaceCategory maps an incoming category string onto the closed set.
// Anything outside the set is rejected rather than stored as-is.
func ParsePlaceCategory(s string) (PlaceCategory, error) {
	switch PlaceCategory(s) {
	case CategoryRestaurant, CategoryCafe, CategoryAccommodation, CategoryAttraction, CategoryShopping:
		return PlaceCategory(s), nil
	default:
		return "", fmt.Errorf("unknown place category %q", s)
	}
}

// Place is the retrieval copy of a content-managed place document.
// SearchableText and Embedding are always written together: whenever a
// descriptive field changes, both are recomputed before the row is saved.
type Place struct {
	BaseModel
	Name               string        `gorm:"not null"`
	NameEn             string        `gorm:"column:name_en;index;not null"`
	Category           PlaceCategory `gorm:"type:varchar(32);index;not null"`
	Description        string
	DescriptionEn      string `gorm:"column:description_en"`
	Address            string
	District           string
	Latitude           *float64
	Longitude          *float64
	ImageURL           string         `gorm:"column:image_url"`
	Features           pq.StringArray `gorm:"type:text[]"`
	PriceRange         int            // 1=budget .. 4=luxury, 0 when unknown
	OpeningHours       string
	Contact            string
	IsLocalBusiness    bool
	Specialties        pq.StringArray `gorm:"type:text[]"`
	SpecialtyImageURLs pq.StringArray `gorm:"column:specialty_image_urls;type:text[]"`
	NearbyAttractions  pq.StringArray `gorm:"type:text[]"`

	SearchableText string          `gorm:"column:searchable_text"`
	Embedding      pgvector.Vector `gorm:"type:vector(1536)"`

	// Provenance of externally managed records. SanityID is the natural
	// key for sync upserts; seeded records leave it NULL.
	SanityID        *string   `gorm:"column:sanity_id;uniqueIndex"`
	SanityUpdatedAt time.Time `gorm:"column:sanity_updated_at"`
}
