package response_models

import "daejeonmate/internal/models/db_models"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PlaceResponse struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	NameEn            string       `json:"name_en"`
	Category          string       `json:"category"`
	Description       string       `json:"description"`
	DescriptionEn     string       `json:"description_en"`
	Address           string       `json:"address"`
	District          string       `json:"district"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	ImageURL          string       `json:"image_url,omitempty"`
	Features          []string     `json:"features"`
	PriceRange        int          `json:"price_range,omitempty"`
	OpeningHours      string       `json:"opening_hours,omitempty"`
	Contact           string       `json:"contact,omitempty"`
	IsLocalBusiness   bool         `json:"is_local_business"`
	Specialties       []string     `json:"specialties,omitempty"`
	SpecialtyImages   []string     `json:"specialty_images,omitempty"`
	NearbyAttractions []string     `json:"nearby_attractions,omitempty"`
}

func NewPlaceResponse(place *db_models.Place) PlaceResponse {
	resp := PlaceResponse{
		ID:                place.ID.String(),
		Name:              place.Name,
		NameEn:            place.NameEn,
		Category:          string(place.Category),
		Description:       place.Description,
		DescriptionEn:     place.DescriptionEn,
		Address:           place.Address,
		District:          place.District,
		ImageURL:          place.ImageURL,
		Features:          place.Features,
		PriceRange:        place.PriceRange,
		OpeningHours:      place.OpeningHours,
		Contact:           place.Contact,
		IsLocalBusiness:   place.IsLocalBusiness,
		Specialties:       place.Specialties,
		SpecialtyImages:   place.SpecialtyImageURLs,
		NearbyAttractions: place.NearbyAttractions,
	}
	if place.Latitude != nil && place.Longitude != nil {
		resp.Coordinates = &Coordinates{Lat: *place.Latitude, Lng: *place.Longitude}
	}
	return resp
}
