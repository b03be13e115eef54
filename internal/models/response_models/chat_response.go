package response_models

type ChatResponse struct {
	Message   string          `json:"message"`
	Places    []PlaceResponse `json:"places,omitempty"`
	Itinerary *Itinerary      `json:"itinerary,omitempty"`
}

type Itinerary struct {
	Title     string         `json:"title"`
	TotalDays int            `json:"total_days"`
	Days      []ItineraryDay `json:"days"`
}

type ItineraryDay struct {
	Day   int             `json:"day"`
	Title string          `json:"title,omitempty"`
	Items []ItineraryItem `json:"items"`
}

type ItineraryItem struct {
	Time     string         `json:"time"`
	Duration int            `json:"duration"`
	PlaceEn  string         `json:"place_name_en"`
	Place    *PlaceResponse `json:"place,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}
