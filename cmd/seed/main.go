package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"daejeonmate/internal/infra"
	"daejeonmate/internal/models/db_models"
	"daejeonmate/internal/repositories"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

// seedPlace is the on-disk seed format. Seeded records carry no source
// provenance; they are owned by the store, not the content source.
type seedPlace struct {
	Name          string `json:"name"`
	NameEn        string `json:"name_en"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en"`
	Address       string `json:"address"`
	District      string `json:"district"`
	Coordinates   *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coordinates,omitempty"`
	ImageURL          string   `json:"image_url,omitempty"`
	Features          []string `json:"features"`
	PriceRange        int      `json:"price_range,omitempty"`
	OpeningHours      string   `json:"opening_hours,omitempty"`
	Contact           string   `json:"contact,omitempty"`
	IsLocalBusiness   bool     `json:"is_local_business"`
	Specialties       []string `json:"specialties,omitempty"`
	SpecialtyImages   []string `json:"specialty_images,omitempty"`
	NearbyAttractions []string `json:"nearby_attractions,omitempty"`
}

func main() {
	file := flag.String("file", "seed/places.json", "path to the seed JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	defer infra.ClosePostgresql(db)

	if err := db.AutoMigrate(&db_models.Place{}); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	embeddingClient := utils.NewOpenAIEmbeddingClient(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions)
	placeRepo := repositories.NewPlaceRepository(db)
	placeService := services.NewPlaceService(placeRepo, embeddingClient)

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Reading seed file: %v", err)
	}

	var seeds []seedPlace
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatalf("Parsing seed file: %v", err)
	}

	ctx := context.Background()
	stored, failed := 0, 0

	for _, seed := range seeds {
		category, err := db_models.ParsePlaceCategory(seed.Category)
		if err != nil {
			log.Printf("Skipping %q: %v", seed.NameEn, err)
			failed++
			continue
		}

		place := &db_models.Place{
			Name:               seed.Name,
			NameEn:             seed.NameEn,
			Category:           category,
			Description:        seed.Description,
			DescriptionEn:      seed.DescriptionEn,
			Address:            seed.Address,
			District:           seed.District,
			ImageURL:           seed.ImageURL,
			Features:           seed.Features,
			PriceRange:         seed.PriceRange,
			OpeningHours:       seed.OpeningHours,
			Contact:            seed.Contact,
			IsLocalBusiness:    seed.IsLocalBusiness,
			Specialties:        seed.Specialties,
			SpecialtyImageURLs: seed.SpecialtyImages,
			NearbyAttractions:  seed.NearbyAttractions,
		}
		if seed.Coordinates != nil {
			lat, lng := seed.Coordinates.Lat, seed.Coordinates.Lng
			place.Latitude = &lat
			place.Longitude = &lng
		}

		id, err := placeService.StorePlace(ctx, place)
		if err != nil {
			log.Printf("Error storing %q: %v", seed.NameEn, err)
			failed++
			continue
		}
		log.Printf("Stored %q with id %s", seed.NameEn, id)
		stored++
	}

	log.Printf("Seed finished: stored=%d failed=%d", stored, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
