package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"daejeonmate/internal/models/source_models"
)

// placeProjection resolves image asset references to URLs and carries the
// source's last-modified timestamp, which drives skip-if-unchanged.
const placeProjection = `{
  _id,
  _updatedAt,
  name,
  name_en,
  category,
  description,
  description_en,
  address,
  district,
  coordinates,
  "image_url": image.asset->url,
  features,
  price_range,
  opening_hours,
  contact,
  is_local_business,
  "specialties": specialties[]{ name, "image_url": image.asset->url },
  nearby_attractions
}`

type SanityClientInterface interface {
	FetchAllPlaces(ctx context.Context) ([]source_models.SanityPlace, error)
	FetchPlaceByID(ctx context.Context, id string) (*source_models.SanityPlace, error)
}

type SanityClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewSanityClient(cfg *Config) SanityClientInterface {
	return &SanityClient{
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/v%s/data/query/%s",
			cfg.SanityProjectID, cfg.SanityAPIVersion, cfg.SanityDataset),
		token:      cfg.SanityAPIToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *SanityClient) FetchAllPlaces(ctx context.Context) ([]source_models.SanityPlace, error) {
	query := `*[_type == "place"] ` + placeProjection

	var places []source_models.SanityPlace
	if err := c.fetch(ctx, query, nil, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (c *SanityClient) FetchPlaceByID(ctx context.Context, id string) (*source_models.SanityPlace, error) {
	query := `*[_type == "place" && _id == $id][0] ` + placeProjection

	var place *source_models.SanityPlace
	if err := c.fetch(ctx, query, map[string]string{"id": id}, &place); err != nil {
		return nil, err
	}
	// GROQ returns null for a missing document, not an error.
	return place, nil
}

func (c *SanityClient) fetch(ctx context.Context, query string, params map[string]string, result interface{}) error {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		quoted, err := json.Marshal(value)
		if err != nil {
			return err
		}
		values.Set("$"+name, string(quoted))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sanity query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sanity query returned %d: %s", resp.StatusCode, body)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding sanity response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	return json.Unmarshal(envelope.Result, result)
}
