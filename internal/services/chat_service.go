package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"daejeonmate/internal/models/db_models"
	"daejeonmate/internal/models/request_models"
	"daejeonmate/internal/models/response_models"
	"daejeonmate/internal/repositories"
	mem "daejeonmate/pkg/memcache"
	"daejeonmate/pkg/utils"
)

const (
	toolRecommendPlaces = "recommendPlaces"
	toolCreateItinerary = "createItinerary"

	plannerMaxResults = 10
	planCacheTTL      = time.Hour
)

type ChatServiceInterface interface {
	Chat(ctx context.Context, req request_models.ChatRequest) (*response_models.ChatResponse, error)
	PlannerChat(ctx context.Context, req request_models.PlannerRequest) (*response_models.ChatResponse, error)
}

type ChatService struct {
	ragService       RAGServiceInterface
	placeRepo        repositories.PlaceRepository
	completionClient utils.CompletionClientInterface
	planClient       utils.PlanClientInterface
	planCache        mem.PlanCacheStore
}

func NewChatService(
	ragService RAGServiceInterface,
	placeRepo repositories.PlaceRepository,
	completionClient utils.CompletionClientInterface,
	planClient utils.PlanClientInterface,
	planCache mem.PlanCacheStore,
) ChatServiceInterface {
	return &ChatService{
		ragService:       ragService,
		placeRepo:        placeRepo,
		completionClient: completionClient,
		planClient:       planClient,
		planCache:        planCache,
	}
}

// chatTools declares the two callable capabilities the retrieval results
// feed into. The model passes back exact name_en values, which join to
// full place records.
func chatTools() []openai.Tool {
	placeNames := jsonschema.Definition{
		Type:        jsonschema.Array,
		Description: "Exact name_en values from the provided context",
		Items:       &jsonschema.Definition{Type: jsonschema.String},
	}

	itineraryItem := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"time":          {Type: jsonschema.String, Description: "Start time, HH:MM"},
			"duration":      {Type: jsonschema.Integer, Description: "Duration in minutes"},
			"place_name_en": {Type: jsonschema.String, Description: "Exact name_en from the context"},
			"notes":         {Type: jsonschema.String},
		},
		Required: []string{"time", "duration", "place_name_en"},
	}

	itineraryDay := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"day":   {Type: jsonschema.Integer},
			"title": {Type: jsonschema.String},
			"items": {Type: jsonschema.Array, Items: &itineraryItem},
		},
		Required: []string{"day", "items"},
	}

	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolRecommendPlaces,
				Description: "Recommend specific places from the provided context",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"place_names": placeNames,
					},
					Required: []string{"place_names"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolCreateItinerary,
				Description: "Build a multi-day itinerary referencing places from the provided context",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"title":      {Type: jsonschema.String},
						"total_days": {Type: jsonschema.Integer},
						"days":       {Type: jsonschema.Array, Items: &itineraryDay},
					},
					Required: []string{"title", "total_days", "days"},
				},
			},
		},
	}
}

func (s *ChatService) Chat(ctx context.Context, req request_models.ChatRequest) (*response_models.ChatResponse, error) {
	userQuery := latestUserMessage(req.Messages)
	if userQuery == "" {
		return nil, utils.ErrInvalidInput
	}

	ragCtx, err := s.ragService.PerformRAG(ctx, userQuery, SearchOptions{
		Category:  req.Category,
		LocalOnly: req.LocalOnly,
	})
	if err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: utils.SystemPrompt + "\n\n" + ragCtx.Context,
	})
	for _, m := range req.Messages {
		role := m.Role
		if role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	reply, err := s.completionClient.CreateChatCompletion(ctx, messages, chatTools())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrCompletionFailed, err)
	}

	resp := &response_models.ChatResponse{Message: reply.Content}

	for _, call := range reply.ToolCalls {
		switch call.Function.Name {
		case toolRecommendPlaces:
			places, err := s.resolveRecommendedPlaces(ctx, call.Function.Arguments)
			if err != nil {
				log.Printf("Chat: dropping %s call: %v", toolRecommendPlaces, err)
				continue
			}
			resp.Places = append(resp.Places, places...)
		case toolCreateItinerary:
			itinerary, err := s.resolveItinerary(ctx, call.Function.Arguments)
			if err != nil {
				log.Printf("Chat: dropping %s call: %v", toolCreateItinerary, err)
				continue
			}
			resp.Itinerary = itinerary
		default:
			log.Printf("Chat: ignoring unknown tool call %q", call.Function.Name)
		}
	}

	return resp, nil
}

func (s *ChatService) resolveRecommendedPlaces(ctx context.Context, arguments string) ([]response_models.PlaceResponse, error) {
	var args struct {
		PlaceNames []string `json:"place_names"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("parsing tool arguments: %w", err)
	}

	places, err := s.placeRepo.ListByNamesEn(ctx, args.PlaceNames)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	responses := make([]response_models.PlaceResponse, 0, len(places))
	for i := range places {
		responses = append(responses, response_models.NewPlaceResponse(&places[i]))
	}
	return responses, nil
}

func (s *ChatService) resolveItinerary(ctx context.Context, arguments string) (*response_models.Itinerary, error) {
	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(arguments), &itinerary); err != nil {
		return nil, fmt.Errorf("parsing itinerary arguments: %w", err)
	}
	s.attachPlaces(ctx, &itinerary)
	return &itinerary, nil
}

// attachPlaces joins itinerary items back to stored records on name_en.
// An unresolvable name keeps its text entry; the card data is just absent.
func (s *ChatService) attachPlaces(ctx context.Context, itinerary *response_models.Itinerary) {
	var names []string
	for _, day := range itinerary.Days {
		for _, item := range day.Items {
			if item.PlaceEn != "" {
				names = append(names, item.PlaceEn)
			}
		}
	}

	places, err := s.placeRepo.ListByNamesEn(ctx, names)
	if err != nil {
		log.Printf("Chat: itinerary place lookup failed: %v", err)
		return
	}

	byName := make(map[string]*db_models.Place, len(places))
	for i := range places {
		byName[places[i].NameEn] = &places[i]
	}

	for d := range itinerary.Days {
		for i := range itinerary.Days[d].Items {
			item := &itinerary.Days[d].Items[i]
			if place, ok := byName[item.PlaceEn]; ok {
				resp := response_models.NewPlaceResponse(place)
				item.Place = &resp
			}
		}
	}
}

func (s *ChatService) PlannerChat(ctx context.Context, req request_models.PlannerRequest) (*response_models.ChatResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, utils.ErrInvalidInput
	}
	dayCount := req.DayCount
	if dayCount <= 0 {
		dayCount = 1
	}

	results, err := s.ragService.Retrieve(ctx, req.Prompt, SearchOptions{MaxResults: plannerMaxResults})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &response_models.ChatResponse{Message: utils.NoDataSentinel}, nil
	}

	placeBlocks := make([]string, len(results))
	for i, result := range results {
		placeBlocks[i] = utils.FormatPlaceForContext(result.Place)
	}

	cacheKey := mem.CacheKey(req.Prompt, placeBlocks, dayCount)
	planJSON, cached := s.planCache.Get(cacheKey)
	if cached {
		log.Printf("Planner: cache hit for %d-day plan", dayCount)
	} else {
		planJSON, err = s.planClient.GeneratePlanJSON(ctx, req.Prompt, placeBlocks, dayCount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrCompletionFailed, err)
		}
		s.planCache.Set(cacheKey, planJSON, planCacheTTL)
	}

	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(planJSON), &itinerary); err != nil {
		return nil, fmt.Errorf("%w: invalid plan JSON: %v", utils.ErrCompletionFailed, err)
	}
	s.attachPlaces(ctx, &itinerary)

	return &response_models.ChatResponse{
		Message:   fmt.Sprintf("Here's a %d-day plan built from %d matching places.", dayCount, len(results)),
		Itinerary: &itinerary,
	}, nil
}

func latestUserMessage(messages []request_models.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}
