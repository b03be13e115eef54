package services

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daejeonmate/internal/models/db_models"
	"daejeonmate/internal/models/request_models"
	"daejeonmate/internal/repositories"
	mem "daejeonmate/pkg/memcache"
	"daejeonmate/pkg/utils"
)

type fakeCompletionClient struct {
	reply        *openai.ChatCompletionMessage
	err          error
	gotMessages  []openai.ChatCompletionMessage
	gotToolCount int
}

func (f *fakeCompletionClient) CreateChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (*openai.ChatCompletionMessage, error) {
	f.gotMessages = messages
	f.gotToolCount = len(tools)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

type fakePlanClient struct {
	planJSON string
	err      error
	calls    int
}

func (f *fakePlanClient) GeneratePlanJSON(ctx context.Context, userPrompt string, placeBlocks []string, dayCount int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.planJSON, nil
}

func (f *fakePlanClient) Close() error { return nil }

func chatFixtureRepo() *fakePlaceRepo {
	repo := newFakePlaceRepo()
	repo.vectorResults = []repositories.PlaceWithSimilarity{
		matchFor("Sungsimdang", db_models.CategoryRestaurant, true, 0.86),
		matchFor("Hanbat Arboretum", db_models.CategoryAttraction, true, 0.78),
	}
	for i := range repo.vectorResults {
		place := repo.vectorResults[i].Place
		_, _ = repo.Create(context.Background(), &place)
	}
	return repo
}

func newChatService(repo *fakePlaceRepo, completion *fakeCompletionClient, plan *fakePlanClient) ChatServiceInterface {
	rag := NewRAGService(repo, newFakeEmbedder(), testConfig())
	return NewChatService(rag, repo, completion, plan, mem.NewPlanCache())
}

func userChat(content string) request_models.ChatRequest {
	return request_models.ChatRequest{
		Messages: []request_models.ChatMessage{{Role: "user", Content: content}},
	}
}

func TestChatInjectsContextAndTools(t *testing.T) {
	repo := chatFixtureRepo()
	completion := &fakeCompletionClient{
		reply: &openai.ChatCompletionMessage{Content: "I'd start with the bakery."},
	}
	service := newChatService(repo, completion, &fakePlanClient{})

	resp, err := service.Chat(context.Background(), userChat("where should I eat in Daejeon?"))
	require.NoError(t, err)
	assert.Equal(t, "I'd start with the bakery.", resp.Message)

	require.NotEmpty(t, completion.gotMessages)
	system := completion.gotMessages[0]
	assert.Equal(t, openai.ChatMessageRoleSystem, system.Role)
	assert.Contains(t, system.Content, "Sungsimdang")
	assert.Contains(t, system.Content, "**Available Places Context:**")

	assert.Equal(t, 2, completion.gotToolCount)
}

func TestChatNoMatchesStillAnswersWithSentinelContext(t *testing.T) {
	repo := newFakePlaceRepo()
	completion := &fakeCompletionClient{
		reply: &openai.ChatCompletionMessage{Content: "Sorry, I don't have data on that."},
	}
	service := newChatService(repo, completion, &fakePlanClient{})

	resp, err := service.Chat(context.Background(), userChat("underwater basket weaving classes"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.Contains(t, completion.gotMessages[0].Content, utils.NoDataSentinel)
}

func TestChatResolvesRecommendedPlaces(t *testing.T) {
	repo := chatFixtureRepo()
	completion := &fakeCompletionClient{
		reply: &openai.ChatCompletionMessage{
			Content: "You have to try this place.",
			ToolCalls: []openai.ToolCall{{
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      toolRecommendPlaces,
					Arguments: `{"place_names":["Sungsimdang","Not A Real Place"]}`,
				},
			}},
		},
	}
	service := newChatService(repo, completion, &fakePlanClient{})

	resp, err := service.Chat(context.Background(), userChat("best bakery?"))
	require.NoError(t, err)

	require.Len(t, resp.Places, 1, "unknown names resolve to nothing, not an error")
	assert.Equal(t, "Sungsimdang", resp.Places[0].NameEn)
}

func TestChatResolvesItineraryToolCall(t *testing.T) {
	repo := chatFixtureRepo()
	completion := &fakeCompletionClient{
		reply: &openai.ChatCompletionMessage{
			Content: "Here's a day plan.",
			ToolCalls: []openai.ToolCall{{
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name: toolCreateItinerary,
					Arguments: `{"title":"One day in Daejeon","total_days":1,"days":[{"day":1,"items":[
						{"time":"09:00","duration":90,"place_name_en":"Sungsimdang"},
						{"time":"11:00","duration":120,"place_name_en":"Not A Real Place"}
					]}]}`,
				},
			}},
		},
	}
	service := newChatService(repo, completion, &fakePlanClient{})

	resp, err := service.Chat(context.Background(), userChat("plan me a day"))
	require.NoError(t, err)
	require.NotNil(t, resp.Itinerary)
	require.Len(t, resp.Itinerary.Days, 1)

	items := resp.Itinerary.Days[0].Items
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Place)
	assert.Equal(t, "Sungsimdang", items[0].Place.NameEn)
	assert.Nil(t, items[1].Place, "unresolvable name keeps its text entry without card data")
}

func TestChatDropsMalformedToolCall(t *testing.T) {
	repo := chatFixtureRepo()
	completion := &fakeCompletionClient{
		reply: &openai.ChatCompletionMessage{
			Content: "Recommendation incoming.",
			ToolCalls: []openai.ToolCall{{
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      toolRecommendPlaces,
					Arguments: `{"place_names":`,
				},
			}},
		},
	}
	service := newChatService(repo, completion, &fakePlanClient{})

	resp, err := service.Chat(context.Background(), userChat("best bakery?"))
	require.NoError(t, err)
	assert.Empty(t, resp.Places)
	assert.Equal(t, "Recommendation incoming.", resp.Message)
}

func TestChatRequiresUserMessage(t *testing.T) {
	service := newChatService(newFakePlaceRepo(), &fakeCompletionClient{}, &fakePlanClient{})

	_, err := service.Chat(context.Background(), request_models.ChatRequest{
		Messages: []request_models.ChatMessage{{Role: "assistant", Content: "hello!"}},
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestChatWrapsCompletionFailure(t *testing.T) {
	repo := chatFixtureRepo()
	completion := &fakeCompletionClient{err: errors.New("rate limited")}
	service := newChatService(repo, completion, &fakePlanClient{})

	_, err := service.Chat(context.Background(), userChat("best bakery?"))
	assert.ErrorIs(t, err, utils.ErrCompletionFailed)
}

func TestPlannerChatBuildsItinerary(t *testing.T) {
	repo := chatFixtureRepo()
	plan := &fakePlanClient{
		planJSON: `{"title":"Two days in Daejeon","total_days":2,"days":[
			{"day":1,"items":[{"time":"09:00","duration":90,"place_name_en":"Sungsimdang"}]},
			{"day":2,"items":[{"time":"10:00","duration":120,"place_name_en":"Hanbat Arboretum"}]}
		]}`,
	}
	service := newChatService(repo, &fakeCompletionClient{}, plan)

	resp, err := service.PlannerChat(context.Background(), request_models.PlannerRequest{
		Prompt:   "foodie weekend in Daejeon",
		DayCount: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Itinerary)
	assert.Equal(t, 2, resp.Itinerary.TotalDays)
	require.NotNil(t, resp.Itinerary.Days[0].Items[0].Place)
	assert.Equal(t, "Sungsimdang", resp.Itinerary.Days[0].Items[0].Place.NameEn)
}

func TestPlannerChatCachesIdenticalRequests(t *testing.T) {
	repo := chatFixtureRepo()
	plan := &fakePlanClient{planJSON: `{"title":"Plan","total_days":1,"days":[]}`}
	service := newChatService(repo, &fakeCompletionClient{}, plan)

	req := request_models.PlannerRequest{Prompt: "foodie weekend", DayCount: 1}

	_, err := service.PlannerChat(context.Background(), req)
	require.NoError(t, err)
	_, err = service.PlannerChat(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, plan.calls, "identical request within the TTL reuses the cached plan")
}

func TestPlannerChatNoMatchesReturnsSentinel(t *testing.T) {
	repo := newFakePlaceRepo()
	plan := &fakePlanClient{}
	service := newChatService(repo, &fakeCompletionClient{}, plan)

	resp, err := service.PlannerChat(context.Background(), request_models.PlannerRequest{Prompt: "anything"})
	require.NoError(t, err)
	assert.Equal(t, utils.NoDataSentinel, resp.Message)
	assert.Nil(t, resp.Itinerary)
	assert.Equal(t, 0, plan.calls)
}

func TestPlannerChatWrapsInvalidPlanJSON(t *testing.T) {
	repo := chatFixtureRepo()
	plan := &fakePlanClient{planJSON: `{"title":`}
	service := newChatService(repo, &fakeCompletionClient{}, plan)

	_, err := service.PlannerChat(context.Background(), request_models.PlannerRequest{Prompt: "weekend"})
	assert.ErrorIs(t, err, utils.ErrCompletionFailed)
}
