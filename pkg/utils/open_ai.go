package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingClientInterface converts text into fixed-length vectors. A
// failure is a hard error; callers never get a substitute vector, since a
// zero vector would silently corrupt similarity rankings.
type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error)
	Dimensions() int
	Model() string
}

type OpenAIEmbeddingClient struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

func NewOpenAIEmbeddingClient(apiKey, model string, dimensions int) EmbeddingClientInterface {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIEmbeddingClient{
		client:     openai.NewClient(apiKey),
		model:      openai.EmbeddingModel(model),
		dimensions: dimensions,
	}
}

func (c *OpenAIEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	vectors, err := c.GetEmbeddings(ctx, []string{text})
	if err != nil {
		return pgvector.Vector{}, err
	}
	return vectors[0], nil
}

func (c *OpenAIEmbeddingClient) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          texts,
		Model:          c.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([]pgvector.Vector, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = pgvector.NewVector(d.Embedding)
	}
	return vectors, nil
}

func (c *OpenAIEmbeddingClient) Dimensions() int { return c.dimensions }

func (c *OpenAIEmbeddingClient) Model() string { return string(c.model) }

// CompletionClientInterface is the chat boundary: the assembled context
// goes in with the conversation, tool calls come back out.
type CompletionClientInterface interface {
	CreateChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (*openai.ChatCompletionMessage, error)
}

type OpenAICompletionClient struct {
	client *openai.Client
	model  string
}

func NewOpenAICompletionClient(apiKey, model string) CompletionClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICompletionClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAICompletionClient) CreateChatCompletion(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
	tools []openai.Tool,
) (*openai.ChatCompletionMessage, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion: no choices returned")
	}
	return &resp.Choices[0].Message, nil
}

// NewEmbeddingClient keeps provider selection in one place. Only OpenAI
// ships real embeddings today; the switch stays so a second provider is a
// one-case change.
func NewEmbeddingClient(provider, apiKey, model string, dimensions int) (EmbeddingClientInterface, error) {
	switch strings.ToLower(provider) {
	case "", "openai":
		return NewOpenAIEmbeddingClient(apiKey, model, dimensions), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
