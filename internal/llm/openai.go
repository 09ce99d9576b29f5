package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"docchat/internal/contextutil"
)

// Client is a chat-completion and embedding client backed by an
// OpenAI-compatible API.
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel string
}

// NewClient creates a new Client. baseURL may be empty to use the API's
// default endpoint; set it to point at an Azure OpenAI deployment or a local
// OpenAI-compatible server.
func NewClient(baseURL, apiKey, chatModel, embeddingModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:            openai.NewClientWithConfig(cfg),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
	}
}

// ChatModel returns the configured chat model identifier.
func (c *Client) ChatModel() string {
	return c.chatModel
}

func (c *Client) buildRequest(req CompletionRequest, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	out := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		N:           1,
		Stream:      stream,
	}

	if len(req.Functions) > 0 {
		functions := make([]openai.FunctionDefinition, 0, len(req.Functions))
		for _, f := range req.Functions {
			functions = append(functions, openai.FunctionDefinition{
				Name:        f.Name,
				Description: f.Description,
				Parameters:  f.Parameters,
			})
		}
		out.Functions = functions
		out.FunctionCall = "auto"
	}

	return out
}

// Complete sends a buffered chat completion request.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "chat completion request", "model", c.chatModel, "messages", len(req.Messages), "functions", len(req.Functions))

	resp, err := c.api.CreateChatCompletion(ctx, c.buildRequest(req, false))
	if err != nil {
		return Completion{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	out := Completion{Content: choice.Message.Content}
	if fc := choice.Message.FunctionCall; fc != nil {
		out.FunctionCall = &FunctionCall{Name: fc.Name, Arguments: fc.Arguments}
	}

	logger.DebugContext(ctx, "chat completion received", "finish_reason", choice.FinishReason, "content_length", len(out.Content))
	return out, nil
}

// Stream sends a streaming chat completion request. The caller must Close
// the returned stream.
func (c *Client) Stream(ctx context.Context, req CompletionRequest) (Stream, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "streaming chat completion request", "model", c.chatModel, "messages", len(req.Messages))

	s, err := c.api.CreateChatCompletionStream(ctx, c.buildRequest(req, true))
	if err != nil {
		return nil, fmt.Errorf("chat completion stream failed: %w", err)
	}
	return &openaiStream{inner: s}, nil
}

// Embed computes the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding request returned no data")
	}
	return resp.Data[0].Embedding, nil
}

// openaiStream adapts the SDK stream to the Stream interface.
type openaiStream struct {
	inner *openai.ChatCompletionStream
}

// Recv returns the next delta. Chunks with an empty choice list are skipped;
// some API versions send one as the first event of a stream.
func (s *openaiStream) Recv() (Delta, error) {
	for {
		chunk, err := s.inner.Recv()
		if err != nil {
			return Delta{}, err
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		d := chunk.Choices[0].Delta
		return Delta{Role: d.Role, Content: d.Content}, nil
	}
}

func (s *openaiStream) Close() error {
	return s.inner.Close()
}
