// Package approach implements the chat strategies of the RAG backend:
// retrieve-then-read for single-shot questions and chat-read-retrieve-read
// for conversations, where the model first rewrites the question into a
// search query.
package approach

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks docchat/internal/approach Completer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks docchat/internal/approach Retriever

import (
	"context"

	"docchat/internal/llm"
	"docchat/internal/retrieval"
)

// Completer is the chat-completion collaborator, defined from this
// package's perspective (consumer-first).
type Completer interface {
	// Complete sends a buffered chat completion request.
	Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error)
	// Stream sends a streaming chat completion request.
	Stream(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error)
}

// Retriever runs one composed retrieval call against the search index.
type Retriever interface {
	Retrieve(ctx context.Context, opts retrieval.Options) (retrieval.Results, error)
}

// TokenCounter estimates message token costs for the configured model.
type TokenCounter interface {
	// Model returns the model identifier the counter was built for.
	Model() string
	// CountMessage returns the estimated token cost of one chat message.
	CountMessage(m llm.Message) int
}

// Approach is one chat strategy.
type Approach interface {
	// Run processes a conversation and returns a buffered response
	// envelope. messages holds the conversation oldest first; the last
	// message must be the user's new question.
	Run(ctx context.Context, messages []llm.Message, overrides Overrides, sessionState any) (Response, error)
}

// Streamer is implemented by approaches that support streamed responses.
// emit is called once per response envelope, in order; returning an error
// from emit aborts the stream.
type Streamer interface {
	RunStream(ctx context.Context, messages []llm.Message, overrides Overrides, sessionState any, emit func(StreamChunk) error) error
}

// validateMessages checks the conversation shape before any external call
// is made.
func validateMessages(messages []llm.Message) error {
	if len(messages) == 0 {
		return &ValidationError{Field: "messages", Message: "cannot be empty"}
	}
	last := messages[len(messages)-1]
	if last.Role != llm.RoleUser {
		return &ValidationError{Field: "messages", Message: "last message must have role user"}
	}
	if last.Content == "" {
		return &ValidationError{Field: "messages", Message: "last message content cannot be empty"}
	}
	return nil
}
