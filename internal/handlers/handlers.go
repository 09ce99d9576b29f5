// Package handlers implements the HTTP endpoints of the API.
package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_approach.go -package=mocks docchat/internal/handlers ChatApproach
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ask_approach.go -package=mocks docchat/internal/handlers AskApproach

import (
	"context"

	"docchat/internal/approach"
	"docchat/internal/llm"
)

// ChatApproach is the conversational strategy behind /api/chat. It must
// support both buffered and streamed responses.
type ChatApproach interface {
	Run(ctx context.Context, messages []llm.Message, overrides approach.Overrides, sessionState any) (approach.Response, error)
	RunStream(ctx context.Context, messages []llm.Message, overrides approach.Overrides, sessionState any, emit func(approach.StreamChunk) error) error
}

// AskApproach is the single-shot strategy behind /api/ask.
type AskApproach interface {
	Run(ctx context.Context, messages []llm.Message, overrides approach.Overrides, sessionState any) (approach.Response, error)
}

// requestContext is the context object of a request envelope.
type requestContext struct {
	Overrides approach.Overrides `json:"overrides"`
}

// chatRequest is the request envelope shared by /api/chat and /api/ask.
type chatRequest struct {
	Messages     []llm.Message  `json:"messages"`
	Context      requestContext `json:"context"`
	SessionState any            `json:"session_state"`
	Stream       bool           `json:"stream"`
}
