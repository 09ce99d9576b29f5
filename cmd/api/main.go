package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docchat/internal/approach"
	"docchat/internal/config"
	"docchat/internal/http"
	"docchat/internal/llm"
	"docchat/internal/retrieval"
	"docchat/internal/search"
	"docchat/internal/tokens"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Completion and embedding client (external service layer)
	llmClient := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ChatModel, cfg.EmbeddingModel)

	// Document index
	var index search.Index
	switch cfg.SearchBackend {
	case config.SearchBackendAzure:
		index = search.NewAzureIndex(
			cfg.SearchEndpoint,
			cfg.SearchAPIKey,
			cfg.SearchIndex,
			cfg.SourcePageField,
			cfg.ContentField,
			cfg.QueryLanguage,
			cfg.QuerySpeller,
		)
		slog.Info("Search index ready", "backend", cfg.SearchBackend, "index", cfg.SearchIndex)
	case config.SearchBackendQdrant:
		localIndex, err := search.NewLocalIndex(cfg.QdrantURL, cfg.QdrantCollection, cfg.SourcePageField, cfg.ContentField)
		if err != nil {
			log.Fatalf("Failed to create Qdrant index: %v", err)
		}
		index = localIndex
		slog.Info("Search index ready", "backend", cfg.SearchBackend, "collection", cfg.QdrantCollection)
	}

	composer := retrieval.NewComposer(index, llmClient)

	counter, err := tokens.NewCounter(cfg.ChatModel)
	if err != nil {
		log.Fatalf("Failed to load token encoding: %v", err)
	}

	chatApproach := approach.NewChatReadRetrieveRead(llmClient, composer, counter)
	askApproach := approach.NewRetrieveThenRead(llmClient, composer)
	slog.Info("Approaches initialized", "chat_model", cfg.ChatModel, "embedding_model", cfg.EmbeddingModel)

	router := http.NewRouter(&http.Deps{
		ChatApproach: chatApproach,
		AskApproach:  askApproach,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
