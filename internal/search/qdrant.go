package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"docchat/internal/contextutil"
)

// LocalIndex is an Index implementation over a local Qdrant instance, for
// deployments without a managed search service. It supports vector queries
// only: text matching, filter expressions, semantic reranking and captions
// are not available and are ignored with a logged warning.
type LocalIndex struct {
	SourceField  string
	ContentField string

	client     *qdrant.Client
	collection string
}

// NewLocalIndex creates a Qdrant-backed index client. urlStr should be in
// the format "http://host:port"; the gRPC port is derived from the HTTP port.
func NewLocalIndex(urlStr, collection, sourceField, contentField string) (*LocalIndex, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	// gRPC port is conventionally the HTTP port + 1.
	port := 6334
	if parsedURL.Port() != "" {
		if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &LocalIndex{
		SourceField:  sourceField,
		ContentField: contentField,
		client:       client,
		collection:   collection,
	}, nil
}

// Search implements Index.
func (s *LocalIndex) Search(ctx context.Context, q Query) ([]Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if q.Vector == nil {
		return nil, fmt.Errorf("local index requires a vector query; set retrieval mode to vectors or hybrid")
	}
	if q.Text != "" || q.Filter != "" || q.SemanticRanking {
		logger.WarnContext(ctx, "local index ignores text, filter and semantic options", "text", q.Text != "", "filter", q.Filter != "", "semantic", q.SemanticRanking)
	}

	limit := uint64(q.Top)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(q.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}

	docs := make([]Document, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		doc := Document{Score: float64(point.Score)}
		if point.Payload != nil {
			if v, ok := point.Payload[s.SourceField]; ok {
				doc.Source = v.GetStringValue()
			}
			if v, ok := point.Payload[s.ContentField]; ok {
				doc.Content = v.GetStringValue()
			}
		}
		docs = append(docs, doc)
	}

	logger.DebugContext(ctx, "local search completed", "collection", s.collection, "top", q.Top, "results", len(docs))
	return docs, nil
}
