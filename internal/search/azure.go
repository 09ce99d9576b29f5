package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"docchat/internal/contextutil"
)

const azureAPIVersion = "2023-11-01"

// AzureIndex is an Index implementation speaking the Azure AI Search
// REST API. It supports text, vector and hybrid queries, semantic
// reranking and extractive captions.
type AzureIndex struct {
	Endpoint      string
	Index         string
	SourceField   string
	ContentField  string
	QueryLanguage string
	QuerySpeller  string

	apiKey string
	client *http.Client
}

// NewAzureIndex creates a client for one search index. sourceField and
// contentField name the index fields holding the citation identifier and
// the body text.
func NewAzureIndex(endpoint, apiKey, index, sourceField, contentField, queryLanguage, querySpeller string) *AzureIndex {
	return &AzureIndex{
		Endpoint:      endpoint,
		Index:         index,
		SourceField:   sourceField,
		ContentField:  contentField,
		QueryLanguage: queryLanguage,
		QuerySpeller:  querySpeller,
		apiKey:        apiKey,
		client:        http.DefaultClient,
	}
}

type azureVectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	Fields string    `json:"fields"`
	K      int       `json:"k"`
}

type azureSearchRequest struct {
	Search                string             `json:"search,omitempty"`
	Filter                string             `json:"filter,omitempty"`
	Top                   int                `json:"top"`
	QueryType             string             `json:"queryType,omitempty"`
	SemanticConfiguration string             `json:"semanticConfiguration,omitempty"`
	QueryLanguage         string             `json:"queryLanguage,omitempty"`
	Speller               string             `json:"speller,omitempty"`
	Captions              string             `json:"captions,omitempty"`
	VectorQueries         []azureVectorQuery `json:"vectorQueries,omitempty"`
}

type azureSearchResponse struct {
	Value []map[string]any `json:"value"`
}

// Search implements Index.
func (s *AzureIndex) Search(ctx context.Context, q Query) ([]Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	payload := azureSearchRequest{
		Search: q.Text,
		Filter: q.Filter,
		Top:    q.Top,
	}
	if q.Text != "" && q.SemanticRanking {
		payload.QueryType = "semantic"
		payload.SemanticConfiguration = "default"
		payload.QueryLanguage = s.QueryLanguage
		payload.Speller = s.QuerySpeller
		if q.Captions {
			payload.Captions = "extractive|highlight-false"
		}
	}
	if q.Vector != nil {
		payload.VectorQueries = []azureVectorQuery{
			{
				Kind:   "vector",
				Vector: q.Vector,
				Fields: "embedding",
				K:      vectorTopK,
			},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", s.Endpoint, s.Index, azureAPIVersion)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send search request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var searchResp azureSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	docs := make([]Document, 0, len(searchResp.Value))
	for _, hit := range searchResp.Value {
		doc := Document{}
		doc.Source, _ = hit[s.SourceField].(string)
		doc.Content, _ = hit[s.ContentField].(string)
		doc.Score, _ = hit["@search.score"].(float64)
		doc.RerankerScore, _ = hit["@search.rerankerScore"].(float64)
		if rawCaptions, ok := hit["@search.captions"].([]any); ok {
			for _, rawCaption := range rawCaptions {
				if caption, ok := rawCaption.(map[string]any); ok {
					if text, ok := caption["text"].(string); ok {
						doc.Captions = append(doc.Captions, text)
					}
				}
			}
		}
		docs = append(docs, doc)
	}

	logger.DebugContext(ctx, "search completed", "index", s.Index, "top", q.Top, "results", len(docs))
	return docs, nil
}
