package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestIndex(serverURL string) *AzureIndex {
	return NewAzureIndex(serverURL, "test-key", "docs", "sourcepage", "content", "zh-cn", "none")
}

func TestAzureIndex_Search_RequestComposition(t *testing.T) {
	tests := []struct {
		name      string
		query     Query
		checkBody func(t *testing.T, body map[string]any)
	}{
		{
			name: "text only",
			query: Query{
				Text: "劳动合同",
				Top:  3,
			},
			checkBody: func(t *testing.T, body map[string]any) {
				if body["search"] != "劳动合同" {
					t.Errorf("search = %v, want 劳动合同", body["search"])
				}
				if _, ok := body["vectorQueries"]; ok {
					t.Error("text-only query must not attach vectorQueries")
				}
				if _, ok := body["queryType"]; ok {
					t.Error("queryType must be absent without semantic ranking")
				}
			},
		},
		{
			name: "vector only",
			query: Query{
				Vector: []float32{0.1, 0.2},
				Top:    3,
			},
			checkBody: func(t *testing.T, body map[string]any) {
				if _, ok := body["search"]; ok {
					t.Error("vector-only query must not attach search text")
				}
				vqs, ok := body["vectorQueries"].([]any)
				if !ok || len(vqs) != 1 {
					t.Fatalf("vectorQueries = %v, want one entry", body["vectorQueries"])
				}
				vq := vqs[0].(map[string]any)
				if vq["fields"] != "embedding" {
					t.Errorf("vector fields = %v, want embedding", vq["fields"])
				}
				if vq["k"] != float64(50) {
					t.Errorf("vector k = %v, want 50", vq["k"])
				}
			},
		},
		{
			name: "hybrid with semantic ranking and captions",
			query: Query{
				Text:            "试用期",
				Vector:          []float32{0.5},
				Top:             5,
				SemanticRanking: true,
				Captions:        true,
			},
			checkBody: func(t *testing.T, body map[string]any) {
				if body["search"] != "试用期" {
					t.Errorf("search = %v, want 试用期", body["search"])
				}
				if body["queryType"] != "semantic" {
					t.Errorf("queryType = %v, want semantic", body["queryType"])
				}
				if body["semanticConfiguration"] != "default" {
					t.Errorf("semanticConfiguration = %v, want default", body["semanticConfiguration"])
				}
				if body["captions"] != "extractive|highlight-false" {
					t.Errorf("captions = %v, want extractive|highlight-false", body["captions"])
				}
				if body["queryLanguage"] != "zh-cn" {
					t.Errorf("queryLanguage = %v, want zh-cn", body["queryLanguage"])
				}
				if _, ok := body["vectorQueries"]; !ok {
					t.Error("hybrid query must attach vectorQueries")
				}
			},
		},
		{
			name: "semantic flag without text stays plain",
			query: Query{
				Vector:          []float32{0.5},
				Top:             3,
				SemanticRanking: true,
			},
			checkBody: func(t *testing.T, body map[string]any) {
				if _, ok := body["queryType"]; ok {
					t.Error("semantic ranking must not be requested without text search")
				}
			},
		},
		{
			name: "filter is forwarded",
			query: Query{
				Text:   "工资",
				Filter: "category ne 'internal'",
				Top:    3,
			},
			checkBody: func(t *testing.T, body map[string]any) {
				if body["filter"] != "category ne 'internal'" {
					t.Errorf("filter = %v, want category ne 'internal'", body["filter"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/indexes/docs/docs/search" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("api-key") != "test-key" {
					t.Error("missing api-key header")
				}
				if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
					t.Errorf("failed to decode request body: %v", err)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"value":[]}`))
			}))
			defer server.Close()

			index := newTestIndex(server.URL)
			if _, err := index.Search(context.Background(), tt.query); err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			tt.checkBody(t, gotBody)
		})
	}
}

func TestAzureIndex_Search_ParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"value": [
				{
					"sourcepage": "labor.pdf",
					"content": "合同期限一般为一年",
					"@search.score": 1.5,
					"@search.rerankerScore": 2.7,
					"@search.captions": [{"text": "合同期限"}, {"text": "一般为一年"}]
				},
				{
					"sourcepage": "overtime.pdf",
					"content": "加班时间不得超过每月36小时",
					"@search.score": 0.9
				}
			]
		}`))
	}))
	defer server.Close()

	index := newTestIndex(server.URL)
	docs, err := index.Search(context.Background(), Query{Text: "合同", Top: 3})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("Search() returned %d docs, want 2", len(docs))
	}
	first := docs[0]
	if first.Source != "labor.pdf" || first.Content != "合同期限一般为一年" {
		t.Errorf("unexpected first doc: %+v", first)
	}
	if first.Score != 1.5 || first.RerankerScore != 2.7 {
		t.Errorf("unexpected scores: %+v", first)
	}
	if len(first.Captions) != 2 || first.Captions[0] != "合同期限" {
		t.Errorf("unexpected captions: %v", first.Captions)
	}
	if docs[1].RerankerScore != 0 {
		t.Errorf("missing reranker score should parse as 0, got %v", docs[1].RerankerScore)
	}
}

func TestAzureIndex_Search_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index not found", http.StatusNotFound)
	}))
	defer server.Close()

	index := newTestIndex(server.URL)
	if _, err := index.Search(context.Background(), Query{Text: "x", Top: 3}); err == nil {
		t.Error("Search() expected error on bad status, got nil")
	}
}
