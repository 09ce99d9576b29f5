// Package search defines the contract with the document search index and
// its implementations.
package search

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_index.go -package=mocks docchat/internal/search Index

import "context"

// vectorTopK is how many nearest neighbors the vector leg of a query
// requests before fusion with the text leg.
const vectorTopK = 50

// Query describes one search call against the index.
type Query struct {
	// Text is the lexical query. Empty means vector-only search.
	Text string
	// Filter is an OData filter expression, or empty for no filter.
	Filter string
	// Vector is the query embedding. Nil means text-only search.
	Vector []float32
	// Top is the number of documents to return.
	Top int
	// SemanticRanking requests the index's semantic reranking pass.
	// Only meaningful when Text is set.
	SemanticRanking bool
	// Captions requests extractive captions for each hit. Only applied
	// together with SemanticRanking.
	Captions bool
}

// Document is one ranked hit returned by the index.
type Document struct {
	// Source identifies the document (e.g. a source page file name).
	Source string
	// Content is the raw body text of the hit.
	Content string
	// Captions holds extractive caption texts when they were requested.
	Captions []string
	// Score is the retrieval relevance score.
	Score float64
	// RerankerScore is the semantic reranker score, zero when semantic
	// ranking was not applied.
	RerankerScore float64
}

// Index is the search collaborator the retrieval layer depends on.
type Index interface {
	// Search runs one query and returns ranked documents. An empty
	// result set is not an error.
	Search(ctx context.Context, q Query) ([]Document, error)
}
