// Package retrieval composes search calls from per-request options and
// normalizes the results into citation-tagged source lines.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"docchat/internal/contextutil"
	"docchat/internal/search"
)

// Embedder computes embedding vectors for query texts.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Options selects how one retrieval call is composed.
type Options struct {
	// QueryText is the search query. It is also the embedding input when
	// the vector leg is active.
	QueryText string
	// Filter is an OData filter expression for the index, or empty.
	Filter string
	// Top is the number of documents to request.
	Top int
	// UseText enables the lexical leg; when false the query text is
	// dropped from the search call.
	UseText bool
	// UseVector enables the vector leg; when false no embedding is
	// computed or attached.
	UseVector bool
	// SemanticRanker requests semantic reranking. Only applied when
	// UseText is set.
	SemanticRanker bool
	// SemanticCaptions requests extractive captions. Only applied when
	// UseText is set.
	SemanticCaptions bool
	// MinSearchScore drops results scoring below it.
	MinSearchScore float64
	// MinRerankerScore drops results whose reranker score is below it.
	MinRerankerScore float64
}

// Results holds the filtered documents of one retrieval call together with
// their normalized source lines. SourceLines[i] corresponds to Documents[i]
// and has the form "source: body" with newlines collapsed, so downstream
// citation scanning can stay line-based.
type Results struct {
	Documents   []search.Document
	SourceLines []string
}

// Content returns all source lines joined into one sources block.
func (r Results) Content() string {
	return strings.Join(r.SourceLines, "\n")
}

// Composer runs composed search calls against an index.
type Composer struct {
	index    search.Index
	embedder Embedder
}

// NewComposer creates a Composer.
func NewComposer(index search.Index, embedder Embedder) *Composer {
	return &Composer{index: index, embedder: embedder}
}

// Retrieve embeds the query when the vector leg is active, runs one search
// call and returns score-filtered, normalized results. An empty result set
// is not an error.
func (c *Composer) Retrieve(ctx context.Context, opts Options) (Results, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var vector []float32
	if opts.UseVector {
		var err error
		vector, err = c.embedder.Embed(ctx, opts.QueryText)
		if err != nil {
			return Results{}, fmt.Errorf("failed to embed query: %w", err)
		}
	}

	text := opts.QueryText
	if !opts.UseText {
		text = ""
	}

	useCaptions := opts.SemanticCaptions && opts.UseText
	docs, err := c.index.Search(ctx, search.Query{
		Text:            text,
		Filter:          opts.Filter,
		Vector:          vector,
		Top:             opts.Top,
		SemanticRanking: opts.SemanticRanker && opts.UseText,
		Captions:        useCaptions,
	})
	if err != nil {
		return Results{}, fmt.Errorf("search failed: %w", err)
	}

	results := Results{
		Documents:   make([]search.Document, 0, len(docs)),
		SourceLines: make([]string, 0, len(docs)),
	}
	for _, doc := range docs {
		if doc.Score < opts.MinSearchScore || doc.RerankerScore < opts.MinRerankerScore {
			continue
		}
		results.Documents = append(results.Documents, doc)
		results.SourceLines = append(results.SourceLines, sourceLine(doc, useCaptions))
	}

	logger.InfoContext(ctx, "retrieval completed",
		"query", opts.QueryText,
		"text", opts.UseText,
		"vector", opts.UseVector,
		"requested", opts.Top,
		"returned", len(docs),
		"kept", len(results.Documents),
	)
	return results, nil
}

// sourceLine renders one document as "source: body". When captions were
// requested and present they replace the body, joined by " . " as the index
// returns sentence fragments.
func sourceLine(doc search.Document, useCaptions bool) string {
	body := doc.Content
	if useCaptions && len(doc.Captions) > 0 {
		body = strings.Join(doc.Captions, " . ")
	}
	return doc.Source + ": " + nonewlines(body)
}

// nonewlines collapses embedded newlines to spaces; citations must stay on
// one line.
func nonewlines(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
