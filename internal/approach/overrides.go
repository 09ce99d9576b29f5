package approach

import (
	"fmt"
	"strings"
)

// RetrievalMode selects whether a search call uses lexical text matching,
// vector similarity, or both.
type RetrievalMode string

const (
	// RetrievalModeText runs lexical text search only.
	RetrievalModeText RetrievalMode = "text"
	// RetrievalModeVectors runs vector similarity search only.
	RetrievalModeVectors RetrievalMode = "vectors"
	// RetrievalModeHybrid runs both legs. An unset mode means hybrid.
	RetrievalModeHybrid RetrievalMode = "hybrid"
)

const defaultTop = 3

// Overrides are the per-request options recognized by the approaches.
// They are decoded from the request's context.overrides object and
// validated once at request entry.
type Overrides struct {
	RetrievalMode            RetrievalMode `json:"retrieval_mode,omitempty"`
	SemanticRanker           bool          `json:"semantic_ranker,omitempty"`
	SemanticCaptions         bool          `json:"semantic_captions,omitempty"`
	Top                      int           `json:"top,omitempty"`
	MinimumSearchScore       float64       `json:"minimum_search_score,omitempty"`
	MinimumRerankerScore     float64       `json:"minimum_reranker_score,omitempty"`
	Temperature              float64       `json:"temperature,omitempty"`
	PromptTemplate           string        `json:"prompt_template,omitempty"`
	ExcludeCategory          string        `json:"exclude_category,omitempty"`
	SuggestFollowupQuestions bool          `json:"suggest_followup_questions,omitempty"`
}

// Validate checks the overrides and applies defaults. It must be called
// before the overrides are used.
func (o *Overrides) Validate() error {
	switch o.RetrievalMode {
	case "", RetrievalModeText, RetrievalModeVectors, RetrievalModeHybrid:
	default:
		return &ValidationError{Field: "retrieval_mode", Message: fmt.Sprintf("unknown mode %q", o.RetrievalMode)}
	}
	if o.Top < 0 {
		return &ValidationError{Field: "top", Message: "must be a positive integer"}
	}
	if o.Top == 0 {
		o.Top = defaultTop
	}
	if o.MinimumSearchScore < 0 {
		return &ValidationError{Field: "minimum_search_score", Message: "cannot be negative"}
	}
	if o.MinimumRerankerScore < 0 {
		return &ValidationError{Field: "minimum_reranker_score", Message: "cannot be negative"}
	}
	return nil
}

// hasText reports whether the lexical search leg is active.
func (o Overrides) hasText() bool {
	return o.RetrievalMode == "" || o.RetrievalMode == RetrievalModeText || o.RetrievalMode == RetrievalModeHybrid
}

// hasVector reports whether the vector search leg is active.
func (o Overrides) hasVector() bool {
	return o.RetrievalMode == "" || o.RetrievalMode == RetrievalModeVectors || o.RetrievalMode == RetrievalModeHybrid
}

// temperature returns the completion temperature, falling back to the
// approach default when unset or zero.
func (o Overrides) temperature(fallback float32) float32 {
	if o.Temperature == 0 {
		return fallback
	}
	return float32(o.Temperature)
}

// filter compiles the overrides into an OData filter expression for the
// index, or an empty string when no filtering applies.
func (o Overrides) filter() string {
	if o.ExcludeCategory == "" {
		return ""
	}
	escaped := strings.ReplaceAll(o.ExcludeCategory, "'", "''")
	return fmt.Sprintf("category ne '%s'", escaped)
}
