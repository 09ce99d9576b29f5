package approach

import (
	"errors"
	"testing"
)

func TestOverridesValidate(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		wantErr   bool
		wantField string
		wantTop   int
	}{
		{
			name:      "empty overrides get defaults",
			overrides: Overrides{},
			wantTop:   3,
		},
		{
			name:      "explicit top kept",
			overrides: Overrides{Top: 10},
			wantTop:   10,
		},
		{
			name:      "known modes accepted",
			overrides: Overrides{RetrievalMode: RetrievalModeVectors},
			wantTop:   3,
		},
		{
			name:      "unknown mode rejected",
			overrides: Overrides{RetrievalMode: "keyword"},
			wantErr:   true,
			wantField: "retrieval_mode",
		},
		{
			name:      "negative top rejected",
			overrides: Overrides{Top: -1},
			wantErr:   true,
			wantField: "top",
		},
		{
			name:      "negative search score rejected",
			overrides: Overrides{MinimumSearchScore: -0.5},
			wantErr:   true,
			wantField: "minimum_search_score",
		},
		{
			name:      "negative reranker score rejected",
			overrides: Overrides{MinimumRerankerScore: -1},
			wantErr:   true,
			wantField: "minimum_reranker_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.overrides.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("Validate() error = %v, want *ValidationError", err)
				}
				if validationErr.Field != tt.wantField {
					t.Errorf("Validate() error field = %q, want %q", validationErr.Field, tt.wantField)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("Validate() error does not unwrap to ErrInvalidInput")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if tt.overrides.Top != tt.wantTop {
				t.Errorf("Validate() top = %d, want %d", tt.overrides.Top, tt.wantTop)
			}
		})
	}
}

func TestOverridesRetrievalLegs(t *testing.T) {
	tests := []struct {
		mode       RetrievalMode
		wantText   bool
		wantVector bool
	}{
		{mode: "", wantText: true, wantVector: true},
		{mode: RetrievalModeText, wantText: true, wantVector: false},
		{mode: RetrievalModeVectors, wantText: false, wantVector: true},
		{mode: RetrievalModeHybrid, wantText: true, wantVector: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			o := Overrides{RetrievalMode: tt.mode}
			if got := o.hasText(); got != tt.wantText {
				t.Errorf("hasText() = %v, want %v", got, tt.wantText)
			}
			if got := o.hasVector(); got != tt.wantVector {
				t.Errorf("hasVector() = %v, want %v", got, tt.wantVector)
			}
		})
	}
}

func TestOverridesTemperature(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		fallback    float32
		want        float32
	}{
		{name: "unset uses fallback", temperature: 0, fallback: 0.7, want: 0.7},
		{name: "explicit zero uses fallback", temperature: 0.0, fallback: 0.3, want: 0.3},
		{name: "explicit value wins", temperature: 0.9, fallback: 0.7, want: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Overrides{Temperature: tt.temperature}
			if got := o.temperature(tt.fallback); got != tt.want {
				t.Errorf("temperature(%v) = %v, want %v", tt.fallback, got, tt.want)
			}
		})
	}
}

func TestOverridesFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{name: "no category", category: "", want: ""},
		{name: "plain category", category: "internal", want: "category ne 'internal'"},
		{name: "quote escaped", category: "it's", want: "category ne 'it''s'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Overrides{ExcludeCategory: tt.category}
			if got := o.filter(); got != tt.want {
				t.Errorf("filter() = %q, want %q", got, tt.want)
			}
		})
	}
}
