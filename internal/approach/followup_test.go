package approach_test

import (
	"reflect"
	"strings"
	"testing"

	"docchat/internal/approach"
)

func TestExtractFollowups(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantVisible   string
		wantQuestions []string
	}{
		{
			name:          "no markers",
			content:       "合同期限一般为一年 [labor.pdf]。",
			wantVisible:   "合同期限一般为一年 [labor.pdf]。",
			wantQuestions: []string{},
		},
		{
			name:          "single question",
			content:       "答案 [labor.pdf]。<<试用期有什么规定？>>",
			wantVisible:   "答案 [labor.pdf]。",
			wantQuestions: []string{"试用期有什么规定？"},
		},
		{
			name:          "multiple questions",
			content:       "答案。<<问题一？>><<问题二？>><<问题三？>>",
			wantVisible:   "答案。",
			wantQuestions: []string{"问题一？", "问题二？", "问题三？"},
		},
		{
			name:          "unterminated marker",
			content:       "答案。<<问题一？",
			wantVisible:   "答案。",
			wantQuestions: []string{},
		},
		{
			name:          "empty content",
			content:       "",
			wantVisible:   "",
			wantQuestions: []string{},
		},
		{
			name:          "single angle bracket stays visible",
			content:       "a < b 成立。",
			wantVisible:   "a < b 成立。",
			wantQuestions: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, questions := approach.ExtractFollowups(tt.content)
			if visible != tt.wantVisible {
				t.Errorf("ExtractFollowups() visible = %q, want %q", visible, tt.wantVisible)
			}
			if !reflect.DeepEqual(questions, tt.wantQuestions) {
				t.Errorf("ExtractFollowups() questions = %v, want %v", questions, tt.wantQuestions)
			}
		})
	}
}

// splitAll runs a Splitter over the given fragments and returns the
// reassembled visible text and the extracted questions.
func splitAll(fragments []string) (string, []string) {
	var s approach.Splitter
	var visible strings.Builder
	for _, f := range fragments {
		visible.WriteString(s.Feed(f))
	}
	visible.WriteString(s.Flush())
	return visible.String(), s.Questions()
}

func TestSplitter(t *testing.T) {
	tests := []struct {
		name          string
		fragments     []string
		wantVisible   string
		wantBuffered  bool
		wantQuestions []string
	}{
		{
			name:          "no followup block",
			fragments:     []string{"合同期限", "一般为一年", " [labor.pdf]。"},
			wantVisible:   "合同期限一般为一年 [labor.pdf]。",
			wantBuffered:  false,
			wantQuestions: []string{},
		},
		{
			name:          "followup block in one fragment",
			fragments:     []string{"答案。", "<<问题一？>><<问题二？>>"},
			wantVisible:   "答案。",
			wantBuffered:  true,
			wantQuestions: []string{"问题一？", "问题二？"},
		},
		{
			name:          "marker split across fragments",
			fragments:     []string{"答案。<", "<问题一？>>"},
			wantVisible:   "答案。",
			wantBuffered:  true,
			wantQuestions: []string{"问题一？"},
		},
		{
			name:          "trailing single bracket is visible",
			fragments:     []string{"答案 a <", " b。"},
			wantVisible:   "答案 a < b。",
			wantBuffered:  false,
			wantQuestions: []string{},
		},
		{
			name:          "stream ends on held-back bracket",
			fragments:     []string{"答案 a <"},
			wantVisible:   "答案 a <",
			wantBuffered:  false,
			wantQuestions: []string{},
		},
		{
			name:          "empty fragments",
			fragments:     []string{"", "答案。", "", "<<问题？>>", ""},
			wantVisible:   "答案。",
			wantBuffered:  true,
			wantQuestions: []string{"问题？"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s approach.Splitter
			var visible strings.Builder
			for _, f := range tt.fragments {
				visible.WriteString(s.Feed(f))
			}
			visible.WriteString(s.Flush())

			if got := visible.String(); got != tt.wantVisible {
				t.Errorf("visible = %q, want %q", got, tt.wantVisible)
			}
			if got := s.Buffered(); got != tt.wantBuffered {
				t.Errorf("Buffered() = %v, want %v", got, tt.wantBuffered)
			}
			if tt.wantBuffered && !reflect.DeepEqual(s.Questions(), tt.wantQuestions) {
				t.Errorf("Questions() = %v, want %v", s.Questions(), tt.wantQuestions)
			}
		})
	}
}

// TestSplitterBoundaryIndependence splits one answer at every byte offset
// and checks the outcome never depends on where the fragment boundary
// falls, including in the middle of the << marker.
func TestSplitterBoundaryIndependence(t *testing.T) {
	const content = "answer text<<Q1>><<Q2>>"
	const wantVisible = "answer text"
	wantQuestions := []string{"Q1", "Q2"}

	for i := 0; i <= len(content); i++ {
		visible, questions := splitAll([]string{content[:i], content[i:]})
		if visible != wantVisible {
			t.Errorf("split at %d: visible = %q, want %q", i, visible, wantVisible)
		}
		if !reflect.DeepEqual(questions, wantQuestions) {
			t.Errorf("split at %d: questions = %v, want %v", i, questions, wantQuestions)
		}
	}
}

// TestSplitterBytewise feeds an answer one byte at a time, the worst case
// for marker detection.
func TestSplitterBytewise(t *testing.T) {
	const content = "text before<<first?>><<second?>>"

	fragments := make([]string, 0, len(content))
	for i := 0; i < len(content); i++ {
		fragments = append(fragments, content[i:i+1])
	}

	visible, questions := splitAll(fragments)
	if visible != "text before" {
		t.Errorf("visible = %q, want %q", visible, "text before")
	}
	if want := []string{"first?", "second?"}; !reflect.DeepEqual(questions, want) {
		t.Errorf("questions = %v, want %v", questions, want)
	}
}
