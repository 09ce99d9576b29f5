package approach

import (
	"regexp"
	"strings"
)

// followupMarker opens a follow-up question in the model output. The
// prompts instruct the model to append questions as <<question>> blocks
// after the answer.
const followupMarker = "<<"

var followupPattern = regexp.MustCompile(`<<([^>]+)>>`)

// ExtractFollowups splits a complete answer at the first follow-up marker.
// It returns the visible answer text and every <<...>> delimited question
// found in the content, in order. Content without markers is returned
// unchanged with no questions.
func ExtractFollowups(content string) (string, []string) {
	visible, _, _ := strings.Cut(content, followupMarker)

	questions := []string{}
	for _, match := range followupPattern.FindAllStringSubmatch(content, -1) {
		questions = append(questions, match[1])
	}
	return visible, questions
}

// Splitter re-splits a streamed answer into visible content and a trailing
// follow-up block. It is a two-state machine: while streaming the answer,
// fragments pass through until the follow-up marker appears; from then on
// everything accumulates into a buffer and nothing is forwarded. The split
// point is not known until the marker arrives, and the marker itself may
// straddle a fragment boundary, so a lone trailing '<' is held back until
// the next fragment decides it.
type Splitter struct {
	buffering bool
	pending   string
	buf       strings.Builder
}

// Feed consumes one stream fragment and returns the portion that is
// visible answer text, which may be empty.
func (s *Splitter) Feed(fragment string) string {
	if s.buffering {
		s.buf.WriteString(fragment)
		return ""
	}

	text := s.pending + fragment
	s.pending = ""

	if i := strings.Index(text, followupMarker); i >= 0 {
		s.buffering = true
		s.buf.WriteString(text[i:])
		return text[:i]
	}
	if strings.HasSuffix(text, "<") {
		s.pending = "<"
		return text[:len(text)-1]
	}
	return text
}

// Flush returns any held-back content. Call it once at stream end; a
// trailing '<' that never became a marker is visible answer text.
func (s *Splitter) Flush() string {
	pending := s.pending
	s.pending = ""
	return pending
}

// Buffered reports whether a follow-up block was seen.
func (s *Splitter) Buffered() bool {
	return s.buf.Len() > 0
}

// Questions extracts the follow-up questions from the accumulated buffer.
// It returns an empty list when the buffer holds no well-formed pairs.
func (s *Splitter) Questions() []string {
	_, questions := ExtractFollowups(s.buf.String())
	return questions
}
