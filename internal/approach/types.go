package approach

import "docchat/internal/llm"

// ThoughtStep is a diagnostic record of one stage of request processing,
// returned to the caller for transparency. Thought steps are accumulated
// per request and never persisted.
type ThoughtStep struct {
	Title       string         `json:"title"`
	Description any            `json:"description"`
	Props       map[string]any `json:"props,omitempty"`
}

// Context carries the supporting data returned alongside an answer.
type Context struct {
	// DataPoints are the normalized source lines the answer was
	// grounded on, "source: body" one per line.
	DataPoints []string `json:"data_points,omitempty"`
	// Thoughts is the ordered diagnostic trace of the request.
	Thoughts []ThoughtStep `json:"thoughts,omitempty"`
	// FollowupQuestions holds suggested follow-up questions extracted
	// from the model output, when the caller asked for them.
	FollowupQuestions []string `json:"followup_questions,omitempty"`
}

// Response is the buffered response envelope.
type Response struct {
	Message llm.Message `json:"message"`
	Context Context     `json:"context"`
	// SessionState is an opaque value passed through from the request.
	SessionState any `json:"session_state"`
}

// StreamDelta is the incremental message fragment of one streamed chunk.
type StreamDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// StreamChunk is one streamed response envelope. The first chunk of a
// stream carries the assistant role, the context and the session state;
// later chunks carry content deltas; when follow-up questions were
// requested and the output contains a follow-up block, one final chunk
// carries only the extracted questions.
type StreamChunk struct {
	Delta        StreamDelta `json:"delta"`
	Context      *Context    `json:"context,omitempty"`
	SessionState any         `json:"session_state,omitempty"`
}
