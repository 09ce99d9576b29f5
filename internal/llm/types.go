package llm

// Chat roles used throughout the pipeline.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a chat conversation.
// Messages are immutable once created; an ordered slice of messages forms a
// conversation, oldest first.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FunctionDefinition describes a function the model may call.
type FunctionDefinition struct {
	Name        string
	Description string
	// Parameters is a JSON-schema-shaped value describing the arguments.
	Parameters any
}

// FunctionCall is a function invocation emitted by the model.
type FunctionCall struct {
	Name string
	// Arguments is the raw JSON argument payload as returned by the API.
	Arguments string
}

// CompletionRequest holds parameters for a chat completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	// Functions, when non-empty, are offered to the model with
	// function_call set to "auto".
	Functions []FunctionDefinition
}

// Completion is the buffered result of a chat completion call.
type Completion struct {
	Content string
	// FunctionCall is set when the model chose to call a function instead
	// of (or in addition to) producing content.
	FunctionCall *FunctionCall
}

// Delta is one incremental fragment of a streamed completion.
type Delta struct {
	Role    string
	Content string
}

// Stream yields incremental deltas from a streaming completion call.
// Recv returns io.EOF once the stream is exhausted.
type Stream interface {
	Recv() (Delta, error)
	Close() error
}
