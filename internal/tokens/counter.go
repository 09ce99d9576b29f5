// Package tokens estimates the token cost of chat messages for a given
// model, and knows the context-window limits of the supported models.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"docchat/internal/llm"
)

// messageOverhead is the per-message token overhead of the chat format
// (role/content framing tokens added by the API).
const messageOverhead = 4

// defaultTokenLimit is used for models not present in the limits table.
const defaultTokenLimit = 4000

// fallbackEncoding is used when the model has no registered encoding.
const fallbackEncoding = "cl100k_base"

var modelTokenLimits = map[string]int{
	"gpt-35-turbo":      4000,
	"gpt-3.5-turbo":     4000,
	"gpt-35-turbo-16k":  16000,
	"gpt-3.5-turbo-16k": 16000,
	"gpt-4":             8100,
	"gpt-4-32k":         32000,
}

// Limit returns the usable context-window token limit for a model.
// Unknown models get a conservative default.
func Limit(model string) int {
	if limit, ok := modelTokenLimits[model]; ok {
		return limit
	}
	return defaultTokenLimit
}

// Counter counts message tokens for one model. The encoding is resolved
// once at construction so counting itself is a pure function over text.
type Counter struct {
	model    string
	encoding *tiktoken.Tiktoken
}

// NewCounter creates a Counter for the given model, falling back to the
// cl100k_base encoding when the model is not registered with tiktoken.
func NewCounter(model string) (*Counter, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load token encoding for model %q: %w", model, err)
		}
	}
	return &Counter{model: model, encoding: encoding}, nil
}

// Model returns the model identifier this counter was built for.
func (c *Counter) Model() string {
	return c.model
}

// CountText returns the token count of a raw text.
func (c *Counter) CountText(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// CountMessage returns the estimated token cost of a chat message,
// including the per-message framing overhead.
func (c *Counter) CountMessage(m llm.Message) int {
	return messageOverhead + c.CountText(m.Role) + c.CountText(m.Content)
}
