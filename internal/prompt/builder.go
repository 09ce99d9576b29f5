// Package prompt assembles bounded-length message lists for completion calls.
package prompt

import "docchat/internal/llm"

// Counter estimates the token cost of one chat message.
type Counter interface {
	CountMessage(m llm.Message) int
}

// Build assembles the ordered message list for a completion call:
// the system prompt first, then the few-shot examples in their given order,
// then as much recent history as the token budget allows, then the new user
// content last. history holds the prior conversation turns, oldest first;
// the newest user turn is passed as userContent (callers may have augmented
// it, e.g. with a sources block).
//
// The budget covers the new user message plus history; the system prompt and
// few-shots are exempt and always included. History is considered newest
// message first, so when the budget runs out the oldest turns are dropped.
// Messages that survive keep their chronological order. If even the new user
// message alone exceeds the budget, no history is included; this is degraded
// but not an error.
func Build(counter Counter, systemPrompt string, fewShots []llm.Message, history []llm.Message, userContent string, maxTokens int) []llm.Message {
	userMessage := llm.Message{Role: llm.RoleUser, Content: userContent}

	total := counter.CountMessage(userMessage)
	kept := 0
	for i := len(history) - 1; i >= 0; i-- {
		cost := counter.CountMessage(history[i])
		if total+cost > maxTokens {
			break
		}
		total += cost
		kept++
	}

	messages := make([]llm.Message, 0, len(fewShots)+kept+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	messages = append(messages, fewShots...)
	messages = append(messages, history[len(history)-kept:]...)
	messages = append(messages, userMessage)
	return messages
}
