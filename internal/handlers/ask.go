package handlers

import (
	"encoding/json"
	"net/http"

	"docchat/internal/contextutil"
)

// AskHandler handles HTTP requests for single-shot questions.
type AskHandler struct {
	approach AskApproach
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(a AskApproach) *AskHandler {
	return &AskHandler{approach: a}
}

// ServeHTTP handles HTTP requests for single-shot questions. The endpoint
// shares the chat request envelope but never streams.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Context.Overrides.Validate(); err != nil {
		writeApproachError(w, ctx, err, "Invalid overrides")
		return
	}
	if req.Stream {
		writeError(w, http.StatusBadRequest, "Streaming is not supported on this endpoint")
		return
	}

	resp, err := h.approach.Run(ctx, req.Messages, req.Context.Overrides, req.SessionState)
	if err != nil {
		writeApproachError(w, ctx, err, "Failed to process ask request")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
