package handlers

import (
	"encoding/json"
	"net/http"

	"docchat/internal/approach"
	"docchat/internal/contextutil"
)

// ChatHandler handles HTTP requests for conversational queries.
type ChatHandler struct {
	approach ChatApproach
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(a ChatApproach) *ChatHandler {
	return &ChatHandler{approach: a}
}

// ServeHTTP handles HTTP requests for conversational queries. Buffered
// responses are a single JSON envelope; with "stream": true the response is
// newline-delimited JSON, one envelope per line.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		h.streamChat(w, r, req)
		return
	}

	resp, err := h.approach.Run(ctx, req.Messages, req.Context.Overrides, req.SessionState)
	if err != nil {
		writeApproachError(w, ctx, err, "Failed to process chat request")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// streamChat writes the response as newline-delimited JSON envelopes,
// flushed per chunk. Errors after the first chunk cannot change the status
// code anymore; they are sent as a final error line.
func (h *ChatHandler) streamChat(w http.ResponseWriter, r *http.Request, req chatRequest) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	started := false
	encoder := json.NewEncoder(w)
	err := h.approach.RunStream(ctx, req.Messages, req.Context.Overrides, req.SessionState, func(chunk approach.StreamChunk) error {
		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := encoder.Encode(chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err == nil {
		return
	}

	if !started {
		writeApproachError(w, ctx, err, "Failed to process chat request")
		return
	}
	logger.ErrorContext(ctx, "chat stream aborted", "error", err)
	_ = encoder.Encode(ErrorResponse{Error: "External service error"})
	flusher.Flush()
}
