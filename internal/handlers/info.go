package handlers

import (
	"encoding/json"
	"net/http"

	"aitoolkit-web/internal/contextutil"
)

// InfoResponse describes the service and its endpoints.
type InfoResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// InfoHandler serves service metadata at the root path.
type InfoHandler struct{}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

// ServeHTTP handles HTTP requests for service info.
func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	response := InfoResponse{
		Name:        "AI Toolkit Web API",
		Version:     "1.0.0",
		Description: "Conversation-aware completion proxy for a locally hosted inference backend",
		Endpoints: map[string]string{
			"chat":   "/api/chat",
			"health": "/api/health",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode info response", "error", err)
	}
}
