package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"aitoolkit-web/internal/backend"
	"aitoolkit-web/internal/contextutil"
	"aitoolkit-web/internal/prompt"
	"aitoolkit-web/internal/service"
)

// ChatHandler handles HTTP requests for chat completions.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []prompt.Turn `json:"conversationHistory,omitempty"`
	Model               string        `json:"model,omitempty"`
	Temperature         float64       `json:"temperature,omitempty"`
	MaxTokens           int           `json:"max_tokens,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for chat. The response body is always the
// uniform result envelope; the status code reflects the failure class
// (502 remote, 500 transport) so callers can distinguish transient backend
// trouble from connectivity problems.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq := service.ChatRequest{
		Message:     req.Message,
		History:     req.ConversationHistory,
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	result, err := h.chatService.ProcessChat(ctx, svcReq)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	switch result.Failure {
	case backend.FailureRemote:
		status = http.StatusBadGateway
	case backend.FailureTransport:
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps service errors to HTTP status codes.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		h.writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	h.writeError(w, http.StatusInternalServerError, "Failed to process chat request")
}

// writeError writes an error response.
func (h *ChatHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
