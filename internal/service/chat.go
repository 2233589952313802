package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks aitoolkit-web/internal/service CompletionClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService aitoolkit-web/internal/service ChatService

import (
	"context"

	"aitoolkit-web/internal/backend"
	"aitoolkit-web/internal/contextutil"
	"aitoolkit-web/internal/prompt"
)

// CompletionClient is the gateway to the inference backend, defined from the
// service layer's perspective (consumer-first).
type CompletionClient interface {
	// Complete sends one completion request and folds the outcome into a
	// Result envelope. It never returns a Go error.
	Complete(ctx context.Context, messages []backend.Message, params backend.Params) backend.Result
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	Message     string `validate:"required"`
	History     []prompt.Turn
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatService provides conversation-aware completion proxying.
type ChatService interface {
	// ProcessChat assembles the prompt for req and forwards it to the
	// backend, returning the uniform result envelope.
	ProcessChat(ctx context.Context, req ChatRequest) (backend.Result, error)
}

// chatService implements ChatService.
type chatService struct {
	client     CompletionClient
	windowSize int
}

// NewChatService creates a new ChatService. windowSize bounds the number of
// history turns forwarded per request; non-positive values fall back to the
// builder's default window.
func NewChatService(client CompletionClient, windowSize int) ChatService {
	return &chatService{
		client:     client,
		windowSize: windowSize,
	}
}

// ProcessChat processes one chat request. Each invocation is independent;
// nothing is retained between calls.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (backend.Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Message == "" {
		logger.WarnContext(ctx, "empty message in chat request")
		return backend.Result{}, &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	messages := prompt.Build(req.Message, req.History, s.windowSize)

	result := s.client.Complete(ctx, messages, backend.Params{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})

	if result.Success {
		logger.InfoContext(ctx, "chat request processed",
			"history_turns", len(req.History),
			"messages_sent", len(messages),
			"reply_length", len(result.Content))
	} else {
		logger.ErrorContext(ctx, "backend completion failed",
			"error", result.Error,
			"messages_sent", len(messages))
	}

	return result, nil
}
