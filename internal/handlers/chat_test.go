package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"aitoolkit-web/internal/backend"
	"aitoolkit-web/internal/prompt"
	"aitoolkit-web/internal/service"
	"aitoolkit-web/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewChatHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChatService := mocks.NewMockChatService(ctrl)
	handler := NewChatHandler(mockChatService)

	if handler == nil {
		t.Fatal("NewChatHandler() returned nil")
	}
	if handler.chatService != mockChatService {
		t.Error("NewChatHandler() chatService not set correctly")
	}
}

func TestChatHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		body          interface{}
		mockSetup     func(*mocks.MockChatService)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "successful request with history",
			method: http.MethodPost,
			body: ChatRequest{
				Message: "Thanks",
				ConversationHistory: []prompt.Turn{
					{Type: "user", Content: "What is Go?"},
					{Type: "assistant", Content: "A language."},
				},
			},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), service.ChatRequest{
						Message: "Thanks",
						History: []prompt.Turn{
							{Type: "user", Content: "What is Go?"},
							{Type: "assistant", Content: "A language."},
						},
					}).
					Return(backend.Result{
						Success: true,
						Content: "You're welcome.",
						Metrics: &backend.Metrics{TotalTokens: 5},
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp backend.Result
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !resp.Success || resp.Content != "You're welcome." {
					t.Errorf("response = %+v, want success with content", resp)
				}
				if resp.Metrics == nil || resp.Metrics.TotalTokens != 5 {
					t.Errorf("response metrics = %+v, want TotalTokens 5", resp.Metrics)
				}
			},
		},
		{
			name:   "remote backend failure maps to 502",
			method: http.MethodPost,
			body:   ChatRequest{Message: "Hi"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), gomock.Any()).
					Return(backend.Result{
						Success: false,
						Error:   "Backend server error: 503",
						Failure: backend.FailureRemote,
					}, nil)
			},
			wantStatus: http.StatusBadGateway,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp backend.Result
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Success || resp.Error != "Backend server error: 503" {
					t.Errorf("response = %+v, want failure envelope", resp)
				}
			},
		},
		{
			name:   "transport failure maps to 500",
			method: http.MethodPost,
			body:   ChatRequest{Message: "Hi"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), gomock.Any()).
					Return(backend.Result{
						Success: false,
						Error:   "Failed to connect to backend server: connection refused",
						Failure: backend.FailureTransport,
					}, nil)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "method not allowed",
			method: http.MethodGet,
			mockSetup: func(m *mocks.MockChatService) {
				// No calls expected
			},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "invalid JSON body",
			method: http.MethodPost,
			body:   "invalid json",
			mockSetup: func(m *mocks.MockChatService) {
				// No calls expected
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   ChatRequest{Message: ""},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), service.ChatRequest{Message: ""}).
					Return(backend.Result{}, &service.ValidationError{
						Field:   "message",
						Message: "cannot be empty",
					})
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockChatService := mocks.NewMockChatService(ctrl)
			tt.mockSetup(mockChatService)
			handler := NewChatHandler(mockChatService)

			var body bytes.Buffer
			if tt.body != nil {
				if s, ok := tt.body.(string); ok {
					body.WriteString(s)
				} else if err := json.NewEncoder(&body).Encode(tt.body); err != nil {
					t.Fatalf("failed to encode body: %v", err)
				}
			}

			req := httptest.NewRequest(tt.method, "/api/chat", &body)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestChatHandler_PassesParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChatService := mocks.NewMockChatService(ctrl)
	mockChatService.EXPECT().
		ProcessChat(gomock.Any(), service.ChatRequest{
			Message:     "Hi",
			Model:       "custom-model",
			Temperature: 0.1,
			MaxTokens:   50,
		}).
		Return(backend.Result{Success: true, Content: "ok"}, nil)

	handler := NewChatHandler(mockChatService)

	body := bytes.NewBufferString(`{"message":"Hi","model":"custom-model","temperature":0.1,"max_tokens":50}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
