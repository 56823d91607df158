package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
)

func TestAssistantHandler_Ask(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name           string
		body           string
		mockService    *MockAssistantService
		wantStatusCode int
		wantReply      string
	}{
		{
			name: "answered locally",
			body: `{"query": "what is for dinner today"}`,
			mockService: &MockAssistantService{
				answerFunc: func(ctx context.Context, userID string, req domain.AssistantRequest) (*domain.AssistantResponse, error) {
					return &domain.AssistantResponse{Reply: "Today you have Tacos for dinner.", Intent: domain.IntentTodayMeals}, nil
				},
			},
			wantStatusCode: http.StatusOK,
			wantReply:      "Tacos",
		},
		{
			name:           "empty query",
			body:           `{"query": ""}`,
			mockService:    &MockAssistantService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "query too long",
			body:           `{"query": "` + strings.Repeat("a", 501) + `"}`,
			mockService:    &MockAssistantService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown user",
			body: `{"query": "hello"}`,
			mockService: &MockAssistantService{
				answerFunc: func(ctx context.Context, userID string, req domain.AssistantRequest) (*domain.AssistantResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAssistantHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID+"/assistant", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = withURLParam(req, "userId", userID)
			rec := httptest.NewRecorder()

			handler.Ask(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Ask() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantReply != "" {
				var response domain.AssistantResponse
				if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if !strings.Contains(response.Reply, tt.wantReply) {
					t.Errorf("Ask() reply = %q, want it to mention %q", response.Reply, tt.wantReply)
				}
			}
		})
	}
}
