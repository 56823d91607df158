package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
)

func TestSuggestionHandler_MealSuggestions(t *testing.T) {
	userID := uuid.New().String()

	t.Run("passes limit through", func(t *testing.T) {
		var gotLimit int
		mock := &MockSuggestionService{
			suggestionsFunc: func(ctx context.Context, userID string, limit int) (*domain.MealSuggestionsResponse, error) {
				gotLimit = limit
				return &domain.MealSuggestionsResponse{Tags: []string{"grill"}}, nil
			},
		}
		handler := NewSuggestionHandler(mock)

		req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/suggestions/meals?limit=7", nil)
		req = withURLParam(req, "userId", userID)
		rec := httptest.NewRecorder()

		handler.MealSuggestions(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("MealSuggestions() status = %d, body: %s", rec.Code, rec.Body.String())
		}
		if gotLimit != 7 {
			t.Errorf("MealSuggestions() limit = %d, want 7", gotLimit)
		}
	})

	t.Run("rejects zero limit", func(t *testing.T) {
		handler := NewSuggestionHandler(&MockSuggestionService{})

		req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/suggestions/meals?limit=0", nil)
		req = withURLParam(req, "userId", userID)
		rec := httptest.NewRecorder()

		handler.MealSuggestions(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("MealSuggestions() status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		mock := &MockSuggestionService{
			suggestionsFunc: func(ctx context.Context, userID string, limit int) (*domain.MealSuggestionsResponse, error) {
				return nil, domain.ErrNotFound
			},
		}
		handler := NewSuggestionHandler(mock)

		req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/suggestions/meals", nil)
		req = withURLParam(req, "userId", userID)
		rec := httptest.NewRecorder()

		handler.MealSuggestions(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("MealSuggestions() status = %d, want 404", rec.Code)
		}
	})
}

func TestSuggestionHandler_Forecast(t *testing.T) {
	userID := uuid.New().String()

	t.Run("passes days through", func(t *testing.T) {
		var gotDays int
		mock := &MockSuggestionService{
			forecastFunc: func(ctx context.Context, userID string, days int) ([]domain.ForecastDay, error) {
				gotDays = days
				return []domain.ForecastDay{}, nil
			},
		}
		handler := NewSuggestionHandler(mock)

		req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/weather/forecast?days=3", nil)
		req = withURLParam(req, "userId", userID)
		rec := httptest.NewRecorder()

		handler.Forecast(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Forecast() status = %d, body: %s", rec.Code, rec.Body.String())
		}
		if gotDays != 3 {
			t.Errorf("Forecast() days = %d, want 3", gotDays)
		}
	})

	t.Run("rejects non-numeric days", func(t *testing.T) {
		handler := NewSuggestionHandler(&MockSuggestionService{})

		req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/weather/forecast?days=week", nil)
		req = withURLParam(req, "userId", userID)
		rec := httptest.NewRecorder()

		handler.Forecast(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Forecast() status = %d, want 400", rec.Code)
		}
	})
}

func TestSuggestionHandler_WeatherContext(t *testing.T) {
	userID := uuid.New().String()
	handler := NewSuggestionHandler(&MockSuggestionService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/weather/context", nil)
	req = withURLParam(req, "userId", userID)
	rec := httptest.NewRecorder()

	handler.WeatherContext(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("WeatherContext() status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("WeatherContext() Content-Type = %q", ct)
	}
}
