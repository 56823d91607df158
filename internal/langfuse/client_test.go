package langfuse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "empty base URL",
			config: Config{BaseURL: "", PublicKey: "pk", SecretKey: "sk"},
		},
		{
			name:   "empty public key",
			config: Config{BaseURL: "http://localhost", PublicKey: "", SecretKey: "sk"},
		},
		{
			name:   "empty secret key",
			config: Config{BaseURL: "http://localhost", PublicKey: "pk", SecretKey: ""},
		},
		{
			name:   "all empty",
			config: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.config)
			if c.IsEnabled() {
				t.Error("expected client to be disabled")
			}
		})
	}
}

func TestNewClient_Enabled(t *testing.T) {
	c := NewClient(Config{
		BaseURL:     "http://localhost:3000",
		PublicKey:   "pk-test",
		SecretKey:   "sk-test",
		Environment: "test",
	})

	if !c.IsEnabled() {
		t.Error("expected client to be enabled")
	}
}

func TestTraceGeneration_DisabledClient(t *testing.T) {
	c := NewClient(Config{}) // disabled

	traceID, err := c.TraceGeneration(context.Background(), GenerationTrace{
		UserID: "user-123",
		Prompt: "a cozy soup",
		Output: map[string]any{"title": "Smoky Lentil Soup"},
		Model:  "gpt-4o-mini",
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if traceID != "" {
		t.Errorf("expected empty trace ID, got %s", traceID)
	}
}

func TestScoreTrace_DisabledClient(t *testing.T) {
	c := NewClient(Config{}) // disabled

	err := c.ScoreTrace(context.Background(), Score{
		TraceID: "trace-123",
		Value:   1,
		Comment: "Great!",
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

// awaitBody waits for the background ingestion send to arrive.
func awaitBody(t *testing.T, ch <-chan map[string]any) map[string]any {
	t.Helper()
	select {
	case body := <-ch:
		return body
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for ingestion request")
		return nil
	}
}

func TestTraceGeneration_EnabledClient(t *testing.T) {
	bodyCh := make(chan map[string]any, 1)
	authCh := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if ok {
			authCh <- user + ":" + pass
		}

		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		json.Unmarshal(raw, &body)
		bodyCh <- body

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"successes":[],"errors":[]}`))
	}))
	defer server.Close()

	c := NewClient(Config{
		BaseURL:     server.URL,
		PublicKey:   "pk-test",
		SecretKey:   "sk-test",
		Environment: "testing",
	})

	traceID, err := c.TraceGeneration(context.Background(), GenerationTrace{
		UserID: "user-123",
		Prompt: "a weeknight pasta",
		Output: map[string]any{"title": "Garlic Butter Rigatoni"},
		Model:  "gpt-4o-mini",
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if traceID == "" {
		t.Error("expected non-empty trace ID")
	}

	received := awaitBody(t, bodyCh)

	if auth := <-authCh; auth != "pk-test:sk-test" {
		t.Errorf("expected auth pk-test:sk-test, got %s", auth)
	}

	batch, ok := received["batch"].([]any)
	if !ok || len(batch) != 1 {
		t.Fatal("expected batch with 1 event")
	}

	event := batch[0].(map[string]any)
	if event["type"] != "trace-create" {
		t.Errorf("expected type trace-create, got %v", event["type"])
	}

	body := event["body"].(map[string]any)
	if body["name"] != "recipe-generate" {
		t.Errorf("expected name recipe-generate, got %v", body["name"])
	}
	if body["userId"] != "user-123" {
		t.Errorf("expected userId user-123, got %v", body["userId"])
	}
	if body["id"] != traceID {
		t.Errorf("expected trace id %s, got %v", traceID, body["id"])
	}

	metadata := body["metadata"].(map[string]any)
	if metadata["environment"] != "testing" {
		t.Errorf("expected environment testing, got %v", metadata["environment"])
	}
	if metadata["model"] != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %v", metadata["model"])
	}
}

func TestScoreTrace_EnabledClient(t *testing.T) {
	bodyCh := make(chan map[string]any, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		json.Unmarshal(raw, &body)
		bodyCh <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(Config{
		BaseURL:   server.URL,
		PublicKey: "pk-test",
		SecretKey: "sk-test",
	})

	err := c.ScoreTrace(context.Background(), Score{
		TraceID: "trace-abc123",
		Value:   0.5,
		Comment: "Decent, a bit salty",
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	received := awaitBody(t, bodyCh)

	batch := received["batch"].([]any)
	event := batch[0].(map[string]any)

	if event["type"] != "score-create" {
		t.Errorf("expected type score-create, got %v", event["type"])
	}

	body := event["body"].(map[string]any)
	if body["traceId"] != "trace-abc123" {
		t.Errorf("expected traceId trace-abc123, got %v", body["traceId"])
	}
	if body["name"] != "user_rating" {
		t.Errorf("expected name user_rating, got %v", body["name"])
	}
	if body["value"] != 0.5 {
		t.Errorf("expected value 0.5, got %v", body["value"])
	}
}
