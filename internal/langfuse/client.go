// Package langfuse provides a lightweight HTTP client for the Langfuse
// ingestion API, used to record recipe-generation traces and attach user
// feedback scores to them. If not configured, the client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// asyncTimeout is the maximum time to wait for async Langfuse API calls.
const asyncTimeout = 5 * time.Second

// Client is the interface for Langfuse operations.
type Client interface {
	// IsEnabled returns true if Langfuse is configured and enabled.
	IsEnabled() bool
	// TraceGeneration records a recipe-generation trace and returns its ID.
	TraceGeneration(ctx context.Context, in GenerationTrace) (string, error)
	// ScoreTrace attaches a user feedback score to an existing trace.
	ScoreTrace(ctx context.Context, in Score) error
}

// GenerationTrace describes one recipe-generation call.
type GenerationTrace struct {
	UserID string // owner of the generation
	Prompt string // user prompt, recorded as trace input
	Output any    // generated recipe draft, recorded as trace output
	Model  string // model that produced the output
}

// Score is a user rating attached to a generation trace.
type Score struct {
	TraceID string
	Value   float64 // 0 (bad) to 1 (good)
	Comment string
}

// Config holds Langfuse client configuration.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

type client struct {
	cfg        Config
	enabled    bool
	httpClient *http.Client
}

// NewClient creates a new Langfuse client.
// If baseURL or keys are empty, returns a disabled no-op client.
func NewClient(cfg Config) Client {
	enabled := cfg.BaseURL != "" && cfg.PublicKey != "" && cfg.SecretKey != ""
	if !enabled {
		log.Println("[langfuse] disabled: base URL or keys not configured")
	} else {
		log.Printf("[langfuse] enabled: base_url=%s env=%s", cfg.BaseURL, cfg.Environment)
	}

	return &client{
		cfg:     cfg,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: asyncTimeout,
		},
	}
}

func (c *client) IsEnabled() bool {
	return c.enabled
}

func (c *client) TraceGeneration(ctx context.Context, in GenerationTrace) (string, error) {
	if !c.enabled {
		return "", nil
	}

	traceID := uuid.New().String()
	metadata := map[string]any{"model": in.Model}
	if c.cfg.Environment != "" {
		metadata["environment"] = c.cfg.Environment
	}

	event := ingestionEvent{
		ID:        uuid.New().String(),
		Type:      "trace-create",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body: traceBody{
			ID:       traceID,
			Name:     "recipe-generate",
			UserID:   in.UserID,
			Input:    in.Prompt,
			Output:   in.Output,
			Tags:     []string{"recipe", "generation"},
			Metadata: metadata,
		},
	}

	// Fire async to keep the generation request path fast.
	go c.sendAsync(event, "trace")

	return traceID, nil
}

func (c *client) ScoreTrace(ctx context.Context, in Score) error {
	if !c.enabled {
		return nil
	}

	event := ingestionEvent{
		ID:        uuid.New().String(),
		Type:      "score-create",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body: scoreBody{
			ID:      uuid.New().String(),
			TraceID: in.TraceID,
			Name:    "user_rating",
			Value:   in.Value,
			Comment: in.Comment,
		},
	}

	go c.sendAsync(event, "score")

	return nil
}

// sendAsync sends an event with its own timeout. Errors are logged but
// not returned since ingestion is fire-and-forget.
func (c *client) sendAsync(event ingestionEvent, eventType string) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
	defer cancel()

	if err := c.send(ctx, event); err != nil {
		log.Printf("[langfuse] async %s send failed: %v", eventType, err)
	}
}

func (c *client) send(ctx context.Context, event ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: []ingestionEvent{event}})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := c.cfg.BaseURL + "/api/public/ingestion"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}

	return nil
}

// Internal types for the HTTP API

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
