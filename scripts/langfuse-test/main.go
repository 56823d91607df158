// Script to test Langfuse connectivity by recording a test generation trace.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/forkcast/forkcast/internal/langfuse"
)

func main() {
	cfg := langfuse.Config{
		BaseURL:     getEnv("LANGFUSE_BASE_URL", "http://localhost:3001"),
		PublicKey:   os.Getenv("LANGFUSE_PUBLIC_KEY"),
		SecretKey:   os.Getenv("LANGFUSE_SECRET_KEY"),
		Environment: getEnv("LANGFUSE_ENV", "development"),
	}

	fmt.Println("=== Langfuse Connection Test ===")
	fmt.Printf("Base URL:    %s\n", cfg.BaseURL)
	fmt.Printf("Public Key:  %s\n", maskKey(cfg.PublicKey))
	fmt.Printf("Secret Key:  %s\n", maskKey(cfg.SecretKey))
	fmt.Printf("Environment: %s\n", cfg.Environment)
	fmt.Println()

	client := langfuse.NewClient(cfg)

	if !client.IsEnabled() {
		log.Fatal("Langfuse client is disabled. Check your env vars.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	traceID, err := client.TraceGeneration(ctx, langfuse.GenerationTrace{
		UserID: "test-user-123",
		Prompt: "Hello from langfuse-test script",
		Output: map[string]any{
			"status": "success",
			"time":   time.Now().Format(time.RFC3339),
		},
		Model: "test-model",
	})
	if err != nil {
		log.Fatalf("Failed to create trace: %v", err)
	}
	fmt.Printf("Trace created: %s\n", traceID)

	if err := client.ScoreTrace(ctx, langfuse.Score{
		TraceID: traceID,
		Value:   1,
		Comment: "connectivity test",
	}); err != nil {
		log.Fatalf("Failed to score trace: %v", err)
	}
	fmt.Println("Score attached")

	// Ingestion is async; give the client a moment to flush before exit.
	time.Sleep(2 * time.Second)
	fmt.Println("Done. Check the Langfuse UI for the test-user-123 trace.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "(not set)"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
