package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const recipeSystemPrompt = `You are a recipe creator for a meal-planning application.

You receive a natural-language request and must invent a single realistic recipe satisfying it.

Rules:
- Respect any calorie ceiling or cuisine given in the request context.
- Ingredients are a newline-separated flat list with quantities.
- Instructions are a newline-separated numbered flat list.
- Estimate nutrition per serving honestly; omit macros you cannot estimate rather than guessing wildly.
- Tags are short lowercase descriptors (e.g. "quick", "one-pot", "comfort").

You must respond as strict JSON with exactly this shape:

{
  "title": "Recipe name",
  "description": "1-2 sentence description.",
  "ingredients": "flat newline-separated list",
  "instructions": "flat newline-separated list",
  "tags": ["lowercase", "descriptors"],
  "prep_time_minutes": 30,
  "servings": 4,
  "course": "BREAKFAST|MAIN|SIDE|DESSERT|SNACK",
  "cuisine": "cuisine name",
  "difficulty": "EASY|MEDIUM|HARD",
  "calories": 450,
  "protein_g": 30,
  "carbs_g": 40,
  "fat_g": 15
}

No extra fields. No comments. No backticks.`

const assistantSystemPrompt = `You are a friendly voice assistant for a meal-planning application.

Answer the user's cooking or meal-planning question in one or two short
spoken-style sentences. Do not give medical or dietary advice. If the
question is unrelated to food or planning, politely steer back to meals.`

// GeneratedRecipe is the structured recipe draft produced by the LLM.
type GeneratedRecipe struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Ingredients     string   `json:"ingredients"`
	Instructions    string   `json:"instructions"`
	Tags            []string `json:"tags"`
	PrepTimeMinutes int      `json:"prep_time_minutes"`
	Servings        int      `json:"servings"`
	Course          string   `json:"course"`
	Cuisine         string   `json:"cuisine"`
	Difficulty      string   `json:"difficulty"`
	Calories        *float64 `json:"calories,omitempty"`
	ProteinG        *float64 `json:"protein_g,omitempty"`
	CarbsG          *float64 `json:"carbs_g,omitempty"`
	FatG            *float64 `json:"fat_g,omitempty"`
}

// RecipeConstraints narrow what the generator may produce.
type RecipeConstraints struct {
	MaxCalories *int   `json:"max_calories,omitempty"`
	Cuisine     string `json:"cuisine,omitempty"`
}

// CompletionClient is the interface for LLM-backed generation features.
type CompletionClient interface {
	// GenerateRecipe invents a recipe draft from a natural-language prompt.
	GenerateRecipe(ctx context.Context, prompt string, constraints RecipeConstraints) (*GeneratedRecipe, error)
	// Complete answers a free-form assistant query with a short reply.
	Complete(ctx context.Context, query string) (string, error)
}

// OpenAIClient implements CompletionClient using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateRecipe calls OpenAI to invent a recipe draft.
func (c *OpenAIClient) GenerateRecipe(ctx context.Context, prompt string, constraints RecipeConstraints) (*GeneratedRecipe, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	userPrompt := prompt
	if constraints.MaxCalories != nil || constraints.Cuisine != "" {
		constraintJSON, err := json.Marshal(constraints)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to serialize constraints: %v", ErrOpenAIRequest, err)
		}
		userPrompt = fmt.Sprintf("%s\n\nConstraints (JSON):\n%s", prompt, string(constraintJSON))
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(recipeSystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(content), &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if recipe.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrOpenAIResponse)
	}

	return &recipe, nil
}

// Complete calls OpenAI for a short free-form assistant reply.
func (c *OpenAIClient) Complete(ctx context.Context, query string) (string, error) {
	if c == nil {
		return "", ErrOpenAIUnavailable
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(assistantSystemPrompt),
			openai.UserMessage(query),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
