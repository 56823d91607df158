package domain

// AssistantIntent identifies which local command matched an utterance.
type AssistantIntent string

const (
	IntentTodayMeals   AssistantIntent = "today_meals"
	IntentNextMeal     AssistantIntent = "next_meal"
	IntentSuggestMeal  AssistantIntent = "suggest_meal"
	IntentAddMeal      AssistantIntent = "add_meal"
	IntentWeather      AssistantIntent = "weather"
	IntentVarietyScore AssistantIntent = "variety_score"
	IntentFallback     AssistantIntent = "fallback"
)

// AssistantRequest is the request body for the voice assistant endpoint.
// @Description Transcribed user utterance for the assistant router.
type AssistantRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

// AssistantResponse is the assistant's reply.
// @Description Assistant reply with the intent that produced it.
type AssistantResponse struct {
	Reply  string          `json:"reply"`
	Intent AssistantIntent `json:"intent"`
	// FromLLM is true when the reply came from the completion service
	// rather than the local pattern table.
	FromLLM bool `json:"from_llm"`
}
