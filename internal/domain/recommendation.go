package domain

import "github.com/google/uuid"

// RotationSuggestion points at a recipe the user has neglected.
type RotationSuggestion struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Title    string    `json:"title"`
	Reason   string    `json:"reason"`
}

// CuisineSuggestion proposes an under-used cuisine with sample recipes.
type CuisineSuggestion struct {
	Cuisine       string   `json:"cuisine"`
	TimesUsed     int      `json:"times_used"`
	SampleRecipes []string `json:"sample_recipes"`
}

// SeasonalSuggestion matches a recipe to the current calendar season.
type SeasonalSuggestion struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Title    string    `json:"title"`
	Keyword  string    `json:"keyword"`
}

// PersonalizedRecommendations is the recommendations payload, computed
// over a fixed trailing window independent of the dashboard range.
// @Description Personalized meal-planning recommendations.
type PersonalizedRecommendations struct {
	RotationSuggestions    []RotationSuggestion `json:"rotation_suggestions"`
	CuisineSuggestions     []CuisineSuggestion  `json:"cuisine_suggestions"`
	NutritionalSuggestions []string             `json:"nutritional_suggestions"`
	VarietyScore           int                  `json:"variety_score"`
	SeasonalSuggestions    []SeasonalSuggestion `json:"seasonal_suggestions"`
	// CostOptimizations is static guidance; no cost model is computed.
	CostOptimizations []string `json:"cost_optimizations"`
}

// MealRecommendation ranks one recipe against the current weather context.
type MealRecommendation struct {
	RecipeID   uuid.UUID `json:"recipe_id"`
	Title      string    `json:"title"`
	Confidence float64   `json:"confidence"`
	Tags       []string  `json:"matched_tags"`
	Reason     string    `json:"reason"`
}

// MealSuggestionsResponse is the weather-aware suggestions payload.
// @Description Weather-driven recipe suggestions with confidence scores.
type MealSuggestionsResponse struct {
	Context         WeatherContext       `json:"context"`
	Tags            []string             `json:"tags"`
	Recommendations []MealRecommendation `json:"recommendations"`
}
