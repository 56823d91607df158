package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/repository"
	"github.com/forkcast/forkcast/pkg/safemath"
)

// Feels-like temperature bands, degrees Fahrenheit.
const (
	tempHotF  = 85
	tempWarmF = 70
	tempCoolF = 55
)

// Hazard thresholds that override temperature-comfort tags.
const (
	precipOverridePct = 60
	windOverrideMph   = 20
	aqiOverride       = 100
)

// Golden-hour grilling window: sun still up but setting within the hour,
// calm wind, breathable air.
const (
	goldenHourMinutes = 60
	grillCalmWindMph  = 15
)

// defaultSuggestionLimit is how many ranked recipes a suggestion request
// returns when the caller does not ask for a specific count.
const defaultSuggestionLimit = 3

var coolingKeywords = []string{"chilled", "cold", "salad", "fresh", "frozen", "ice", "cucumber", "melon", "gazpacho", "no-cook", "smoothie"}

var warmingKeywords = []string{"soup", "stew", "braise", "roast", "warm", "spicy", "chili", "baked", "hearty"}

var seasonalIngredients = map[domain.Season][]string{
	domain.SeasonSpring: {"asparagus", "pea", "radish", "artichoke", "strawberry", "mint"},
	domain.SeasonSummer: {"tomato", "corn", "zucchini", "berry", "peach", "basil"},
	domain.SeasonFall:   {"pumpkin", "squash", "apple", "mushroom", "sage", "cranberry"},
	domain.SeasonWinter: {"citrus", "root", "kale", "potato", "cabbage", "orange"},
}

// PickMealTags maps a weather context to an ordered, de-duplicated set of
// recommendation tags. Temperature comfort goes first, then hazard
// overrides (which strip outdoor tags), then time-of-day, weekday, and
// seasonal modifiers.
func PickMealTags(wctx *domain.WeatherContext) []string {
	tags := []string{string(wctx.Season)}
	tags = append(tags, temperatureBandTags(wctx)...)
	tags = applyHazardOverrides(tags, wctx)
	tags = append(tags, scheduleTags(wctx)...)
	tags = append(tags, monthTags(wctx.Month)...)
	return dedupeTags(tags)
}

// temperatureBandTags classifies feels-like temperature into one of four
// bands. The hot band prefers grilling during a calm, clear golden hour.
func temperatureBandTags(wctx *domain.WeatherContext) []string {
	feels := wctx.Weather.FeelsLikeF
	switch {
	case feels >= tempHotF:
		if isGrillWindow(wctx) {
			return []string{"grill", "bbq", "summer", "light"}
		}
		return []string{"no-cook", "chilled", "salad", "fresh"}
	case feels >= tempWarmF:
		return []string{"fresh", "salad", "grill", "light"}
	case feels >= tempCoolF:
		return []string{"roast", "bake", "hearty", "warm"}
	default:
		return []string{"soup", "stew", "braise", "comfort", "warm"}
	}
}

func isGrillWindow(wctx *domain.WeatherContext) bool {
	m := wctx.Sun.MinutesToSunset
	return m > 0 && m <= goldenHourMinutes &&
		wctx.Weather.WindMph < grillCalmWindMph &&
		wctx.Weather.AQI < aqiOverride
}

// applyHazardOverrides strips outdoor tags and appends indoor-cooking
// tags when rain, wind, or bad air makes outdoor cooking unpleasant.
// Hazards always win over temperature comfort, so this runs after the
// band step.
func applyHazardOverrides(tags []string, wctx *domain.WeatherContext) []string {
	rainy := wctx.Weather.Precipitation >= precipOverridePct
	windyOrSmoky := wctx.Weather.WindMph >= windOverrideMph || wctx.Weather.AQI >= aqiOverride
	if !rainy && !windyOrSmoky {
		return tags
	}

	kept := tags[:0]
	for _, t := range tags {
		if t == "grill" || t == "bbq" {
			continue
		}
		kept = append(kept, t)
	}

	if rainy {
		kept = append(kept, "soup", "stew", "bake", "comfort", "indoor")
	}
	if windyOrSmoky {
		kept = append(kept, "sheet-pan", "air-fryer", "stovetop", "indoor")
	}
	return kept
}

func scheduleTags(wctx *domain.WeatherContext) []string {
	var tags []string
	if wctx.TimeOfDay == domain.TimeOfDayMorning {
		tags = append(tags, "breakfast")
	}
	if wctx.IsWeeknight {
		tags = append(tags, "30-min", "quick", "one-pot", "weeknight")
	}
	switch wctx.Now.Weekday() {
	case time.Friday:
		tags = append(tags, "crowd-pleaser")
	case time.Sunday:
		tags = append(tags, "batch-cook", "leftovers")
	}
	return tags
}

func monthTags(m time.Month) []string {
	switch m {
	case time.November:
		return []string{"holiday"}
	case time.December, time.January, time.February:
		return []string{"citrus", "root-vegetables"}
	case time.September, time.October:
		return []string{"squash", "apple"}
	default:
		return nil
	}
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// CalculateConfidence scores a recipe against the recommended tags and
// the weather context. Scores start at 0.5 and never exceed 1.0; the
// matched tags are returned for display.
func CalculateConfidence(recipe *domain.Recipe, tags []string, wctx *domain.WeatherContext) (float64, []string) {
	score := 0.5
	var matched []string

	for _, want := range tags {
		for _, have := range recipe.Tags {
			if tagMatches(have, want) {
				score += 0.15
				matched = append(matched, want)
				break
			}
		}
	}

	if wctx.IsWeeknight && recipe.PrepTimeMinutes > 0 && recipe.PrepTimeMinutes <= 30 {
		score += 0.2
	}

	haystack := strings.ToLower(recipe.Title + " " + recipe.Ingredients + " " + string(recipe.Course))
	if wctx.Weather.FeelsLikeF >= tempHotF && containsAny(haystack, coolingKeywords) {
		score += 0.25
	} else if wctx.Weather.FeelsLikeF < tempCoolF && containsAny(haystack, warmingKeywords) {
		score += 0.25
	}

	if containsAny(haystack, seasonalIngredients[wctx.Season]) {
		score += 0.1
	}

	return safemath.Clamp(score, 0, 1), matched
}

func tagMatches(recipeTag, wantTag string) bool {
	a := strings.ToLower(recipeTag)
	b := strings.ToLower(wantTag)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// RecommendationReason builds a short "because of X and Y" explanation
// from whichever weather and schedule factors stand out. Mild conditions
// get a generic message.
func RecommendationReason(wctx *domain.WeatherContext) string {
	var factors []string

	feels := wctx.Weather.FeelsLikeF
	if feels >= tempHotF {
		factors = append(factors, fmt.Sprintf("it's hot out (%.0f°F)", feels))
	} else if feels < tempCoolF {
		factors = append(factors, fmt.Sprintf("it's chilly (%.0f°F)", feels))
	}
	if wctx.Weather.Precipitation >= 40 {
		factors = append(factors, "rain is likely")
	}
	if wctx.Weather.WindMph >= windOverrideMph {
		factors = append(factors, "it's windy")
	}
	if wctx.Weather.AQI >= aqiOverride {
		factors = append(factors, "air quality is poor")
	}
	if m := wctx.Sun.MinutesToSunset; m > 0 && m <= 150 {
		factors = append(factors, "the sun sets soon")
	}
	if wctx.IsWeeknight {
		factors = append(factors, "it's a busy weeknight")
	}

	if len(factors) == 0 {
		return "Perfect weather for whatever you're craving."
	}
	return "Suggested because " + joinFactors(factors) + "."
}

func joinFactors(factors []string) string {
	if len(factors) == 1 {
		return factors[0]
	}
	return strings.Join(factors[:len(factors)-1], ", ") + " and " + factors[len(factors)-1]
}

// SuggestionService ranks the user's recipes against current weather and
// exposes the underlying weather views.
type SuggestionService interface {
	GetMealSuggestions(ctx context.Context, userID string, limit int) (*domain.MealSuggestionsResponse, error)
	GetWeatherContext(ctx context.Context, userID string) (*domain.WeatherContext, error)
	GetForecast(ctx context.Context, userID string, days int) ([]domain.ForecastDay, error)
}

type suggestionService struct {
	users   repository.UserRepository
	recipes repository.RecipeRepository
	weather WeatherService
}

// NewSuggestionService creates a new suggestion service.
func NewSuggestionService(users repository.UserRepository, recipes repository.RecipeRepository, weather WeatherService) SuggestionService {
	return &suggestionService{users: users, recipes: recipes, weather: weather}
}

// GetMealSuggestions builds a weather context for the user, derives the
// tag set, scores every recipe, and returns the top entries sorted by
// confidence. limit <= 0 means the default of 3.
func (s *suggestionService) GetMealSuggestions(ctx context.Context, userID string, limit int) (*domain.MealSuggestionsResponse, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	wctx, err := s.weather.BuildContext(ctx, user)
	if err != nil {
		return nil, err
	}

	tags := PickMealTags(wctx)
	reason := RecommendationReason(wctx)

	recipes, err := s.recipes.ListAll(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	recommendations := make([]domain.MealRecommendation, 0, len(recipes))
	for i := range recipes {
		confidence, matched := CalculateConfidence(&recipes[i], tags, wctx)
		recommendations = append(recommendations, domain.MealRecommendation{
			RecipeID:   recipes[i].ID,
			Title:      recipes[i].Title,
			Confidence: confidence,
			Tags:       matched,
			Reason:     reason,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Confidence > recommendations[j].Confidence
	})
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	return &domain.MealSuggestionsResponse{
		Context:         *wctx,
		Tags:            tags,
		Recommendations: recommendations,
	}, nil
}

func (s *suggestionService) GetWeatherContext(ctx context.Context, userID string) (*domain.WeatherContext, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return s.weather.BuildContext(ctx, user)
}

func (s *suggestionService) GetForecast(ctx context.Context, userID string, days int) ([]domain.ForecastDay, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return s.weather.Forecast(ctx, user, days)
}
