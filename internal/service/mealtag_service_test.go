package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
)

// weatherContext builds a baseline calm summer afternoon that individual
// tests then perturb.
func weatherContext(mutate func(*domain.WeatherContext)) *domain.WeatherContext {
	// Saturday afternoon, so no weeknight or weekday modifiers fire.
	now := time.Date(2026, time.August, 29, 14, 0, 0, 0, time.UTC)
	wctx := &domain.WeatherContext{
		Weather: domain.WeatherData{
			FeelsLikeF:    75,
			TemperatureF:  75,
			Humidity:      50,
			Precipitation: 5,
			WindMph:       5,
			AQI:           25,
			Condition:     "Clear",
		},
		Sun: domain.SunData{
			MinutesToSunset: 330,
			IsDaytime:       true,
		},
		Now:         now,
		IsWeeknight: false,
		TimeOfDay:   domain.TimeOfDayAfternoon,
		Season:      domain.SeasonSummer,
		Month:       time.August,
	}
	if mutate != nil {
		mutate(wctx)
	}
	return wctx
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func hasAnyTag(tags []string, want ...string) bool {
	for _, w := range want {
		if hasTag(tags, w) {
			return true
		}
	}
	return false
}

func TestPickMealTagsHotAfternoon(t *testing.T) {
	// 88°F, two hours to sunset, clear: hot branch, but not close enough
	// to sunset for the grill window.
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 88
		w.Sun.MinutesToSunset = 120
	})

	tags := PickMealTags(wctx)

	if !hasAnyTag(tags, "no-cook", "chilled", "salad", "fresh") {
		t.Errorf("expected hot-weather tags, got %v", tags)
	}
	if hasAnyTag(tags, "grill", "bbq") {
		t.Errorf("expected no outdoor tags outside the grill window, got %v", tags)
	}
	if !hasTag(tags, "summer") {
		t.Errorf("expected season tag, got %v", tags)
	}
}

func TestPickMealTagsGoldenHourGrill(t *testing.T) {
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 88
		w.Sun.MinutesToSunset = 45
	})

	tags := PickMealTags(wctx)

	if !hasTag(tags, "grill") {
		t.Errorf("expected grill during calm golden hour, got %v", tags)
	}
}

func TestPickMealTagsRainOverridesGrill(t *testing.T) {
	// Same golden-hour grill setup, but rain moves in: hazard overrides
	// must strip the outdoor tags and add indoor ones.
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 88
		w.Sun.MinutesToSunset = 45
		w.Weather.Precipitation = 75
	})

	tags := PickMealTags(wctx)

	if hasAnyTag(tags, "grill", "bbq") {
		t.Errorf("rain must strip outdoor tags, got %v", tags)
	}
	for _, want := range []string{"soup", "stew", "bake", "comfort", "indoor"} {
		if !hasTag(tags, want) {
			t.Errorf("expected rain tag %q, got %v", want, tags)
		}
	}
}

func TestPickMealTagsWindOverride(t *testing.T) {
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 72
		w.Weather.WindMph = 25
	})

	tags := PickMealTags(wctx)

	if hasAnyTag(tags, "grill", "bbq") {
		t.Errorf("wind must strip outdoor tags, got %v", tags)
	}
	for _, want := range []string{"sheet-pan", "air-fryer", "stovetop", "indoor"} {
		if !hasTag(tags, want) {
			t.Errorf("expected wind tag %q, got %v", want, tags)
		}
	}
}

func TestPickMealTagsColdRainyWeeknight(t *testing.T) {
	// Wednesday evening in late November, 42°F and raining.
	now := time.Date(2026, time.November, 25, 18, 0, 0, 0, time.UTC)
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 42
		w.Weather.Precipitation = 80
		w.Weather.Condition = "Rain"
		w.Now = now
		w.IsWeeknight = true
		w.TimeOfDay = domain.TimeOfDayEvening
		w.Season = domain.SeasonFall
		w.Month = time.November
	})

	tags := PickMealTags(wctx)

	if !hasAnyTag(tags, "soup", "stew", "comfort", "warm") {
		t.Errorf("expected cold-weather comfort tags, got %v", tags)
	}
	if !hasAnyTag(tags, "30-min", "quick", "weeknight") {
		t.Errorf("expected weeknight tags, got %v", tags)
	}
	if !hasTag(tags, "holiday") {
		t.Errorf("expected November holiday tag, got %v", tags)
	}
}

func TestPickMealTagsNeverDuplicates(t *testing.T) {
	contexts := []*domain.WeatherContext{
		weatherContext(nil),
		weatherContext(func(w *domain.WeatherContext) {
			// Cold + rain produces overlapping band and override tags.
			w.Weather.FeelsLikeF = 40
			w.Weather.Precipitation = 90
			w.Weather.WindMph = 30
		}),
		weatherContext(func(w *domain.WeatherContext) {
			w.Weather.FeelsLikeF = 90
			w.Weather.AQI = 150
		}),
	}

	for _, wctx := range contexts {
		tags := PickMealTags(wctx)
		seen := make(map[string]bool)
		for _, tag := range tags {
			if seen[tag] {
				t.Errorf("duplicate tag %q in %v", tag, tags)
			}
			seen[tag] = true
		}
	}
}

func TestCalculateConfidenceStacksAndClamps(t *testing.T) {
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 90
		w.IsWeeknight = true
	})
	recipe := &domain.Recipe{
		Title:           "Chilled Cucumber Gazpacho",
		Ingredients:     "tomato, cucumber, olive oil",
		Tags:            []string{"salad", "fresh"},
		PrepTimeMinutes: 20,
		Course:          domain.CourseMain,
	}

	// Two tag matches (0.3) + weeknight quick prep (0.2) + cooling
	// keywords (0.25) + summer ingredients (0.1) on top of the 0.5 base
	// exceeds 1.0 and must clamp.
	score, matched := CalculateConfidence(recipe, []string{"salad", "fresh"}, wctx)
	if score != 1.0 {
		t.Errorf("score = %v, want clamped 1.0", score)
	}
	if len(matched) != 2 {
		t.Errorf("matched = %v, want both tags", matched)
	}
}

func TestCalculateConfidenceBase(t *testing.T) {
	wctx := weatherContext(nil)
	recipe := &domain.Recipe{
		Title:           "Plain Omelette",
		Ingredients:     "eggs",
		PrepTimeMinutes: 45,
		Course:          domain.CourseBreakfast,
	}

	score, matched := CalculateConfidence(recipe, []string{"salad"}, wctx)
	if score != 0.5 {
		t.Errorf("score = %v, want 0.5 base with no bonuses", score)
	}
	if len(matched) != 0 {
		t.Errorf("matched = %v, want none", matched)
	}
}

func TestCalculateConfidenceNeverExceedsOne(t *testing.T) {
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 30
		w.IsWeeknight = true
	})
	recipe := &domain.Recipe{
		Title:           "Hearty Winter Root Vegetable Stew Soup Roast",
		Ingredients:     "potato, kale, citrus, cabbage",
		Tags:            []string{"soup", "stew", "comfort", "warm", "winter", "quick", "one-pot"},
		PrepTimeMinutes: 25,
		Course:          domain.CourseMain,
	}
	tags := PickMealTags(wctx)

	score, _ := CalculateConfidence(recipe, tags, wctx)
	if score > 1.0 {
		t.Errorf("score = %v, must not exceed 1.0", score)
	}
}

func TestRecommendationReasonMildWeather(t *testing.T) {
	got := RecommendationReason(weatherContext(nil))
	if !strings.Contains(got, "Perfect weather") {
		t.Errorf("reason = %q, want generic message for mild conditions", got)
	}
}

func TestRecommendationReasonNamesFactors(t *testing.T) {
	wctx := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 42
		w.Weather.Precipitation = 70
		w.IsWeeknight = true
	})

	got := RecommendationReason(wctx)
	if !strings.HasPrefix(got, "Suggested because ") {
		t.Errorf("reason = %q, want factor-based message", got)
	}
	for _, want := range []string{"chilly", "rain is likely", "busy weeknight"} {
		if !strings.Contains(got, want) {
			t.Errorf("reason = %q, missing %q", got, want)
		}
	}
}

func TestGetMealSuggestionsRanksAndLimits(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	hot := weatherContext(func(w *domain.WeatherContext) {
		w.Weather.FeelsLikeF = 90
	})

	recipes := []domain.Recipe{
		{ID: uuid.New(), UserID: user.ID, Title: "Beef Stew", Ingredients: "beef", Tags: []string{"stew"}, Course: domain.CourseMain},
		{ID: uuid.New(), UserID: user.ID, Title: "Chilled Melon Salad", Ingredients: "melon", Tags: []string{"salad", "fresh"}, Course: domain.CourseSide},
		{ID: uuid.New(), UserID: user.ID, Title: "Roast Chicken", Ingredients: "chicken", Course: domain.CourseMain},
	}

	svc := NewSuggestionService(
		userRepoReturning(user),
		&mockRecipeRepo{
			listAllFn: func(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
				return recipes, nil
			},
		},
		&mockWeatherService{
			buildContextFn: func(ctx context.Context, u *domain.User) (*domain.WeatherContext, error) {
				return hot, nil
			},
		},
	)

	resp, err := svc.GetMealSuggestions(context.Background(), user.ID.String(), 2)
	if err != nil {
		t.Fatalf("GetMealSuggestions() error = %v", err)
	}

	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Title != "Chilled Melon Salad" {
		t.Errorf("top pick = %q, want the cooling salad in hot weather", resp.Recommendations[0].Title)
	}
	if resp.Recommendations[0].Confidence < resp.Recommendations[1].Confidence {
		t.Errorf("recommendations not sorted by confidence descending")
	}
	if len(resp.Tags) == 0 {
		t.Errorf("expected tags in response")
	}
}

func TestGetMealSuggestionsInvalidUser(t *testing.T) {
	svc := NewSuggestionService(
		&mockUserRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, domain.ErrNotFound
		}},
		&mockRecipeRepo{},
		&mockWeatherService{},
	)

	if _, err := svc.GetMealSuggestions(context.Background(), "not-a-uuid", 0); err == nil {
		t.Fatal("expected error for malformed user id")
	}
}
