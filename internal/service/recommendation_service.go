package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/repository"
	"github.com/forkcast/forkcast/pkg/safemath"
)

// recommendationWindowDays is the fixed trailing window recommendations
// are computed over, independent of any dashboard range (8 weeks).
const recommendationWindowDays = 56

const (
	rotationSuggestionLimit = 5
	cuisineSuggestionLimit  = 3
	seasonalSuggestionLimit = 5
	underusedCuisineUses    = 3
)

// seasonalDishKeywords drive seasonal recipe matching against titles and
// tags. These are dish-style words, distinct from the ingredient lists
// used for confidence scoring.
var seasonalDishKeywords = map[domain.Season][]string{
	domain.SeasonSpring: {"fresh", "light", "green", "salad", "herb"},
	domain.SeasonSummer: {"grill", "chilled", "salad", "no-cook", "fresh"},
	domain.SeasonFall:   {"roast", "bake", "squash", "hearty", "warm"},
	domain.SeasonWinter: {"soup", "stew", "roast", "comfort", "warm"},
}

// costOptimizationTips is static guidance. No cost model is computed
// from the user's data.
var costOptimizationTips = []string{
	"Plan meals that share ingredients across the week to cut waste and spend.",
	"Batch-cook a double portion on Sunday and plan the leftovers for a weeknight.",
	"Build at least one meatless dinner per week around beans or lentils.",
}

// RecommendationService builds personalized planning suggestions.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string) (*domain.PersonalizedRecommendations, error)
}

type recommendationService struct {
	users     repository.UserRepository
	recipes   repository.RecipeRepository
	mealPlans repository.MealPlanRepository
	goals     repository.NutritionGoalRepository
	now       func() time.Time
}

// NewRecommendationService creates a new recommendation service. now may
// be nil to use time.Now.
func NewRecommendationService(
	users repository.UserRepository,
	recipes repository.RecipeRepository,
	mealPlans repository.MealPlanRepository,
	goals repository.NutritionGoalRepository,
	now func() time.Time,
) RecommendationService {
	if now == nil {
		now = time.Now
	}
	return &recommendationService{
		users:     users,
		recipes:   recipes,
		mealPlans: mealPlans,
		goals:     goals,
		now:       now,
	}
}

// GetRecommendations computes all suggestion groups over the trailing
// 8-week window.
func (s *recommendationService) GetRecommendations(ctx context.Context, userID string) (*domain.PersonalizedRecommendations, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(user.Location())
	from := now.AddDate(0, 0, -recommendationWindowDays)

	meals, err := s.mealPlans.ListMealsByDateRange(ctx, user.ID, from, now)
	if err != nil {
		return nil, fmt.Errorf("load meal history: %w", err)
	}
	recipes, err := s.recipes.ListAll(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}

	var goal *domain.NutritionGoal
	if g, err := s.goals.GetActive(ctx, user.ID); err == nil {
		goal = g
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load nutrition goal: %w", err)
	}

	usage := collectUsage(meals)
	trends := computeNutritionalTrends(meals, goal)
	season := domain.SeasonForMonth(now.Month())

	return &domain.PersonalizedRecommendations{
		RotationSuggestions:    rotationSuggestions(recipes, usage, now),
		CuisineSuggestions:     cuisineSuggestions(recipes, meals),
		NutritionalSuggestions: nutritionalSuggestions(trends),
		VarietyScore:           varietyScore(meals),
		SeasonalSuggestions:    seasonalSuggestions(recipes, season),
		CostOptimizations:      costOptimizationTips,
	}, nil
}

// rotationSuggestions surfaces recipes never planned or untouched for
// more than three weeks, stalest first.
func rotationSuggestions(recipes []domain.Recipe, usage map[uuid.UUID]*recipeUsage, now time.Time) []domain.RotationSuggestion {
	cutoff := now.Add(-rotationStaleness)

	type candidate struct {
		suggestion domain.RotationSuggestion
		last       time.Time
	}
	candidates := make([]candidate, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		u, used := usage[r.ID]
		if !used {
			candidates = append(candidates, candidate{
				suggestion: domain.RotationSuggestion{
					RecipeID: r.ID,
					Title:    r.Title,
					Reason:   "You haven't tried this one yet.",
				},
			})
			continue
		}
		last := u.lastPlanned()
		if last.Before(cutoff) {
			weeks := int(math.Round(now.Sub(last).Hours() / 24 / 7))
			candidates = append(candidates, candidate{
				suggestion: domain.RotationSuggestion{
					RecipeID: r.ID,
					Title:    r.Title,
					Reason:   fmt.Sprintf("You haven't made this in %d weeks.", weeks),
				},
				last: last,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].last.Equal(candidates[j].last) {
			return candidates[i].last.Before(candidates[j].last)
		}
		return candidates[i].suggestion.Title < candidates[j].suggestion.Title
	})
	out := make([]domain.RotationSuggestion, 0, rotationSuggestionLimit)
	for _, c := range candidates {
		if len(out) == rotationSuggestionLimit {
			break
		}
		out = append(out, c.suggestion)
	}
	return out
}

// cuisineSuggestions surfaces cuisines the user owns recipes for but has
// planned fewer than three times in the window.
func cuisineSuggestions(recipes []domain.Recipe, meals []domain.PlannedMeal) []domain.CuisineSuggestion {
	used := make(map[string]int)
	for i := range meals {
		if meals[i].Recipe != nil && meals[i].Recipe.Cuisine != "" {
			used[meals[i].Recipe.Cuisine]++
		}
	}

	byCuisine := make(map[string][]string)
	for i := range recipes {
		if recipes[i].Cuisine == "" {
			continue
		}
		byCuisine[recipes[i].Cuisine] = append(byCuisine[recipes[i].Cuisine], recipes[i].Title)
	}

	cuisines := make([]string, 0, len(byCuisine))
	for cuisine := range byCuisine {
		if used[cuisine] < underusedCuisineUses {
			cuisines = append(cuisines, cuisine)
		}
	}
	sort.Slice(cuisines, func(i, j int) bool {
		if used[cuisines[i]] != used[cuisines[j]] {
			return used[cuisines[i]] < used[cuisines[j]]
		}
		return cuisines[i] < cuisines[j]
	})

	out := make([]domain.CuisineSuggestion, 0, cuisineSuggestionLimit)
	for _, cuisine := range cuisines {
		if len(out) == cuisineSuggestionLimit {
			break
		}
		samples := byCuisine[cuisine]
		sort.Strings(samples)
		if len(samples) > 3 {
			samples = samples[:3]
		}
		out = append(out, domain.CuisineSuggestion{
			Cuisine:       cuisine,
			TimesUsed:     used[cuisine],
			SampleRecipes: samples,
		})
	}
	return out
}

// nutritionalSuggestions applies fixed threshold rules to the computed
// trends.
func nutritionalSuggestions(trends domain.NutritionalTrends) []string {
	if trends.DaysTracked == 0 {
		return nil
	}
	var out []string
	if trends.AvgDailyCalories > 2500 {
		out = append(out, "Your average day runs high on calories. Consider swapping in some lighter dinners.")
	}
	if trends.AvgDailyProteinG > 0 && trends.AvgDailyProteinG < 50 {
		out = append(out, "Protein is on the low side. Try adding a protein-forward lunch a few days a week.")
	}
	if trends.CalorieTrend == domain.TrendUp {
		out = append(out, "Calories have been trending up over the last few weeks. Worth a look if that's unintentional.")
	}
	if trends.GoalComplianceRate > 0 && trends.GoalComplianceRate < 50 {
		out = append(out, "Fewer than half of your days land near your calorie goal. Smaller adjustments stick better than big ones.")
	}
	return out
}

// varietyScore rewards recipe diversity relative to meal count. The
// unique/total ratio is amplified by 1.5x and capped at 100, so planning
// two-thirds unique recipes already scores full marks.
func varietyScore(meals []domain.PlannedMeal) int {
	if len(meals) == 0 {
		return 0
	}
	unique := make(map[uuid.UUID]struct{})
	for i := range meals {
		if meals[i].HasRecipe() {
			unique[*meals[i].RecipeID] = struct{}{}
		}
	}
	ratio := safemath.Div(float64(len(unique)), float64(len(meals)), 0)
	return int(math.Min(100, math.Round(ratio*150)))
}

// seasonalSuggestions matches recipe titles and tags against the current
// season's dish keywords.
func seasonalSuggestions(recipes []domain.Recipe, season domain.Season) []domain.SeasonalSuggestion {
	keywords := seasonalDishKeywords[season]
	out := make([]domain.SeasonalSuggestion, 0, seasonalSuggestionLimit)
	for i := range recipes {
		if len(out) == seasonalSuggestionLimit {
			break
		}
		r := &recipes[i]
		haystack := strings.ToLower(r.Title + " " + strings.Join(r.Tags, " "))
		for _, kw := range keywords {
			if strings.Contains(haystack, kw) {
				out = append(out, domain.SeasonalSuggestion{
					RecipeID: r.ID,
					Title:    r.Title,
					Keyword:  kw,
				})
				break
			}
		}
	}
	return out
}
