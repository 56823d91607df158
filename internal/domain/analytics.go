package domain

import (
	"time"

	"github.com/google/uuid"
)

// Everything in this file is derived and ephemeral: recomputed per
// dashboard request, serialized, and discarded. Invariants: every
// percentage is finite and within [0,100]; every average is 0 (never NaN)
// for an empty sample.

// TrendDirection describes how a daily series moved across a window.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// AnalyticsOverview summarizes planning activity across the window.
type AnalyticsOverview struct {
	TotalMeals        int     `json:"total_meals"`
	UniqueRecipes     int     `json:"unique_recipes"`
	AvgMealsPerWeek   float64 `json:"avg_meals_per_week"`
	PlanningStreak    int     `json:"planning_streak_weeks"`
	MostActiveWeekday string  `json:"most_active_weekday"`
}

// RecipeFrequency counts how often one recipe was planned.
type RecipeFrequency struct {
	RecipeID       uuid.UUID `json:"recipe_id"`
	Title          string    `json:"title"`
	Count          int       `json:"count"`
	LastPlanned    time.Time `json:"last_planned"`
	AvgDaysBetween float64   `json:"avg_days_between"`
}

// RecipeStats groups frequency views of the user's recipe usage.
type RecipeStats struct {
	MostPlanned   []RecipeFrequency `json:"most_planned"`
	LeastUsed     []RecipeFrequency `json:"least_used"`
	NeedsRotation []RecipeFrequency `json:"needs_rotation"`
}

// CuisineDistribution is one cuisine's share of planned meals.
type CuisineDistribution struct {
	Cuisine    string  `json:"cuisine"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MealTypeDistribution is one meal slot's share of planned meals, with a
// serving-scaled average calorie figure. Output follows MealTypeOrder,
// not count order.
type MealTypeDistribution struct {
	MealType    MealType `json:"meal_type"`
	Count       int      `json:"count"`
	Percentage  float64  `json:"percentage"`
	AvgCalories float64  `json:"avg_calories"`
}

// WeeklyStats is one ISO-week bucket of planning activity.
type WeeklyStats struct {
	WeekStart      time.Time `json:"week_start"`
	TotalMeals     int       `json:"total_meals"`
	UniqueRecipes  int       `json:"unique_recipes"`
	MealsPerDay    float64   `json:"meals_per_day"`
	CompletionRate float64   `json:"completion_rate"`
}

// NutritionalTrends aggregates per-day macro totals across the window.
type NutritionalTrends struct {
	AvgDailyCalories float64        `json:"avg_daily_calories"`
	AvgDailyProteinG float64        `json:"avg_daily_protein_g"`
	AvgDailyCarbsG   float64        `json:"avg_daily_carbs_g"`
	AvgDailyFatG     float64        `json:"avg_daily_fat_g"`
	DaysTracked      int            `json:"days_tracked"`
	CalorieTrend     TrendDirection `json:"calorie_trend"`
	GoalComplianceRate float64      `json:"goal_compliance_rate"`
}

// SeasonalPattern reports what a user plans in one calendar season.
type SeasonalPattern struct {
	Season      Season   `json:"season"`
	TopRecipes  []string `json:"top_recipes"`
	TopCuisines []string `json:"top_cuisines"`
	AvgCalories float64  `json:"avg_calories"`
}

// WastedRecipe is a frequently planned but rarely completed recipe.
type WastedRecipe struct {
	RecipeID       uuid.UUID `json:"recipe_id"`
	Title          string    `json:"title"`
	TimesPlanned   int       `json:"times_planned"`
	CompletionRate float64   `json:"completion_rate"`
}

// WasteReduction reports completion behavior and improvement tips.
type WasteReduction struct {
	CompletionRate float64        `json:"completion_rate"`
	MostWasted     []WastedRecipe `json:"most_wasted"`
	Tips           []string       `json:"tips"`
}

// AnalyticsDashboard is the full dashboard payload.
// @Description Derived meal-planning statistics for one user and window.
type AnalyticsDashboard struct {
	Window struct {
		From time.Time `json:"from"`
		To   time.Time `json:"to"`
	} `json:"window"`
	Overview          AnalyticsOverview      `json:"overview"`
	RecipeStats       RecipeStats            `json:"recipe_stats"`
	CuisineBreakdown  []CuisineDistribution  `json:"cuisine_breakdown"`
	MealTypeBreakdown []MealTypeDistribution `json:"meal_type_breakdown"`
	WeeklyTrends      []WeeklyStats          `json:"weekly_trends"`
	Nutrition         NutritionalTrends      `json:"nutrition"`
	SeasonalPatterns  []SeasonalPattern      `json:"seasonal_patterns"`
	WasteReduction    WasteReduction         `json:"waste_reduction"`
}

// DashboardRequest contains query parameters for the dashboard endpoint.
type DashboardRequest struct {
	RangeDays int `json:"range_days" validate:"omitempty,min=1,max=730"`
}
