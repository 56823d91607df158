package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/calendar"
	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/repository"
	"github.com/forkcast/forkcast/pkg/safemath"
)

const (
	// defaultDashboardDays is the trailing window when the caller does not
	// specify one (12 weeks).
	defaultDashboardDays = 84

	// rotationStaleness is how long a recipe can go unplanned before it
	// counts as needing rotation.
	rotationStaleness = 3 * 7 * 24 * time.Hour

	topRecipesLimit  = 10
	mostWastedLimit  = 5
	trendWeeksLimit  = 12
	trendDeltaRatio  = 0.05
	complianceMargin = 0.10
)

// AnalyticsService computes derived dashboards from meal-plan history.
type AnalyticsService interface {
	GetDashboard(ctx context.Context, userID string, rangeDays int) (*domain.AnalyticsDashboard, error)
}

type analyticsService struct {
	users     repository.UserRepository
	recipes   repository.RecipeRepository
	mealPlans repository.MealPlanRepository
	goals     repository.NutritionGoalRepository
	now       func() time.Time
}

// NewAnalyticsService creates a new analytics service. now may be nil to
// use time.Now.
func NewAnalyticsService(
	users repository.UserRepository,
	recipes repository.RecipeRepository,
	mealPlans repository.MealPlanRepository,
	goals repository.NutritionGoalRepository,
	now func() time.Time,
) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &analyticsService{
		users:     users,
		recipes:   recipes,
		mealPlans: mealPlans,
		goals:     goals,
		now:       now,
	}
}

// GetDashboard computes every dashboard section over the trailing window
// (default 12 weeks). Sections are independent, so they run concurrently
// and a failing section degrades to its zero value instead of failing
// the dashboard.
func (s *analyticsService) GetDashboard(ctx context.Context, userID string, rangeDays int) (*domain.AnalyticsDashboard, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if rangeDays <= 0 {
		rangeDays = defaultDashboardDays
	}
	now := s.now().In(user.Location())
	from := now.AddDate(0, 0, -rangeDays)

	meals, err := s.mealPlans.ListMealsByDateRange(ctx, user.ID, from, now)
	if err != nil {
		return nil, fmt.Errorf("load meal history: %w", err)
	}

	// Seasonal patterns span all history, not just the window.
	allMeals, err := s.mealPlans.ListMealsByDateRange(ctx, user.ID, time.Time{}, now)
	if err != nil {
		log.Printf("[analytics] all-time history unavailable, seasonal patterns will be empty: %v", err)
		allMeals = nil
	}

	recipes, err := s.recipes.ListAll(ctx, user.ID)
	if err != nil {
		log.Printf("[analytics] recipe list unavailable, least-used stats will be empty: %v", err)
		recipes = nil
	}

	goal, err := s.goals.GetActive(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Printf("[analytics] nutrition goal unavailable, compliance will be 0: %v", err)
	}

	dashboard := &domain.AnalyticsDashboard{}
	dashboard.Window.From = from
	dashboard.Window.To = now

	var wg sync.WaitGroup
	section := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[analytics] %s section failed, rendering empty: %v", name, r)
				}
			}()
			fn()
		}()
	}

	section("overview", func() { dashboard.Overview = computeOverview(meals, rangeDays, now) })
	section("recipe_stats", func() { dashboard.RecipeStats = computeRecipeStats(meals, recipes, now) })
	section("cuisines", func() { dashboard.CuisineBreakdown = computeCuisineBreakdown(meals) })
	section("meal_types", func() { dashboard.MealTypeBreakdown = computeMealTypeBreakdown(meals) })
	section("weekly_trends", func() { dashboard.WeeklyTrends = computeWeeklyTrends(meals) })
	section("nutrition", func() { dashboard.Nutrition = computeNutritionalTrends(meals, goal) })
	section("seasonal", func() { dashboard.SeasonalPatterns = computeSeasonalPatterns(allMeals) })
	section("waste", func() { dashboard.WasteReduction = computeWasteReduction(meals) })
	wg.Wait()

	return dashboard, nil
}

// recipeUsage accumulates per-recipe planning history.
type recipeUsage struct {
	recipeID  uuid.UUID
	title     string
	count     int
	completed int
	dates     []time.Time
}

// collectUsage indexes meals by recipe. Custom (recipe-less) meals are
// excluded since they have no identity to aggregate on.
func collectUsage(meals []domain.PlannedMeal) map[uuid.UUID]*recipeUsage {
	usage := make(map[uuid.UUID]*recipeUsage)
	for i := range meals {
		m := &meals[i]
		if !m.HasRecipe() {
			continue
		}
		u, ok := usage[*m.RecipeID]
		if !ok {
			u = &recipeUsage{recipeID: *m.RecipeID}
			usage[*m.RecipeID] = u
		}
		if m.Recipe != nil && u.title == "" {
			u.title = m.Recipe.Title
		}
		u.count++
		if m.Completed {
			u.completed++
		}
		u.dates = append(u.dates, m.Date)
	}
	for _, u := range usage {
		sort.Slice(u.dates, func(i, j int) bool { return u.dates[i].Before(u.dates[j]) })
	}
	return usage
}

func (u *recipeUsage) lastPlanned() time.Time {
	if len(u.dates) == 0 {
		return time.Time{}
	}
	return u.dates[len(u.dates)-1]
}

// avgDaysBetween is the arithmetic mean of the gaps between consecutive
// planning dates, 0 for fewer than two uses.
func (u *recipeUsage) avgDaysBetween() float64 {
	if len(u.dates) < 2 {
		return 0
	}
	gaps := make([]float64, 0, len(u.dates)-1)
	for i := 1; i < len(u.dates); i++ {
		gaps = append(gaps, u.dates[i].Sub(u.dates[i-1]).Hours()/24)
	}
	return round1(safemath.Average(gaps))
}

func (u *recipeUsage) toFrequency() domain.RecipeFrequency {
	return domain.RecipeFrequency{
		RecipeID:       u.recipeID,
		Title:          u.title,
		Count:          u.count,
		LastPlanned:    u.lastPlanned(),
		AvgDaysBetween: u.avgDaysBetween(),
	}
}

func computeOverview(meals []domain.PlannedMeal, rangeDays int, now time.Time) domain.AnalyticsOverview {
	unique := make(map[uuid.UUID]struct{})
	weekdayCounts := make(map[time.Weekday]int)
	plannedWeeks := make(map[string]struct{})
	for i := range meals {
		m := &meals[i]
		if m.HasRecipe() {
			unique[*m.RecipeID] = struct{}{}
		}
		weekdayCounts[m.Date.Weekday()]++
		plannedWeeks[calendar.WeekStart(m.Date).Format("2006-01-02")] = struct{}{}
	}

	// Streak walks backward week by week until the first gap.
	streak := 0
	for week := calendar.WeekStart(now); ; week = week.AddDate(0, 0, -7) {
		if _, ok := plannedWeeks[week.Format("2006-01-02")]; !ok {
			break
		}
		streak++
	}

	mostActive := ""
	best := 0
	for _, day := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		if weekdayCounts[day] > best {
			best = weekdayCounts[day]
			mostActive = day.String()
		}
	}

	return domain.AnalyticsOverview{
		TotalMeals:        len(meals),
		UniqueRecipes:     len(unique),
		AvgMealsPerWeek:   round1(safemath.Div(float64(len(meals)), safemath.WeeksFromDays(float64(rangeDays)), 0)),
		PlanningStreak:    streak,
		MostActiveWeekday: mostActive,
	}
}

func computeRecipeStats(meals []domain.PlannedMeal, recipes []domain.Recipe, now time.Time) domain.RecipeStats {
	usage := collectUsage(meals)

	titles := make(map[uuid.UUID]string, len(recipes))
	for i := range recipes {
		titles[recipes[i].ID] = recipes[i].Title
	}
	for _, u := range usage {
		if u.title == "" {
			u.title = titles[u.recipeID]
		}
	}

	all := make([]*recipeUsage, 0, len(usage))
	for _, u := range usage {
		all = append(all, u)
	}

	mostPlanned := make([]domain.RecipeFrequency, 0, topRecipesLimit)
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].title < all[j].title
	})
	for _, u := range all {
		if len(mostPlanned) == topRecipesLimit {
			break
		}
		mostPlanned = append(mostPlanned, u.toFrequency())
	}

	// Least used covers the user's whole recipe box, including recipes
	// with no planning history at all.
	leastUsed := make([]domain.RecipeFrequency, 0, topRecipesLimit)
	candidates := make([]domain.RecipeFrequency, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if u, ok := usage[r.ID]; ok {
			if u.count < 2 {
				candidates = append(candidates, u.toFrequency())
			}
			continue
		}
		candidates = append(candidates, domain.RecipeFrequency{RecipeID: r.ID, Title: r.Title})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Count != candidates[j].Count {
			return candidates[i].Count < candidates[j].Count
		}
		return candidates[i].Title < candidates[j].Title
	})
	for _, c := range candidates {
		if len(leastUsed) == topRecipesLimit {
			break
		}
		leastUsed = append(leastUsed, c)
	}

	// Needs rotation: well-used recipes gone stale, oldest first.
	cutoff := now.Add(-rotationStaleness)
	stale := make([]*recipeUsage, 0)
	for _, u := range all {
		if u.count > 2 && u.lastPlanned().Before(cutoff) {
			stale = append(stale, u)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].lastPlanned().Before(stale[j].lastPlanned()) })
	needsRotation := make([]domain.RecipeFrequency, 0, len(stale))
	for _, u := range stale {
		needsRotation = append(needsRotation, u.toFrequency())
	}

	return domain.RecipeStats{
		MostPlanned:   mostPlanned,
		LeastUsed:     leastUsed,
		NeedsRotation: needsRotation,
	}
}

func computeCuisineBreakdown(meals []domain.PlannedMeal) []domain.CuisineDistribution {
	counts := make(map[string]int)
	total := 0
	for i := range meals {
		if meals[i].Recipe == nil || meals[i].Recipe.Cuisine == "" {
			continue
		}
		counts[meals[i].Recipe.Cuisine]++
		total++
	}

	out := make([]domain.CuisineDistribution, 0, len(counts))
	for cuisine, count := range counts {
		out = append(out, domain.CuisineDistribution{
			Cuisine:    cuisine,
			Count:      count,
			Percentage: round1(safemath.Percentage(float64(count), float64(total))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cuisine < out[j].Cuisine
	})
	return out
}

func computeMealTypeBreakdown(meals []domain.PlannedMeal) []domain.MealTypeDistribution {
	type slot struct {
		count    int
		calories []float64
	}
	slots := make(map[domain.MealType]*slot, len(domain.MealTypeOrder))
	for _, mt := range domain.MealTypeOrder {
		slots[mt] = &slot{}
	}
	for i := range meals {
		s, ok := slots[meals[i].MealType]
		if !ok {
			continue
		}
		s.count++
		if cal, ok := scaledCalories(&meals[i]); ok {
			s.calories = append(s.calories, cal)
		}
	}

	out := make([]domain.MealTypeDistribution, 0, len(domain.MealTypeOrder))
	for _, mt := range domain.MealTypeOrder {
		s := slots[mt]
		out = append(out, domain.MealTypeDistribution{
			MealType:    mt,
			Count:       s.count,
			Percentage:  round1(safemath.Percentage(float64(s.count), float64(len(meals)))),
			AvgCalories: round1(safemath.Average(s.calories)),
		})
	}
	return out
}

func computeWeeklyTrends(meals []domain.PlannedMeal) []domain.WeeklyStats {
	type week struct {
		start     time.Time
		total     int
		completed int
		recipes   map[uuid.UUID]struct{}
		days      map[string]struct{}
	}
	weeks := make(map[string]*week)
	for i := range meals {
		m := &meals[i]
		start := calendar.WeekStart(m.Date)
		key := start.Format("2006-01-02")
		w, ok := weeks[key]
		if !ok {
			w = &week{start: start, recipes: make(map[uuid.UUID]struct{}), days: make(map[string]struct{})}
			weeks[key] = w
		}
		w.total++
		if m.Completed {
			w.completed++
		}
		if m.HasRecipe() {
			w.recipes[*m.RecipeID] = struct{}{}
		}
		w.days[m.Date.Format("2006-01-02")] = struct{}{}
	}

	out := make([]domain.WeeklyStats, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, domain.WeeklyStats{
			WeekStart:      w.start,
			TotalMeals:     w.total,
			UniqueRecipes:  len(w.recipes),
			MealsPerDay:    round1(safemath.Div(float64(w.total), float64(len(w.days)), 0)),
			CompletionRate: round1(safemath.Percentage(float64(w.completed), float64(w.total))),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	if len(out) > trendWeeksLimit {
		out = out[len(out)-trendWeeksLimit:]
	}
	return out
}

// dayTotals is one day's serving-scaled macro sum.
type dayTotals struct {
	date     string
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}

func computeNutritionalTrends(meals []domain.PlannedMeal, goal *domain.NutritionGoal) domain.NutritionalTrends {
	byDay := make(map[string]*dayTotals)
	for i := range meals {
		m := &meals[i]
		if m.Recipe == nil {
			continue
		}
		scale := float64(m.Servings) / m.Recipe.EffectiveServings()
		key := m.Date.Format("2006-01-02")
		d, ok := byDay[key]
		if !ok {
			d = &dayTotals{date: key}
			byDay[key] = d
		}
		if m.Recipe.Calories != nil {
			d.calories += *m.Recipe.Calories * scale
		}
		if m.Recipe.ProteinG != nil {
			d.protein += *m.Recipe.ProteinG * scale
		}
		if m.Recipe.CarbsG != nil {
			d.carbs += *m.Recipe.CarbsG * scale
		}
		if m.Recipe.FatG != nil {
			d.fat += *m.Recipe.FatG * scale
		}
	}

	days := make([]*dayTotals, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date < days[j].date })

	calories := make([]float64, len(days))
	protein := make([]float64, len(days))
	carbs := make([]float64, len(days))
	fat := make([]float64, len(days))
	for i, d := range days {
		calories[i] = d.calories
		protein[i] = d.protein
		carbs[i] = d.carbs
		fat[i] = d.fat
	}

	compliance := 0.0
	if goal != nil && goal.DailyCalories > 0 && len(days) > 0 {
		within := 0
		for _, c := range calories {
			if math.Abs(c-goal.DailyCalories) <= complianceMargin*goal.DailyCalories {
				within++
			}
		}
		compliance = round1(safemath.Percentage(float64(within), float64(len(days))))
	}

	return domain.NutritionalTrends{
		AvgDailyCalories:   round1(safemath.Average(calories)),
		AvgDailyProteinG:   round1(safemath.Average(protein)),
		AvgDailyCarbsG:     round1(safemath.Average(carbs)),
		AvgDailyFatG:       round1(safemath.Average(fat)),
		DaysTracked:        len(days),
		CalorieTrend:       calorieTrend(calories),
		GoalComplianceRate: compliance,
	}
}

// calorieTrend compares the first and second half of the day series.
// Fewer than 4 tracked days is too noisy to call a trend.
func calorieTrend(calories []float64) domain.TrendDirection {
	if !safemath.HasMinimumSampleSize(len(calories), 4) {
		return domain.TrendStable
	}
	mid := len(calories) / 2
	first := safemath.Average(calories[:mid])
	second := safemath.Average(calories[mid:])
	if first == 0 {
		return domain.TrendStable
	}
	delta := (second - first) / first
	switch {
	case delta > trendDeltaRatio:
		return domain.TrendUp
	case delta < -trendDeltaRatio:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

func computeSeasonalPatterns(meals []domain.PlannedMeal) []domain.SeasonalPattern {
	type seasonAgg struct {
		recipeCounts  map[string]int
		cuisineCounts map[string]int
		calories      []float64
	}
	seasons := map[domain.Season]*seasonAgg{}
	for i := range meals {
		m := &meals[i]
		season := domain.SeasonForMonth(m.Date.Month())
		agg, ok := seasons[season]
		if !ok {
			agg = &seasonAgg{recipeCounts: make(map[string]int), cuisineCounts: make(map[string]int)}
			seasons[season] = agg
		}
		if m.Recipe != nil {
			agg.recipeCounts[m.Recipe.Title]++
			if m.Recipe.Cuisine != "" {
				agg.cuisineCounts[m.Recipe.Cuisine]++
			}
		}
		if cal, ok := scaledCalories(m); ok {
			agg.calories = append(agg.calories, cal)
		}
	}

	out := make([]domain.SeasonalPattern, 0, len(seasons))
	for _, season := range []domain.Season{domain.SeasonSpring, domain.SeasonSummer, domain.SeasonFall, domain.SeasonWinter} {
		agg, ok := seasons[season]
		if !ok {
			continue
		}
		out = append(out, domain.SeasonalPattern{
			Season:      season,
			TopRecipes:  topKeysByCount(agg.recipeCounts, 5),
			TopCuisines: topKeysByCount(agg.cuisineCounts, 3),
			AvgCalories: round1(safemath.Average(agg.calories)),
		})
	}
	return out
}

func computeWasteReduction(meals []domain.PlannedMeal) domain.WasteReduction {
	completed := 0
	weekdayTotals := make(map[time.Weekday]int)
	weekdayCompleted := make(map[time.Weekday]int)
	for i := range meals {
		weekdayTotals[meals[i].Date.Weekday()]++
		if meals[i].Completed {
			completed++
			weekdayCompleted[meals[i].Date.Weekday()]++
		}
	}
	completionRate := round1(safemath.Percentage(float64(completed), float64(len(meals))))

	usage := collectUsage(meals)
	wasted := make([]domain.WastedRecipe, 0)
	for _, u := range usage {
		if u.count < 3 {
			continue
		}
		wasted = append(wasted, domain.WastedRecipe{
			RecipeID:       u.recipeID,
			Title:          u.title,
			TimesPlanned:   u.count,
			CompletionRate: round1(safemath.Percentage(float64(u.completed), float64(u.count))),
		})
	}
	sort.Slice(wasted, func(i, j int) bool {
		if wasted[i].CompletionRate != wasted[j].CompletionRate {
			return wasted[i].CompletionRate < wasted[j].CompletionRate
		}
		return wasted[i].Title < wasted[j].Title
	})
	if len(wasted) > mostWastedLimit {
		wasted = wasted[:mostWastedLimit]
	}

	var tips []string
	if len(meals) > 0 {
		if completionRate < 50 {
			tips = append(tips, "Fewer than half of your planned meals get made. Try building plans from a small set of template weeks you know work.")
		} else if completionRate < 70 {
			tips = append(tips, "Try planning fewer meals per week so each one has a realistic shot at being cooked.")
		}
		if completionRate > 90 {
			tips = append(tips, "You cook nearly everything you plan. Nice work sticking to the plan!")
		}
		worstDay, worstRate, hasWorst := worstWeekday(weekdayTotals, weekdayCompleted)
		if hasWorst && worstRate < 60 {
			tips = append(tips, fmt.Sprintf("%ss are your hardest day (%.0f%% completion). Consider scheduling simpler meals then.", worstDay, worstRate))
		}
	}

	return domain.WasteReduction{
		CompletionRate: completionRate,
		MostWasted:     wasted,
		Tips:           tips,
	}
}

// worstWeekday finds the weekday with the lowest completion rate among
// weekdays that have at least one planned meal.
func worstWeekday(totals, completed map[time.Weekday]int) (time.Weekday, float64, bool) {
	found := false
	var worst time.Weekday
	worstRate := 101.0
	for _, day := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		total := totals[day]
		if total == 0 {
			continue
		}
		rate := safemath.Percentage(float64(completed[day]), float64(total))
		if rate < worstRate {
			worstRate = rate
			worst = day
			found = true
		}
	}
	return worst, worstRate, found
}

// scaledCalories returns a meal's calories scaled by servings over the
// recipe yield. false when the recipe or its calories are unknown.
func scaledCalories(m *domain.PlannedMeal) (float64, bool) {
	if m.Recipe == nil || m.Recipe.Calories == nil {
		return 0, false
	}
	return *m.Recipe.Calories * float64(m.Servings) / m.Recipe.EffectiveServings(), true
}

// topKeysByCount returns up to n keys ordered by descending count, ties
// broken alphabetically for determinism.
func topKeysByCount(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
