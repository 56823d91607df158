// Package calendar provides pure date-bucketing helpers over planned
// meals: week boundaries, day windows around "today", featured-meal
// selection, and meal countdowns. All functions are deterministic given
// their inputs; callers pass "now" explicitly.
package calendar

import (
	"time"

	"github.com/forkcast/forkcast/internal/domain"
)

const (
	// DayWindow is how many days each side of today the planner surfaces.
	DayWindow = 3

	// CookingPromptWindowMinutes is the countdown threshold below which
	// the UI shows a "start cooking" prompt.
	CookingPromptWindowMinutes = 120
)

// Default serving times per meal slot, minutes after midnight.
var mealSlotMinutes = map[domain.MealType]int{
	domain.MealTypeBreakfast: 8 * 60,
	domain.MealTypeLunch:     12 * 60,
	domain.MealTypeDinner:    18 * 60,
	domain.MealTypeSnack:     15 * 60,
}

// WeekStart returns midnight of the Sunday beginning t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MealsOn filters meals to those scheduled on the same calendar day as date.
func MealsOn(meals []domain.PlannedMeal, date time.Time) []domain.PlannedMeal {
	var result []domain.PlannedMeal
	for _, m := range meals {
		if SameDay(m.Date, date) {
			result = append(result, m)
		}
	}
	return result
}

// PastDays returns up to DayWindow days before today, clipped to the
// current week, oldest first. Today itself is excluded.
func PastDays(now time.Time) []time.Time {
	weekStart := WeekStart(now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var days []time.Time
	for i := DayWindow; i >= 1; i-- {
		day := today.AddDate(0, 0, -i)
		if day.Before(weekStart) {
			continue
		}
		days = append(days, day)
	}
	return days
}

// FutureDays returns up to DayWindow days after today, clipped to the
// current week, soonest first. Today itself is excluded.
func FutureDays(now time.Time) []time.Time {
	weekEnd := WeekStart(now).AddDate(0, 0, 7)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var days []time.Time
	for i := 1; i <= DayWindow; i++ {
		day := today.AddDate(0, 0, i)
		if !day.Before(weekEnd) {
			continue
		}
		days = append(days, day)
	}
	return days
}

// featuredPriority maps a time of day to the meal-type preference order.
var featuredPriority = map[domain.TimeOfDay][]domain.MealType{
	domain.TimeOfDayMorning:   {domain.MealTypeBreakfast, domain.MealTypeLunch, domain.MealTypeDinner, domain.MealTypeSnack},
	domain.TimeOfDayAfternoon: {domain.MealTypeLunch, domain.MealTypeDinner, domain.MealTypeSnack, domain.MealTypeBreakfast},
	domain.TimeOfDayEvening:   {domain.MealTypeDinner, domain.MealTypeSnack, domain.MealTypeLunch, domain.MealTypeBreakfast},
	domain.TimeOfDayNight:     {domain.MealTypeDinner, domain.MealTypeSnack, domain.MealTypeLunch, domain.MealTypeBreakfast},
}

// FeaturedMeal picks the meal to spotlight for "now": today's meal whose
// slot best matches the time of day, falling back through the priority
// chain, then to any meal of the day. Returns nil when today is empty.
func FeaturedMeal(meals []domain.PlannedMeal, now time.Time, timeOfDay domain.TimeOfDay) *domain.PlannedMeal {
	today := MealsOn(meals, now)
	if len(today) == 0 {
		return nil
	}

	priority, ok := featuredPriority[timeOfDay]
	if !ok {
		priority = featuredPriority[domain.TimeOfDayAfternoon]
	}

	for _, mt := range priority {
		for i := range today {
			if today[i].MealType == mt {
				return &today[i]
			}
		}
	}
	return &today[0]
}

// Countdown describes how far away a planned meal's serving time is.
type Countdown struct {
	MinutesUntil int `json:"minutes_until"`
	// ShowCookingPrompt is true when the meal is coming up within the
	// prompt window (strictly future, at most 120 minutes away).
	ShowCookingPrompt bool `json:"show_cooking_prompt"`
}

// MealCountdown computes minutes until a meal's default serving time on
// its scheduled day. Past serving times yield a negative count and no prompt.
func MealCountdown(meal domain.PlannedMeal, now time.Time) Countdown {
	slot, ok := mealSlotMinutes[meal.MealType]
	if !ok {
		slot = mealSlotMinutes[domain.MealTypeDinner]
	}

	day := time.Date(meal.Date.Year(), meal.Date.Month(), meal.Date.Day(), 0, 0, 0, 0, now.Location())
	servedAt := day.Add(time.Duration(slot) * time.Minute)
	minutes := int(servedAt.Sub(now).Minutes())

	return Countdown{
		MinutesUntil:      minutes,
		ShowCookingPrompt: minutes > 0 && minutes <= CookingPromptWindowMinutes,
	}
}

// TimeOfDayFor buckets a local clock hour into a coarse period.
func TimeOfDayFor(t time.Time) domain.TimeOfDay {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return domain.TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return domain.TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return domain.TimeOfDayEvening
	default:
		return domain.TimeOfDayNight
	}
}

// IsWeeknight reports whether t falls Monday through Thursday.
func IsWeeknight(t time.Time) bool {
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Thursday
}
