package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/forkcast/forkcast/internal/calendar"
	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/repository"
)

// assistantApology is the canned reply when the LLM fallback fails. The
// assistant never surfaces a raw error to the user.
const assistantApology = "Sorry, I couldn't work that one out. Could you try asking another way?"

// AssistantService routes short spoken-style queries to local handlers,
// falling back to the completion client for anything unmatched.
type AssistantService interface {
	Answer(ctx context.Context, userID string, req domain.AssistantRequest) (*domain.AssistantResponse, error)
}

// completionFallback is the minimal LLM surface the assistant needs.
type completionFallback interface {
	Complete(ctx context.Context, query string) (string, error)
}

type assistantService struct {
	users       repository.UserRepository
	mealPlans   repository.MealPlanRepository
	suggestions SuggestionService
	weather     WeatherService
	llm         completionFallback
	now         func() time.Time
}

// NewAssistantService creates a new assistant service. llm may be nil;
// unmatched queries then get the canned apology. now may be nil to use
// time.Now.
func NewAssistantService(
	users repository.UserRepository,
	mealPlans repository.MealPlanRepository,
	suggestions SuggestionService,
	weather WeatherService,
	llm completionFallback,
	now func() time.Time,
) AssistantService {
	if now == nil {
		now = time.Now
	}
	return &assistantService{
		users:       users,
		mealPlans:   mealPlans,
		suggestions: suggestions,
		weather:     weather,
		llm:         llm,
		now:         now,
	}
}

// intentPatterns maps keyword groups to intents, checked in order. The
// first group with any keyword present in the query wins.
var intentPatterns = []struct {
	intent   domain.AssistantIntent
	keywords []string
}{
	{domain.IntentAddMeal, []string{"add ", "schedule ", "put down"}},
	{domain.IntentNextMeal, []string{"next meal", "when do i", "when's", "countdown", "what time"}},
	{domain.IntentTodayMeals, []string{"today", "tonight", "this morning", "on the menu"}},
	{domain.IntentVarietyScore, []string{"variety", "rut", "same thing", "repetitive"}},
	{domain.IntentSuggestMeal, []string{"suggest", "what should i", "recommend", "ideas", "idea for"}},
	{domain.IntentWeather, []string{"weather", "outside", "temperature", "raining", "forecast"}},
}

func matchIntent(query string) domain.AssistantIntent {
	q := strings.ToLower(query)
	for _, p := range intentPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(q, kw) {
				return p.intent
			}
		}
	}
	return domain.IntentFallback
}

// Answer routes a query through the local pattern table. Local handlers
// never fail the request; data problems degrade to an honest "I don't
// know" style reply.
func (s *assistantService) Answer(ctx context.Context, userID string, req domain.AssistantRequest) (*domain.AssistantResponse, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(user.Location())
	intent := matchIntent(req.Query)

	switch intent {
	case domain.IntentTodayMeals:
		return s.answerTodayMeals(ctx, user, now)
	case domain.IntentNextMeal:
		return s.answerNextMeal(ctx, user, now)
	case domain.IntentSuggestMeal:
		return s.answerSuggestion(ctx, user)
	case domain.IntentAddMeal:
		return s.answerAddMeal(ctx, user, now, req.Query)
	case domain.IntentWeather:
		return s.answerWeather(ctx, user)
	case domain.IntentVarietyScore:
		return s.answerVariety(ctx, user, now)
	default:
		return s.answerFallback(ctx, req.Query), nil
	}
}

func (s *assistantService) answerTodayMeals(ctx context.Context, user *domain.User, now time.Time) (*domain.AssistantResponse, error) {
	meals, err := s.todayMeals(ctx, user, now)
	if err != nil {
		log.Printf("[assistant] today lookup failed: %v", err)
		return reply(domain.IntentTodayMeals, "I couldn't check your plan just now. Try again in a moment."), nil
	}
	if len(meals) == 0 {
		return reply(domain.IntentTodayMeals, "Nothing is planned for today yet. Want a suggestion?"), nil
	}

	sort.SliceStable(meals, func(i, j int) bool {
		return mealTypeRank(meals[i].MealType) < mealTypeRank(meals[j].MealType)
	})
	parts := make([]string, 0, len(meals))
	for i := range meals {
		parts = append(parts, fmt.Sprintf("%s for %s", mealName(&meals[i]), strings.ToLower(string(meals[i].MealType))))
	}
	return reply(domain.IntentTodayMeals, "Today you have "+joinFactors(parts)+"."), nil
}

func (s *assistantService) answerNextMeal(ctx context.Context, user *domain.User, now time.Time) (*domain.AssistantResponse, error) {
	meals, err := s.todayMeals(ctx, user, now)
	if err != nil {
		log.Printf("[assistant] next-meal lookup failed: %v", err)
		return reply(domain.IntentNextMeal, "I couldn't check your plan just now. Try again in a moment."), nil
	}

	featured := calendar.FeaturedMeal(meals, now, calendar.TimeOfDayFor(now))
	if featured == nil {
		return reply(domain.IntentNextMeal, "Nothing is planned for today yet. Want a suggestion?"), nil
	}

	countdown := calendar.MealCountdown(*featured, now)
	name := mealName(featured)
	switch {
	case countdown.ShowCookingPrompt:
		return reply(domain.IntentNextMeal, fmt.Sprintf("%s is coming up in %d minutes. Time to start cooking!", name, countdown.MinutesUntil)), nil
	case countdown.MinutesUntil > 0:
		hours := countdown.MinutesUntil / 60
		mins := countdown.MinutesUntil % 60
		if hours > 0 {
			return reply(domain.IntentNextMeal, fmt.Sprintf("%s is in about %dh %dm.", name, hours, mins)), nil
		}
		return reply(domain.IntentNextMeal, fmt.Sprintf("%s is in %d minutes.", name, mins)), nil
	default:
		return reply(domain.IntentNextMeal, fmt.Sprintf("%s was scheduled earlier today.", name)), nil
	}
}

func (s *assistantService) answerSuggestion(ctx context.Context, user *domain.User) (*domain.AssistantResponse, error) {
	suggestions, err := s.suggestions.GetMealSuggestions(ctx, user.ID.String(), 1)
	if err != nil || len(suggestions.Recommendations) == 0 {
		if err != nil {
			log.Printf("[assistant] suggestion lookup failed: %v", err)
		}
		return reply(domain.IntentSuggestMeal, "I don't have a good pick right now. Add a few recipes and ask me again."), nil
	}
	top := suggestions.Recommendations[0]
	return reply(domain.IntentSuggestMeal, fmt.Sprintf("How about %s? %s", top.Title, top.Reason)), nil
}

func (s *assistantService) answerAddMeal(ctx context.Context, user *domain.User, now time.Time, query string) (*domain.AssistantResponse, error) {
	name, mealType, date := parseAddMeal(query, now)
	if name == "" {
		return reply(domain.IntentAddMeal, `What should I add? Try "add tacos for dinner tomorrow".`), nil
	}

	plan, err := s.mealPlans.GetActive(ctx, user.ID)
	if err != nil {
		log.Printf("[assistant] active plan lookup failed: %v", err)
		return reply(domain.IntentAddMeal, "You don't have an active meal plan yet. Create one and try again."), nil
	}

	meal := &domain.PlannedMeal{
		MealPlanID: plan.ID,
		UserID:     user.ID,
		CustomName: name,
		Date:       date,
		MealType:   mealType,
		Servings:   1,
	}
	if err := s.mealPlans.CreateMeal(ctx, meal); err != nil {
		log.Printf("[assistant] add meal failed: %v", err)
		return reply(domain.IntentAddMeal, "I couldn't save that meal just now. Try again in a moment."), nil
	}

	day := "today"
	if !calendar.SameDay(date, now) {
		day = "tomorrow"
	}
	return reply(domain.IntentAddMeal, fmt.Sprintf("Done! I added %s for %s %s.", name, strings.ToLower(string(mealType)), day)), nil
}

// parseAddMeal pulls a meal name, slot, and day out of an utterance like
// "add tacos for dinner tomorrow". Missing pieces default to dinner today.
func parseAddMeal(query string, now time.Time) (string, domain.MealType, time.Time) {
	q := strings.ToLower(strings.TrimSpace(query))

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if strings.Contains(q, "tomorrow") {
		date = date.AddDate(0, 0, 1)
	}

	mealType := domain.MealTypeDinner
	for _, mt := range domain.MealTypeOrder {
		if strings.Contains(q, strings.ToLower(string(mt))) {
			mealType = mt
			break
		}
	}

	for _, verb := range []string{"put down ", "schedule ", "add "} {
		if idx := strings.Index(q, verb); idx >= 0 {
			q = q[idx+len(verb):]
			break
		}
	}
	for _, stop := range []string{" for ", " to ", " as ", " on ", " tomorrow", " today", " tonight"} {
		if idx := strings.Index(q, stop); idx >= 0 {
			q = q[:idx]
		}
	}
	return strings.TrimSpace(q), mealType, date
}

func (s *assistantService) answerWeather(ctx context.Context, user *domain.User) (*domain.AssistantResponse, error) {
	wctx, err := s.weather.BuildContext(ctx, user)
	if err != nil {
		log.Printf("[assistant] weather lookup failed: %v", err)
		return reply(domain.IntentWeather, "I couldn't reach the weather service just now."), nil
	}
	tags := PickMealTags(wctx)
	styles := tags
	if len(styles) > 3 {
		styles = styles[:3]
	}
	return reply(domain.IntentWeather, fmt.Sprintf(
		"It's %.0f°F and %s out. Good night for something %s.",
		wctx.Weather.FeelsLikeF, strings.ToLower(wctx.Weather.Condition), joinFactors(styles))), nil
}

func (s *assistantService) answerVariety(ctx context.Context, user *domain.User, now time.Time) (*domain.AssistantResponse, error) {
	from := now.AddDate(0, 0, -recommendationWindowDays)
	meals, err := s.mealPlans.ListMealsByDateRange(ctx, user.ID, from, now)
	if err != nil {
		log.Printf("[assistant] variety lookup failed: %v", err)
		return reply(domain.IntentVarietyScore, "I couldn't check your history just now."), nil
	}
	score := varietyScore(meals)
	switch {
	case len(meals) == 0:
		return reply(domain.IntentVarietyScore, "No meals planned recently, so there's nothing to score yet."), nil
	case score >= 80:
		return reply(domain.IntentVarietyScore, fmt.Sprintf("Your variety score is %d out of 100. Nice range of recipes lately!", score)), nil
	case score >= 50:
		return reply(domain.IntentVarietyScore, fmt.Sprintf("Your variety score is %d out of 100. A couple of new recipes would freshen things up.", score)), nil
	default:
		return reply(domain.IntentVarietyScore, fmt.Sprintf("Your variety score is %d out of 100. You've been leaning on the same few recipes.", score)), nil
	}
}

// answerFallback hands the query to the completion client with a
// timeout, degrading to the canned apology on any failure.
func (s *assistantService) answerFallback(ctx context.Context, query string) *domain.AssistantResponse {
	if s.llm == nil {
		return reply(domain.IntentFallback, assistantApology)
	}

	llmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	answer, err := s.llm.Complete(llmCtx, query)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("[assistant] completion fallback failed: %v", err)
		}
		return reply(domain.IntentFallback, assistantApology)
	}
	resp := reply(domain.IntentFallback, answer)
	resp.FromLLM = true
	return resp
}

func (s *assistantService) todayMeals(ctx context.Context, user *domain.User, now time.Time) ([]domain.PlannedMeal, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	meals, err := s.mealPlans.ListMealsByDateRange(ctx, user.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return calendar.MealsOn(meals, now), nil
}

func reply(intent domain.AssistantIntent, text string) *domain.AssistantResponse {
	return &domain.AssistantResponse{Reply: text, Intent: intent}
}

func mealName(m *domain.PlannedMeal) string {
	if m.Recipe != nil && m.Recipe.Title != "" {
		return m.Recipe.Title
	}
	if m.CustomName != "" {
		return m.CustomName
	}
	return "your meal"
}

func mealTypeRank(mt domain.MealType) int {
	for i, t := range domain.MealTypeOrder {
		if t == mt {
			return i
		}
	}
	return len(domain.MealTypeOrder)
}
