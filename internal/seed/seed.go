package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkcast/forkcast/internal/domain"
)

const seededWeeks = 8

var sampleRecipes = []domain.Recipe{
	{
		Title:           "Sheet-Pan Lemon Chicken",
		Ingredients:     "chicken thighs, lemon, potatoes, olive oil, rosemary",
		Instructions:    "Toss everything on a sheet pan and roast at 425F for 35 minutes.",
		Tags:            []string{"sheet-pan", "weeknight", "one-pot"},
		PrepTimeMinutes: 15,
		Servings:        4,
		Course:          domain.CourseMain,
		Cuisine:         "American",
		Difficulty:      domain.DifficultyEasy,
		Calories:        ptrFloat(2200),
		ProteinG:        ptrFloat(160),
	},
	{
		Title:           "Smoky Lentil Soup",
		Ingredients:     "lentils, smoked paprika, carrots, onion, vegetable stock",
		Instructions:    "Sweat the aromatics, add lentils and stock, simmer 40 minutes.",
		Tags:            []string{"soup", "comfort", "batch-cook"},
		PrepTimeMinutes: 20,
		Servings:        6,
		Course:          domain.CourseMain,
		Cuisine:         "Mediterranean",
		Difficulty:      domain.DifficultyEasy,
		Calories:        ptrFloat(1800),
	},
	{
		Title:           "Chilled Soba Noodle Salad",
		Ingredients:     "soba noodles, cucumber, sesame oil, scallions, soy sauce",
		Instructions:    "Cook and rinse the soba, toss cold with the dressing.",
		Tags:            []string{"no-cook", "chilled", "salad", "quick"},
		PrepTimeMinutes: 20,
		Servings:        2,
		Course:          domain.CourseMain,
		Cuisine:         "Japanese",
		Difficulty:      domain.DifficultyEasy,
		Calories:        ptrFloat(900),
	},
	{
		Title:           "Backyard BBQ Burgers",
		Ingredients:     "ground beef, burger buns, cheddar, lettuce, tomato",
		Instructions:    "Grill the patties over high heat, 4 minutes per side.",
		Tags:            []string{"grill", "bbq", "crowd-pleaser", "summer"},
		PrepTimeMinutes: 25,
		Servings:        4,
		Course:          domain.CourseMain,
		Cuisine:         "American",
		Difficulty:      domain.DifficultyMedium,
		Calories:        ptrFloat(2600),
	},
	{
		Title:           "Butternut Squash Risotto",
		Ingredients:     "arborio rice, butternut squash, parmesan, white wine, stock",
		Instructions:    "Roast the squash, then stir into a slow-built risotto.",
		Tags:            []string{"hearty", "squash", "fall", "warm"},
		PrepTimeMinutes: 50,
		Servings:        4,
		Course:          domain.CourseMain,
		Cuisine:         "Italian",
		Difficulty:      domain.DifficultyHard,
		Calories:        ptrFloat(2000),
	},
	{
		Title:           "Overnight Oats with Berries",
		Ingredients:     "rolled oats, milk, chia seeds, mixed berries, honey",
		Instructions:    "Combine in a jar and refrigerate overnight.",
		Tags:            []string{"no-cook", "quick", "breakfast"},
		PrepTimeMinutes: 5,
		Servings:        1,
		Course:          domain.CourseBreakfast,
		Cuisine:         "American",
		Difficulty:      domain.DifficultyEasy,
		Calories:        ptrFloat(420),
	},
}

// Run seeds the database with sample users, recipes, and an active meal
// plan per user. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Recipe{},
		&domain.MealPlan{},
		&domain.PlannedMeal{},
		&domain.NutritionGoal{},
		&domain.ForecastDay{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "America/New_York", Latitude: 40.68, Longitude: -73.94, City: "Brooklyn"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/Chicago", Latitude: 41.88, Longitude: -87.63, City: "Chicago"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Europe/Amsterdam", Latitude: 52.37, Longitude: 4.90, City: "Amsterdam"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		recipeIDs, err := seedRecipesForUser(db, user)
		if err != nil {
			return err
		}
		if err := seedPlansForUser(db, user, recipeIDs, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedRecipesForUser(db *gorm.DB, user domain.User) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(sampleRecipes))
	for _, template := range sampleRecipes {
		recipe := template
		recipe.UserID = user.ID

		if err := db.Where("user_id = ? AND title = ?", user.ID, recipe.Title).FirstOrCreate(&recipe).Error; err != nil {
			return nil, fmt.Errorf("failed to create recipe %q: %w", recipe.Title, err)
		}
		ids = append(ids, recipe.ID)
	}
	return ids, nil
}

func seedPlansForUser(db *gorm.DB, user domain.User, recipeIDs []uuid.UUID, rng *rand.Rand) error {
	now := time.Now().UTC()

	for week := 0; week < seededWeeks; week++ {
		start := now.AddDate(0, 0, -7*(week+1))
		end := start.AddDate(0, 0, 6)
		active := week == 0

		plan := domain.MealPlan{
			UserID:    user.ID,
			Name:      fmt.Sprintf("Week of %s", start.Format("Jan 2")),
			StartDate: start,
			EndDate:   end,
			Active:    active,
		}
		if err := db.Where("user_id = ? AND start_date = ?", user.ID, plan.StartDate).FirstOrCreate(&plan).Error; err != nil {
			return fmt.Errorf("failed to create meal plan: %w", err)
		}

		var existing int64
		if err := db.Model(&domain.PlannedMeal{}).Where("meal_plan_id = ?", plan.ID).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to count planned meals: %w", err)
		}
		if existing > 0 {
			continue
		}

		for day := 0; day < 7; day++ {
			date := start.AddDate(0, 0, day)
			recipeID := recipeIDs[rng.Intn(len(recipeIDs))]
			meal := domain.PlannedMeal{
				MealPlanID: plan.ID,
				UserID:     user.ID,
				RecipeID:   &recipeID,
				Date:       date,
				MealType:   domain.MealTypeDinner,
				Servings:   2 + rng.Intn(3),
				Completed:  rng.Float32() < 0.7,
			}
			if err := db.Create(&meal).Error; err != nil {
				return fmt.Errorf("failed to create planned meal: %w", err)
			}
		}
	}

	goal := domain.NutritionGoal{
		UserID:        user.ID,
		DailyCalories: 2200,
		DailyProteinG: 120,
		DailyCarbsG:   250,
		DailyFatG:     70,
		Active:        true,
	}
	if err := db.Where("user_id = ? AND active = true", user.ID).FirstOrCreate(&goal).Error; err != nil {
		return fmt.Errorf("failed to create nutrition goal: %w", err)
	}

	return nil
}

func ptrFloat(v float64) *float64 {
	return &v
}
