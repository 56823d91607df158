package domain

import (
	"time"

	"github.com/google/uuid"
)

// MealType identifies the slot a planned meal fills.
// @Description Meal slot: BREAKFAST, LUNCH, DINNER, or SNACK.
type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
	MealTypeSnack     MealType = "SNACK"
)

// MealTypeOrder is the fixed presentation order for meal-type breakdowns.
var MealTypeOrder = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

type MealPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_meal_plans_user" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Active    bool      `gorm:"not null;default:false" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User  User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Meals []PlannedMeal `gorm:"foreignKey:MealPlanID" json:"meals,omitempty"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

type PlannedMeal struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MealPlanID uuid.UUID  `gorm:"type:uuid;not null;index:idx_planned_meals_plan_date" json:"meal_plan_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_planned_meals_user_date" json:"user_id"`
	RecipeID   *uuid.UUID `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	CustomName string     `gorm:"type:varchar(255)" json:"custom_name,omitempty"`
	Date       time.Time  `gorm:"type:date;not null;index:idx_planned_meals_plan_date;index:idx_planned_meals_user_date,sort:desc" json:"date"`
	MealType   MealType   `gorm:"type:varchar(16);not null" json:"meal_type"`
	Servings   int        `gorm:"not null;default:1" json:"servings"`
	Completed  bool       `gorm:"not null;default:false" json:"completed"`

	// Weather snapshot captured at planning time, for later analysis.
	WeatherCondition string   `gorm:"type:varchar(64)" json:"weather_condition,omitempty"`
	WeatherFeelsLike *float64 `json:"weather_feels_like,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	MealPlan MealPlan `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe   *Recipe  `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
}

func (PlannedMeal) TableName() string {
	return "planned_meals"
}

// HasRecipe reports whether this meal references a stored recipe rather
// than a free-text custom meal.
func (m *PlannedMeal) HasRecipe() bool {
	return m.RecipeID != nil && *m.RecipeID != uuid.Nil
}

// CreateMealPlanRequest is the request body for creating a meal plan.
// Creating a plan activates it and deactivates any previously active plan.
type CreateMealPlanRequest struct {
	Name      string    `json:"name" validate:"required,max=255"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

// CreatePlannedMealRequest is the request body for adding a meal to a plan.
// Either recipe_id or custom_name must be provided.
type CreatePlannedMealRequest struct {
	RecipeID   *uuid.UUID `json:"recipe_id,omitempty"`
	CustomName string     `json:"custom_name,omitempty" validate:"omitempty,max=255"`
	Date       time.Time  `json:"date" validate:"required"`
	MealType   MealType   `json:"meal_type" validate:"required,oneof=BREAKFAST LUNCH DINNER SNACK"`
	Servings   int        `json:"servings" validate:"min=1,max=50"`
}

// UpdatePlannedMealRequest is the request body for updating a planned meal.
// Nil fields are left unchanged.
type UpdatePlannedMealRequest struct {
	RecipeID   *uuid.UUID `json:"recipe_id,omitempty"`
	CustomName *string    `json:"custom_name,omitempty" validate:"omitempty,max=255"`
	Date       *time.Time `json:"date,omitempty"`
	MealType   *MealType  `json:"meal_type,omitempty" validate:"omitempty,oneof=BREAKFAST LUNCH DINNER SNACK"`
	Servings   *int       `json:"servings,omitempty" validate:"omitempty,min=1,max=50"`
	Completed  *bool      `json:"completed,omitempty"`
}

type NutritionGoal struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	DailyCalories   float64   `gorm:"not null" json:"daily_calories"`
	DailyProteinG   float64   `gorm:"not null" json:"daily_protein_g"`
	DailyCarbsG     float64   `gorm:"not null" json:"daily_carbs_g"`
	DailyFatG       float64   `gorm:"not null" json:"daily_fat_g"`
	Active          bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NutritionGoal) TableName() string {
	return "nutrition_goals"
}

// SetNutritionGoalRequest is the request body for setting the active goal.
type SetNutritionGoalRequest struct {
	DailyCalories float64 `json:"daily_calories" validate:"required,min=1"`
	DailyProteinG float64 `json:"daily_protein_g" validate:"min=0"`
	DailyCarbsG   float64 `json:"daily_carbs_g" validate:"min=0"`
	DailyFatG     float64 `json:"daily_fat_g" validate:"min=0"`
}
