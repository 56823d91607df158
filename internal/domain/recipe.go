package domain

import (
	"time"

	"github.com/google/uuid"
)

// Course classifies where a recipe fits in a meal.
// @Description Recipe course classification.
type Course string

const (
	CourseBreakfast Course = "BREAKFAST"
	CourseMain      Course = "MAIN"
	CourseSide      Course = "SIDE"
	CourseDessert   Course = "DESSERT"
	CourseSnack     Course = "SNACK"
)

// Difficulty is a coarse effort rating.
// @Description Recipe difficulty rating.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Nutrition holds per-recipe macros for the stated yield. All fields are
// optional; a nil pointer means "unknown", which is distinct from zero.
type Nutrition struct {
	Calories *float64 `json:"calories,omitempty"`
	ProteinG *float64 `json:"protein_g,omitempty"`
	CarbsG   *float64 `json:"carbs_g,omitempty"`
	FatG     *float64 `json:"fat_g,omitempty"`
}

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_recipes_user_created" json:"user_id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Ingredients     string     `gorm:"type:text;not null" json:"ingredients"`
	Instructions    string     `gorm:"type:text;not null" json:"instructions"`
	Tags            []string   `gorm:"type:text;serializer:json" json:"tags"`
	PrepTimeMinutes int        `gorm:"not null;default:0" json:"prep_time_minutes"`
	Servings        int        `gorm:"not null;default:0" json:"servings"`
	Course          Course     `gorm:"type:varchar(16);not null" json:"course"`
	Cuisine         string     `gorm:"type:varchar(64);not null" json:"cuisine"`
	Difficulty      Difficulty `gorm:"type:varchar(16);not null" json:"difficulty"`
	Calories        *float64   `json:"calories,omitempty"`
	ProteinG        *float64   `json:"protein_g,omitempty"`
	CarbsG          *float64   `json:"carbs_g,omitempty"`
	FatG            *float64   `json:"fat_g,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index:idx_recipes_user_created,sort:desc" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Nutrition returns the recipe's macros as one optional group.
func (r *Recipe) Nutrition() Nutrition {
	return Nutrition{
		Calories: r.Calories,
		ProteinG: r.ProteinG,
		CarbsG:   r.CarbsG,
		FatG:     r.FatG,
	}
}

// EffectiveServings returns the recipe yield used for macro scaling.
// Recipes with an unspecified yield are assumed to serve 4.
func (r *Recipe) EffectiveServings() float64 {
	if r.Servings > 0 {
		return float64(r.Servings)
	}
	return 4
}

// CreateRecipeRequest is the request body for creating a recipe.
// @Description Request payload for creating a recipe.
type CreateRecipeRequest struct {
	Title           string     `json:"title" validate:"required,max=255"`
	Description     string     `json:"description" validate:"max=2000"`
	Ingredients     string     `json:"ingredients" validate:"required"`
	Instructions    string     `json:"instructions" validate:"required"`
	Tags            []string   `json:"tags" validate:"omitempty,dive,max=64"`
	PrepTimeMinutes int        `json:"prep_time_minutes" validate:"min=0,max=1440"`
	Servings        int        `json:"servings" validate:"min=0,max=100"`
	Course          Course     `json:"course" validate:"required,oneof=BREAKFAST MAIN SIDE DESSERT SNACK"`
	Cuisine         string     `json:"cuisine" validate:"required,max=64"`
	Difficulty      Difficulty `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Calories        *float64   `json:"calories,omitempty" validate:"omitempty,min=0"`
	ProteinG        *float64   `json:"protein_g,omitempty" validate:"omitempty,min=0"`
	CarbsG          *float64   `json:"carbs_g,omitempty" validate:"omitempty,min=0"`
	FatG            *float64   `json:"fat_g,omitempty" validate:"omitempty,min=0"`
}

// UpdateRecipeRequest is the request body for updating a recipe.
// Nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Title           *string     `json:"title,omitempty" validate:"omitempty,max=255"`
	Description     *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients     *string     `json:"ingredients,omitempty"`
	Instructions    *string     `json:"instructions,omitempty"`
	Tags            []string    `json:"tags,omitempty" validate:"omitempty,dive,max=64"`
	PrepTimeMinutes *int        `json:"prep_time_minutes,omitempty" validate:"omitempty,min=0,max=1440"`
	Servings        *int        `json:"servings,omitempty" validate:"omitempty,min=0,max=100"`
	Course          *Course     `json:"course,omitempty" validate:"omitempty,oneof=BREAKFAST MAIN SIDE DESSERT SNACK"`
	Cuisine         *string     `json:"cuisine,omitempty" validate:"omitempty,max=64"`
	Difficulty      *Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Calories        *float64    `json:"calories,omitempty" validate:"omitempty,min=0"`
	ProteinG        *float64    `json:"protein_g,omitempty" validate:"omitempty,min=0"`
	CarbsG          *float64    `json:"carbs_g,omitempty" validate:"omitempty,min=0"`
	FatG            *float64    `json:"fat_g,omitempty" validate:"omitempty,min=0"`
}

// RecipeListResponse is the response body for listing recipes.
// @Description Paginated list of recipes.
type RecipeListResponse struct {
	Data       []Recipe           `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains cursor pagination metadata.
type PaginationResponse struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// RecipeFilter contains filter parameters for listing recipes.
type RecipeFilter struct {
	Cuisine string
	Course  Course
	Tag     string
	Limit   int
	Cursor  string
}

// GenerateRecipeRequest is the request body for the AI recipe creator.
// @Description Natural-language prompt for generating a recipe draft.
type GenerateRecipeRequest struct {
	Prompt      string `json:"prompt" validate:"required,max=1000"`
	MaxCalories *int   `json:"max_calories,omitempty" validate:"omitempty,min=1"`
	Cuisine     string `json:"cuisine,omitempty" validate:"omitempty,max=64"`
	Save        bool   `json:"save"`
}

// GeneratedRecipeResponse wraps an AI-generated recipe draft.
// @Description Generated recipe draft plus the trace ID for feedback.
type GeneratedRecipeResponse struct {
	Recipe  Recipe `json:"recipe"`
	Saved   bool   `json:"saved"`
	TraceID string `json:"trace_id,omitempty"`
}

// GenerationFeedbackRequest carries a user rating of a generated recipe.
type GenerationFeedbackRequest struct {
	Rating  float64 `json:"rating" validate:"min=0,max=1"`
	Comment string  `json:"comment,omitempty" validate:"omitempty,max=500"`
}
