package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/langfuse"
	"github.com/forkcast/forkcast/internal/llm"
	"github.com/forkcast/forkcast/internal/repository"
	"github.com/forkcast/forkcast/pkg/pagination"
)

// RecipeService handles recipe CRUD plus AI-assisted generation.
type RecipeService interface {
	CreateRecipe(ctx context.Context, userID string, req domain.CreateRecipeRequest) (*domain.Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, userID string, filter domain.RecipeFilter) (*domain.RecipeListResponse, error)
	UpdateRecipe(ctx context.Context, userID, recipeID string, req domain.UpdateRecipeRequest) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID string) error
	GenerateRecipe(ctx context.Context, userID string, req domain.GenerateRecipeRequest) (*domain.GeneratedRecipeResponse, error)
	RecordGenerationFeedback(ctx context.Context, traceID string, req domain.GenerationFeedbackRequest) error
}

type recipeService struct {
	users    repository.UserRepository
	recipes  repository.RecipeRepository
	llm      llm.CompletionClient
	langfuse langfuse.Client
	model    string
}

// NewRecipeService creates a new recipe service. completions may be nil
// when no LLM credential is configured; generation then returns
// ErrProviderUnavailable.
func NewRecipeService(
	users repository.UserRepository,
	recipes repository.RecipeRepository,
	completions llm.CompletionClient,
	lf langfuse.Client,
	model string,
) RecipeService {
	return &recipeService{
		users:    users,
		recipes:  recipes,
		llm:      completions,
		langfuse: lf,
		model:    model,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, userID string, req domain.CreateRecipeRequest) (*domain.Recipe, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		Tags:            req.Tags,
		PrepTimeMinutes: req.PrepTimeMinutes,
		Servings:        req.Servings,
		Course:          req.Course,
		Cuisine:         req.Cuisine,
		Difficulty:      req.Difficulty,
		Calories:        req.Calories,
		ProteinG:        req.ProteinG,
		CarbsG:          req.CarbsG,
		FatG:            req.FatG,
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	return s.ownedRecipe(ctx, userID, recipeID)
}

func (s *recipeService) ListRecipes(ctx context.Context, userID string, filter domain.RecipeFilter) (*domain.RecipeListResponse, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	filter.Limit = pagination.NormalizeLimit(filter.Limit)
	recipes, err := s.recipes.List(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	resp := &domain.RecipeListResponse{Data: recipes}
	if len(recipes) > filter.Limit {
		resp.Data = recipes[:filter.Limit]
		last := resp.Data[len(resp.Data)-1]
		cursor := pagination.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}
		resp.Pagination = domain.PaginationResponse{NextCursor: cursor.Encode(), HasMore: true}
	}
	return resp, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, req domain.UpdateRecipeRequest) (*domain.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.Tags != nil {
		recipe.Tags = req.Tags
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Course != nil {
		recipe.Course = *req.Course
	}
	if req.Cuisine != nil {
		recipe.Cuisine = *req.Cuisine
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.Calories != nil {
		recipe.Calories = req.Calories
	}
	if req.ProteinG != nil {
		recipe.ProteinG = req.ProteinG
	}
	if req.CarbsG != nil {
		recipe.CarbsG = req.CarbsG
	}
	if req.FatG != nil {
		recipe.FatG = req.FatG
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	recipe, err := s.ownedRecipe(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	return s.recipes.Delete(ctx, recipe.ID)
}

// GenerateRecipe asks the LLM for a recipe draft, optionally persists it,
// and records a Langfuse trace so the user can rate the result.
func (s *recipeService) GenerateRecipe(ctx context.Context, userID string, req domain.GenerateRecipeRequest) (*domain.GeneratedRecipeResponse, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if s.llm == nil {
		return nil, domain.ErrProviderUnavailable
	}

	draft, err := s.llm.GenerateRecipe(ctx, req.Prompt, llm.RecipeConstraints{
		MaxCalories: req.MaxCalories,
		Cuisine:     req.Cuisine,
	})
	if err != nil {
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			return nil, domain.ErrProviderUnavailable
		}
		return nil, fmt.Errorf("generate recipe: %w", err)
	}

	recipe := draftToRecipe(draft, user.ID)

	traceID, err := s.langfuse.TraceGeneration(ctx, langfuse.GenerationTrace{
		UserID: user.ID.String(),
		Prompt: req.Prompt,
		Output: draft,
		Model:  s.model,
	})
	if err != nil {
		log.Printf("[recipe] generation trace failed: %v", err)
	}

	resp := &domain.GeneratedRecipeResponse{Recipe: *recipe, TraceID: traceID}
	if req.Save {
		if err := s.recipes.Create(ctx, recipe); err != nil {
			return nil, fmt.Errorf("save generated recipe: %w", err)
		}
		resp.Recipe = *recipe
		resp.Saved = true
	}
	return resp, nil
}

// RecordGenerationFeedback forwards a user rating to Langfuse. With
// tracing disabled there is no trace to score, which is not an error.
func (s *recipeService) RecordGenerationFeedback(ctx context.Context, traceID string, req domain.GenerationFeedbackRequest) error {
	if traceID == "" {
		return fmt.Errorf("%w: missing trace id", domain.ErrInvalidInput)
	}
	if !s.langfuse.IsEnabled() {
		return nil
	}
	return s.langfuse.ScoreTrace(ctx, langfuse.Score{
		TraceID: traceID,
		Value:   req.Rating,
		Comment: req.Comment,
	})
}

// ownedRecipe loads a recipe and checks it belongs to the caller. A
// foreign recipe reads as not found rather than forbidden, to avoid
// leaking that the ID exists.
func (s *recipeService) ownedRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(recipeID, "recipe")
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != user.ID {
		return nil, domain.ErrNotFound
	}
	return recipe, nil
}

// draftToRecipe converts an LLM draft to a domain recipe, normalizing
// the enum fields to known values.
func draftToRecipe(draft *llm.GeneratedRecipe, userID uuid.UUID) *domain.Recipe {
	course := domain.Course(draft.Course)
	switch course {
	case domain.CourseBreakfast, domain.CourseMain, domain.CourseSide, domain.CourseDessert, domain.CourseSnack:
	default:
		course = domain.CourseMain
	}
	difficulty := domain.Difficulty(draft.Difficulty)
	switch difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		difficulty = domain.DifficultyMedium
	}

	return &domain.Recipe{
		UserID:          userID,
		Title:           draft.Title,
		Description:     draft.Description,
		Ingredients:     draft.Ingredients,
		Instructions:    draft.Instructions,
		Tags:            draft.Tags,
		PrepTimeMinutes: draft.PrepTimeMinutes,
		Servings:        draft.Servings,
		Course:          course,
		Cuisine:         draft.Cuisine,
		Difficulty:      difficulty,
		Calories:        draft.Calories,
		ProteinG:        draft.ProteinG,
		CarbsG:          draft.CarbsG,
		FatG:            draft.FatG,
	}
}
