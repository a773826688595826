package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipeFilter narrows ListRecipes. Empty fields match everything.
type RecipeFilter struct {
	Category string
	Query    string
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{db: db, logger: logger}
}

func validateRecipe(recipe *model.Recipe) error {
	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" {
		return apperrors.Validation("recipe name is required")
	}
	if recipe.Servings < 0 {
		return apperrors.Validation("servings must be positive")
	}
	if recipe.PrepMinutes < 0 || recipe.CookMinutes < 0 {
		return apperrors.Validation("prep and cook minutes cannot be negative")
	}
	return nil
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, apperrors.Internal("failed to create recipe", err)
	}
	s.logger.Info("recipe created", zap.String("id", recipe.ID.String()), zap.String("name", recipe.Name))
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, apperrors.From(err, "recipe")
	}
	return &recipe, nil
}

// UpdateRecipe replaces the editable fields of a recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}
	existing, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = recipe.Name
	existing.Description = recipe.Description
	existing.Category = recipe.Category
	existing.ImageURL = recipe.ImageURL
	if recipe.Servings > 0 {
		existing.Servings = recipe.Servings
	}
	existing.PrepMinutes = recipe.PrepMinutes
	existing.CookMinutes = recipe.CookMinutes
	existing.Ingredients = recipe.Ingredients
	existing.Instructions = recipe.Instructions

	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, apperrors.Internal("failed to update recipe", err)
	}
	return existing, nil
}

// DeleteRecipe soft-deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal("failed to delete recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("recipe")
	}
	return nil
}

// ListRecipes lists recipes ordered by name. Query matches the name,
// description or ingredient text case-insensitively.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})
	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		ingredientsCol := "ingredients"
		if s.db.Dialector.Name() == "postgres" {
			ingredientsCol = "ingredients::text"
		}
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER("+ingredientsCol+") LIKE ?",
			like, like, like)
	}

	var recipes []*model.Recipe
	if err := query.Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, apperrors.Internal("failed to list recipes", err)
	}
	return recipes, nil
}
