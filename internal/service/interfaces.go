package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/model"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error)
}

// IScalingService scales recipes to a serving count.
type IScalingService interface {
	ScaleRecipe(ctx context.Context, id uuid.UUID, targetServings int) (*ScaledRecipe, error)
	ScalingStats(ctx context.Context, recipeID uuid.UUID) (*ScalingStats, error)
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	CreateMealPlan(ctx context.Context, plan *model.MealPlan) (*model.MealPlan, error)
	GetMealPlan(ctx context.Context, id uuid.UUID) (*model.MealPlan, error)
	ListMealPlans(ctx context.Context) ([]*model.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id uuid.UUID) error
	AddEntry(ctx context.Context, planID uuid.UUID, entry *model.MealPlanEntry) (*model.MealPlanEntry, error)
	RemoveEntry(ctx context.Context, planID, entryID uuid.UUID) error
	IngredientSummary(ctx context.Context, planID uuid.UUID, from, to *time.Time) ([]ingredient.AggregatedItem, error)
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	GenerateFromRecipes(ctx context.Context, req GenerateShoppingListRequest) (*model.ShoppingList, error)
	GenerateFromMealPlan(ctx context.Context, planID uuid.UUID, req MealPlanShoppingListRequest) (*model.ShoppingList, error)
	GetShoppingList(ctx context.Context, id uuid.UUID) (*model.ShoppingList, error)
	ListShoppingLists(ctx context.Context) ([]*model.ShoppingList, error)
	SetItemChecked(ctx context.Context, listID, itemID uuid.UUID, checked bool) (*model.ShoppingListItem, error)
	DeleteShoppingList(ctx context.Context, id uuid.UUID) error
}

// IExportService publishes shopping lists as downloadable text files.
type IExportService interface {
	Export(ctx context.Context, listID uuid.UUID) (*ExportResult, error)
}

// ShoppingListCache is the read-through cache used by ShoppingListService.
type ShoppingListCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.ShoppingList, bool)
	Set(ctx context.Context, list *model.ShoppingList) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// ObjectStore uploads objects and hands out time-limited download links.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
