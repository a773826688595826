// Package mocks provides testify mocks of the service interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/pageza/mise/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, id, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, filter service.RecipeFilter) ([]*model.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// MockScalingService is a mock implementation of the scaling service
type MockScalingService struct {
	mock.Mock
}

func (m *MockScalingService) ScaleRecipe(ctx context.Context, id uuid.UUID, targetServings int) (*service.ScaledRecipe, error) {
	args := m.Called(ctx, id, targetServings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScaledRecipe), args.Error(1)
}

func (m *MockScalingService) ScalingStats(ctx context.Context, recipeID uuid.UUID) (*service.ScalingStats, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScalingStats), args.Error(1)
}

// MockMealPlanService is a mock implementation of the meal plan service
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) CreateMealPlan(ctx context.Context, plan *model.MealPlan) (*model.MealPlan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) GetMealPlan(ctx context.Context, id uuid.UUID) (*model.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) ListMealPlans(ctx context.Context) ([]*model.MealPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) DeleteMealPlan(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMealPlanService) AddEntry(ctx context.Context, planID uuid.UUID, entry *model.MealPlanEntry) (*model.MealPlanEntry, error) {
	args := m.Called(ctx, planID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlanEntry), args.Error(1)
}

func (m *MockMealPlanService) RemoveEntry(ctx context.Context, planID, entryID uuid.UUID) error {
	args := m.Called(ctx, planID, entryID)
	return args.Error(0)
}

func (m *MockMealPlanService) IngredientSummary(ctx context.Context, planID uuid.UUID, from, to *time.Time) ([]ingredient.AggregatedItem, error) {
	args := m.Called(ctx, planID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ingredient.AggregatedItem), args.Error(1)
}

// MockShoppingListService is a mock implementation of the shopping list service
type MockShoppingListService struct {
	mock.Mock
}

func (m *MockShoppingListService) GenerateFromRecipes(ctx context.Context, req service.GenerateShoppingListRequest) (*model.ShoppingList, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) GenerateFromMealPlan(ctx context.Context, planID uuid.UUID, req service.MealPlanShoppingListRequest) (*model.ShoppingList, error) {
	args := m.Called(ctx, planID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) GetShoppingList(ctx context.Context, id uuid.UUID) (*model.ShoppingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) ListShoppingLists(ctx context.Context) ([]*model.ShoppingList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) SetItemChecked(ctx context.Context, listID, itemID uuid.UUID, checked bool) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, listID, itemID, checked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingListService) DeleteShoppingList(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExportService is a mock implementation of the export service
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, listID uuid.UUID) (*service.ExportResult, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

var (
	_ service.IRecipeService       = (*MockRecipeService)(nil)
	_ service.IScalingService      = (*MockScalingService)(nil)
	_ service.IMealPlanService     = (*MockMealPlanService)(nil)
	_ service.IShoppingListService = (*MockShoppingListService)(nil)
	_ service.IExportService       = (*MockExportService)(nil)
)
