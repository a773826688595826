package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPlanWithMeals(t *testing.T, s *services) (*model.MealPlan, *model.Recipe) {
	t.Helper()
	ctx := context.Background()

	chili := createRecipe(t, s.recipes, "Chili", 4, "2 cups rice", "1 onion", "salt to taste")
	plan, err := s.mealPlans.CreateMealPlan(ctx, &model.MealPlan{
		Name:      "Week 42",
		StartDate: day(12).Add(9 * time.Hour),
		EndDate:   day(18),
	})
	require.NoError(t, err)
	assert.Equal(t, day(12), plan.StartDate)

	_, err = s.mealPlans.AddEntry(ctx, plan.ID, &model.MealPlanEntry{
		RecipeID: chili.ID, Date: day(14), MealType: model.Lunch, Servings: 2,
	})
	require.NoError(t, err)
	entry, err := s.mealPlans.AddEntry(ctx, plan.ID, &model.MealPlanEntry{
		RecipeID: chili.ID, Date: day(12), MealType: model.Dinner, Servings: 8,
	})
	require.NoError(t, err)
	require.NotNil(t, entry.Recipe)
	assert.Equal(t, "Chili", entry.Recipe.Name)

	return plan, chili
}

func TestMealPlanLifecycle(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	plan, chili := createPlanWithMeals(t, s)

	got, err := s.mealPlans.GetMealPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, model.Dinner, got.Entries[0].MealType)
	assert.Equal(t, model.Lunch, got.Entries[1].MealType)
	require.NotNil(t, got.Entries[0].Recipe)
	assert.Equal(t, chili.ID, got.Entries[0].Recipe.ID)

	plans, err := s.mealPlans.ListMealPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	require.NoError(t, s.mealPlans.RemoveEntry(ctx, plan.ID, got.Entries[1].ID))
	assert.True(t, apperrors.IsNotFound(s.mealPlans.RemoveEntry(ctx, plan.ID, got.Entries[1].ID)))

	require.NoError(t, s.mealPlans.DeleteMealPlan(ctx, plan.ID))
	_, err = s.mealPlans.GetMealPlan(ctx, plan.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(s.mealPlans.DeleteMealPlan(ctx, plan.ID)))
}

func TestMealPlanValidation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.mealPlans.CreateMealPlan(ctx, &model.MealPlan{Name: "Backwards", StartDate: day(18), EndDate: day(12)})
	assert.Error(t, err)
	_, err = s.mealPlans.CreateMealPlan(ctx, &model.MealPlan{Name: "No dates"})
	assert.Error(t, err)

	plan, err := s.mealPlans.CreateMealPlan(ctx, &model.MealPlan{Name: "Short", StartDate: day(12), EndDate: day(13)})
	require.NoError(t, err)
	recipe := createRecipe(t, s.recipes, "Toast", 1, "1 slice bread")

	_, err = s.mealPlans.AddEntry(ctx, plan.ID, &model.MealPlanEntry{RecipeID: recipe.ID, Date: day(20), MealType: model.Breakfast})
	assert.ErrorContains(t, err, "outside the meal plan")

	_, err = s.mealPlans.AddEntry(ctx, plan.ID, &model.MealPlanEntry{RecipeID: recipe.ID, Date: day(12), MealType: "brunch"})
	assert.ErrorContains(t, err, "meal_type")

	_, err = s.mealPlans.AddEntry(ctx, plan.ID, &model.MealPlanEntry{RecipeID: uuid.New(), Date: day(12), MealType: model.Breakfast})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = s.mealPlans.AddEntry(ctx, uuid.New(), &model.MealPlanEntry{RecipeID: recipe.ID, Date: day(12), MealType: model.Breakfast})
	assert.True(t, apperrors.IsNotFound(err))

	entry, err := s.mealPlans.AddEntry(ctx, plan.ID, &model.MealPlanEntry{RecipeID: recipe.ID, Date: day(13), MealType: model.Breakfast})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Servings)
}

func TestIngredientSummary(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	plan, _ := createPlanWithMeals(t, s)

	items, err := s.mealPlans.IngredientSummary(ctx, plan.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "onion", items[0].Name)
	assert.Equal(t, ingredient.Produce, items[0].Category)
	assert.InDelta(t, 2.5, items[0].TotalQuantity, 1e-9)
	assert.Equal(t, "2 1/2 onion", items[0].Line())

	assert.Equal(t, "rice", items[1].Name)
	assert.Equal(t, "cups", items[1].Unit)
	assert.InDelta(t, 5.0, items[1].TotalQuantity, 1e-9)
	assert.Equal(t, []string{"2026-10-12 dinner: Chili", "2026-10-14 lunch: Chili"}, items[1].SourceLabels)

	assert.Equal(t, "salt to taste", items[2].Name)
	assert.False(t, items[2].Quantified)

	from, to := day(13), day(18)
	items, err = s.mealPlans.IngredientSummary(ctx, plan.ID, &from, &to)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.InDelta(t, 1.0, items[1].TotalQuantity, 1e-9)
	assert.Equal(t, []string{"2026-10-14 lunch: Chili"}, items[1].SourceLabels)

	_, err = s.mealPlans.IngredientSummary(ctx, plan.ID, &to, &from)
	assert.Error(t, err)
}

func TestIngredientSummarySkipsDeletedRecipes(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	plan, chili := createPlanWithMeals(t, s)

	require.NoError(t, s.recipes.DeleteRecipe(ctx, chili.ID))
	items, err := s.mealPlans.IngredientSummary(ctx, plan.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestIngredientSummaryClampsFactor(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	bread := createRecipe(t, s.recipes, "Bread", 1, "1 cup flour")

	plan, err := s.mealPlans.CreateMealPlan(ctx, &model.MealPlan{Name: "Party", StartDate: day(12), EndDate: day(12)})
	require.NoError(t, err)
	_, err = s.mealPlans.AddEntry(ctx, plan.ID, &model.MealPlanEntry{
		RecipeID: bread.ID, Date: day(12), MealType: model.Dinner, Servings: 1000,
	})
	require.NoError(t, err)

	items, err := s.mealPlans.IngredientSummary(ctx, plan.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 10.0, items[0].TotalQuantity, 1e-9)
	assert.Equal(t, "10 cup flour", items[0].Line())
}
