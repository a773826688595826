package api

import (
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/model"
)

const dateLayout = "2006-01-02"

type ParseIngredientsRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

type ParsedIngredientResponse struct {
	ingredient.ParsedIngredient
	Category ingredient.Category `json:"category"`
}

type AggregateRequest struct {
	Entries        []ingredient.Entry `json:"entries" binding:"required"`
	Sort           bool               `json:"sort"`
	NormalizeUnits bool               `json:"normalize_units"`
}

type AggregatedItemResponse struct {
	ingredient.AggregatedItem
	Line string `json:"line"`
}

func aggregatedItemResponses(items []ingredient.AggregatedItem) []AggregatedItemResponse {
	out := make([]AggregatedItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, AggregatedItemResponse{AggregatedItem: item, Line: item.Line()})
	}
	return out
}

// CreateMealPlanRequest takes dates as yyyy-mm-dd.
type CreateMealPlanRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type AddMealPlanEntryRequest struct {
	RecipeID string         `json:"recipe_id" binding:"required"`
	Date     string         `json:"date" binding:"required"`
	MealType model.MealType `json:"meal_type" binding:"required"`
	Servings int            `json:"servings"`
}

type MealPlanShoppingListRequest struct {
	Name           string `json:"name"`
	From           string `json:"from"`
	To             string `json:"to"`
	NormalizeUnits *bool  `json:"normalize_units"`
}

type SetItemCheckedRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}
