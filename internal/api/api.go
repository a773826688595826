package api

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every handler mounted under /api/v1.
type Handlers struct {
	Health        *HealthHandler
	Ingredients   *IngredientHandler
	Recipes       *RecipeHandler
	MealPlans     *MealPlanHandler
	ShoppingLists *ShoppingListHandler
}

// SetupAPI registers the versioned routes on v1.
func SetupAPI(v1 *gin.RouterGroup, h Handlers) {
	v1.GET("/health", h.Health.HealthCheck)
	h.Ingredients.RegisterRoutes(v1)
	h.Recipes.RegisterRoutes(v1)
	h.MealPlans.RegisterRoutes(v1)
	h.ShoppingLists.RegisterRoutes(v1)
}
