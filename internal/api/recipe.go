package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/pageza/mise/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	scaling service.IScalingService
}

func NewRecipeHandler(recipes service.IRecipeService, scaling service.IScalingService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, scaling: scaling}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/scale", h.ScaleRecipe)
		recipes.GET("/:id/scaling-stats", h.ScalingStats)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), service.RecipeFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ScaleRecipe handles GET /recipes/:id/scale?servings=N.
func (h *RecipeHandler) ScaleRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	servings, err := strconv.Atoi(c.Query("servings"))
	if err != nil {
		respondError(c, apperrors.BadRequest("servings query parameter must be an integer"))
		return
	}
	scaled, err := h.scaling.ScaleRecipe(c.Request.Context(), id, servings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scaled)
}

func (h *RecipeHandler) ScalingStats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.scaling.ScalingStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
