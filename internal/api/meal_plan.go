package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/pageza/mise/backend/internal/service"
)

type MealPlanHandler struct {
	mealPlans service.IMealPlanService
}

func NewMealPlanHandler(mealPlans service.IMealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlans: mealPlans}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.GET("", h.ListMealPlans)
		plans.POST("", h.CreateMealPlan)
		plans.GET("/:id", h.GetMealPlan)
		plans.DELETE("/:id", h.DeleteMealPlan)
		plans.POST("/:id/entries", h.AddEntry)
		plans.DELETE("/:id/entries/:entryId", h.RemoveEntry)
		plans.GET("/:id/ingredients", h.IngredientSummary)
	}
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	plans, err := h.mealPlans.ListMealPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	var req CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.mealPlans.CreateMealPlan(c.Request.Context(), &model.MealPlan{
		Name:      req.Name,
		StartDate: *start,
		EndDate:   *end,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	plan, err := h.mealPlans.GetMealPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.mealPlans.DeleteMealPlan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealPlanHandler) AddEntry(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddMealPlanEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		respondError(c, apperrors.Validation("recipe_id must be a uuid"))
		return
	}
	date, err := parseDate(req.Date, "date")
	if err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.mealPlans.AddEntry(c.Request.Context(), planID, &model.MealPlanEntry{
		RecipeID: recipeID,
		Date:     *date,
		MealType: req.MealType,
		Servings: req.Servings,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *MealPlanHandler) RemoveEntry(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}
	if err := h.mealPlans.RemoveEntry(c.Request.Context(), planID, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// IngredientSummary handles GET /meal-plans/:id/ingredients?from=&to=.
func (h *MealPlanHandler) IngredientSummary(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	from, err := parseDate(c.Query("from"), "from")
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := parseDate(c.Query("to"), "to")
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.mealPlans.IngredientSummary(c.Request.Context(), planID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": aggregatedItemResponses(items)})
}
