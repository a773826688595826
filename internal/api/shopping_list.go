package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/middleware"
	"github.com/pageza/mise/backend/internal/service"
)

type ShoppingListHandler struct {
	lists       service.IShoppingListService
	exports     service.IExportService
	rateLimiter *middleware.RateLimiter
}

// NewShoppingListHandler creates the handler. rateLimiter may be nil.
func NewShoppingListHandler(lists service.IShoppingListService, exports service.IExportService, rateLimiter *middleware.RateLimiter) *ShoppingListHandler {
	return &ShoppingListHandler{lists: lists, exports: exports, rateLimiter: rateLimiter}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	limit := h.rateLimiter.Middleware()

	lists := router.Group("/shopping-lists")
	{
		lists.GET("", h.ListShoppingLists)
		lists.POST("", limit, h.GenerateFromRecipes)
		lists.GET("/:id", h.GetShoppingList)
		lists.DELETE("/:id", h.DeleteShoppingList)
		lists.PATCH("/:id/items/:itemId", h.SetItemChecked)
		lists.POST("/:id/export", limit, h.Export)
	}
	router.POST("/meal-plans/:id/shopping-list", limit, h.GenerateFromMealPlan)
}

func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	lists, err := h.lists.ListShoppingLists(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) GenerateFromRecipes(c *gin.Context) {
	var req service.GenerateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	list, err := h.lists.GenerateFromRecipes(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) GenerateFromMealPlan(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req MealPlanShoppingListRequest
	// an empty body uses the whole plan
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.BadRequest(err.Error()))
			return
		}
	}
	from, err := parseDate(req.From, "from")
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := parseDate(req.To, "to")
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.lists.GenerateFromMealPlan(c.Request.Context(), planID, service.MealPlanShoppingListRequest{
		Name:           req.Name,
		From:           from,
		To:             to,
		NormalizeUnits: req.NormalizeUnits,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.lists.GetShoppingList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.lists.DeleteShoppingList(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) SetItemChecked(c *gin.Context) {
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req SetItemCheckedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	item, err := h.lists.SetItemChecked(c.Request.Context(), listID, itemID, *req.Checked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.exports.Export(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
