package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/middleware"
	"github.com/pageza/mise/backend/internal/mocks"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/pageza/mise/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockedServices struct {
	recipes   *mocks.MockRecipeService
	scaling   *mocks.MockScalingService
	mealPlans *mocks.MockMealPlanService
	lists     *mocks.MockShoppingListService
	exports   *mocks.MockExportService
}

func setupMockedRouter() (*gin.Engine, *mockedServices) {
	m := &mockedServices{
		recipes:   new(mocks.MockRecipeService),
		scaling:   new(mocks.MockScalingService),
		mealPlans: new(mocks.MockMealPlanService),
		lists:     new(mocks.MockShoppingListService),
		exports:   new(mocks.MockExportService),
	}
	router := gin.New()
	router.Use(middleware.ErrorHandler(nil))
	v1 := router.Group("/api/v1")
	NewRecipeHandler(m.recipes, m.scaling).RegisterRoutes(v1)
	NewMealPlanHandler(m.mealPlans).RegisterRoutes(v1)
	NewShoppingListHandler(m.lists, m.exports, nil).RegisterRoutes(v1)
	return router, m
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	router, m := setupMockedRouter()
	m.recipes.On("ListRecipes", mock.Anything, service.RecipeFilter{Category: "Dinner"}).
		Return(nil, apperrors.Internal("failed to list recipes", errors.New("connection reset by peer")))

	w := PerformRequest(router, http.MethodGet, "/api/v1/recipes?category=Dinner", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	m.recipes.AssertExpectations(t)
}

func TestExportEndpoint(t *testing.T) {
	router, m := setupMockedRouter()
	id := uuid.New()
	m.exports.On("Export", mock.Anything, id).Return(&service.ExportResult{
		ListID: id,
		Key:    "shopping-lists/" + id.String() + ".txt",
		URL:    "https://bucket.example/list.txt",
	}, nil)

	w := PerformRequest(router, http.MethodPost, "/api/v1/shopping-lists/"+id.String()+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		URL string `json:"url"`
	}
	decode(t, w, &body)
	assert.Equal(t, "https://bucket.example/list.txt", body.URL)
	m.exports.AssertExpectations(t)
}

func TestIngredientSummaryPassesDateRange(t *testing.T) {
	router, m := setupMockedRouter()
	id := uuid.New()
	m.mealPlans.On("IngredientSummary", mock.Anything, id,
		mock.MatchedBy(func(from *time.Time) bool { return from != nil }),
		mock.Anything,
	).Return([]ingredient.AggregatedItem{
		{Name: "rice", TotalQuantity: 2, Unit: "cups", Category: ingredient.Pantry, Quantified: true, SourceLabels: []string{}},
	}, nil)

	w := PerformRequest(router, http.MethodGet, "/api/v1/meal-plans/"+id.String()+"/ingredients?from=2026-10-12&to=2026-10-14", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"line":"2 cups rice"`)

	call := m.mealPlans.Calls[0]
	from := call.Arguments.Get(2).(*time.Time)
	to := call.Arguments.Get(3).(*time.Time)
	assert.Equal(t, "2026-10-12", from.Format(dateLayout))
	assert.Equal(t, "2026-10-14", to.Format(dateLayout))
}

func TestSetItemCheckedPassesValue(t *testing.T) {
	router, m := setupMockedRouter()
	listID, itemID := uuid.New(), uuid.New()
	m.lists.On("SetItemChecked", mock.Anything, listID, itemID, false).
		Return(&model.ShoppingListItem{ID: itemID, ShoppingListID: listID, Name: "rice"}, nil)

	w := PerformRequest(router, http.MethodPatch, "/api/v1/shopping-lists/"+listID.String()+"/items/"+itemID.String(),
		map[string]interface{}{"checked": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	m.lists.AssertExpectations(t)
}
