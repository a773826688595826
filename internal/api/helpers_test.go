package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/middleware"
	"github.com/pageza/mise/backend/internal/service"
	"github.com/pageza/mise/backend/internal/testdb"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter wires real services over an in-memory database. Exports
// have no object store, so they report the service as unavailable.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testdb.NewSQLite(t).DB
	m := metrics.New()

	recipes := service.NewRecipeService(db, nil)
	limits := config.ScalingConfig{MinFactor: 0.1, MaxFactor: 10}
	scaling := service.NewScalingService(db, recipes, limits, m, nil)
	mealPlans := service.NewMealPlanService(db, recipes, limits, false, m, nil)
	lists := service.NewShoppingListService(db, recipes, mealPlans, nil, limits, false, m, nil)
	exports := service.NewExportService(lists, nil, 0, m, nil)

	router := gin.New()
	router.Use(middleware.ErrorHandler(nil))
	SetupAPI(router.Group("/api/v1"), Handlers{
		Health:        NewHealthHandler(db, nil),
		Ingredients:   NewIngredientHandler(limits, m),
		Recipes:       NewRecipeHandler(recipes, scaling),
		MealPlans:     NewMealPlanHandler(mealPlans),
		ShoppingLists: NewShoppingListHandler(lists, exports, nil),
	})
	return router
}

// PerformRequest sends body as JSON when it is not nil.
func PerformRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
