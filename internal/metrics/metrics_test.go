package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.IngredientLines(3, 1)
	m.IngredientLines(2, 0)
	m.Aggregation(4)
	m.ShoppingListGenerated("recipes")
	m.RecipeScaled(2)
	m.CacheOperation("get", "hit")
	m.Export("success")

	assert.Equal(t, 5.0, testutil.ToFloat64(m.ingredientLinesTotal.WithLabelValues("yes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ingredientLinesTotal.WithLabelValues("no")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aggregationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shoppingListsTotal.WithLabelValues("recipes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recipeScalesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheOperationsTotal.WithLabelValues("get", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exportsTotal.WithLabelValues("success")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IngredientLines(1, 1)
		m.Aggregation(1)
		m.ShoppingListGenerated("meal_plan")
		m.RecipeScaled(1)
		m.CacheOperation("set", "error")
		m.Export("failure")
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mise_http_requests_total")
}
