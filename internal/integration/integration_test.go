package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/database"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/router"
	"github.com/pageza/mise/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../migrations"

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func setupPostgres(t *testing.T) (*testdb.TestDB, *sql.DB) {
	t.Helper()
	td := testdb.NewPostgres(t)

	sqlDB, err := sql.Open("postgres", td.Config.DSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	applied, err := database.NewMigrator(sqlDB, migrationsDir, nil).Up(context.Background())
	require.NoError(t, err)
	require.Len(t, applied, 3)
	return td, sqlDB
}

func TestMigrationsRoundTrip(t *testing.T) {
	_, sqlDB := setupPostgres(t)
	ctx := context.Background()
	migrator := database.NewMigrator(sqlDB, migrationsDir, nil)

	applied, err := migrator.Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied, "second run should be a no-op")

	for _, want := range []string{
		"000003_create_shopping_lists.sql",
		"000002_create_meal_plans.sql",
		"000001_create_recipes.sql",
	} {
		name, err := migrator.RollbackLast(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, name)
	}

	_, err = migrator.RollbackLast(ctx)
	assert.ErrorIs(t, err, database.ErrNoMigrations)

	var exists bool
	require.NoError(t, sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = 'recipes')",
	).Scan(&exists))
	assert.False(t, exists)
}

func TestShoppingListFlowOnPostgres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	td, _ := setupPostgres(t)

	cfg := &config.Config{
		Env:     config.Test,
		Server:  config.ServerConfig{AllowedOrigins: []string{"*"}},
		Scaling: config.ScalingConfig{MinFactor: 0.1, MaxFactor: 10},
	}
	r := router.SetupRouter(router.Dependencies{Config: cfg, DB: td.DB, Metrics: metrics.New()})

	var stew struct {
		ID string `json:"id"`
	}
	w := performRequest(r, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"name":         "Beef Stew",
		"category":     "Dinner",
		"servings":     4,
		"cook_minutes": 90,
		"ingredients":  []string{"2 lb beef", "3 carrots", "1 1/2 cups beef broth", "salt to taste"},
		"instructions": []string{"Brown the beef.", "Simmer everything."},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stew))

	w = performRequest(r, http.MethodGet, "/api/v1/recipes?q=broth", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Beef Stew")

	w = performRequest(r, http.MethodGet, "/api/v1/recipes/"+stew.ID+"/scale?servings=8", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"cook_minutes":117`)

	w = performRequest(r, http.MethodGet, "/api/v1/recipes/"+stew.ID+"/scaling-stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"count":1`)

	var plan struct {
		ID string `json:"id"`
	}
	w = performRequest(r, http.MethodPost, "/api/v1/meal-plans", map[string]interface{}{
		"name": "Winter week", "start_date": "2026-12-07", "end_date": "2026-12-13",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	for _, date := range []string{"2026-12-07", "2026-12-09"} {
		w = performRequest(r, http.MethodPost, "/api/v1/meal-plans/"+plan.ID+"/entries", map[string]interface{}{
			"recipe_id": stew.ID, "date": date, "meal_type": "dinner",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = performRequest(r, http.MethodPost, "/api/v1/meal-plans/"+plan.ID+"/shopping-list", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var list struct {
		ID    string `json:"id"`
		Items []struct {
			Display  string   `json:"display"`
			Category string   `json:"category"`
			Sources  []string `json:"sources"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))

	displays := map[string]string{}
	for _, item := range list.Items {
		displays[item.Display] = item.Category
	}
	assert.Equal(t, map[string]string{
		"6 carrots":         "Produce",
		"4 lb beef":         "Meat & Seafood",
		"3 cups beef broth": "Meat & Seafood",
		"salt to taste":     "Pantry",
	}, displays)

	w = performRequest(r, http.MethodGet, "/api/v1/shopping-lists/"+list.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "2026-12-09 dinner: Beef Stew")

	w = performRequest(r, http.MethodDelete, "/api/v1/meal-plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = performRequest(r, http.MethodGet, "/api/v1/shopping-lists/"+list.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, "lists outlive their meal plan")
}
