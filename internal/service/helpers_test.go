package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/pageza/mise/backend/internal/testdb"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type services struct {
	db        *gorm.DB
	recipes   *RecipeService
	scaling   *ScalingService
	mealPlans *MealPlanService
	lists     *ShoppingListService
	cache     *memoryCache
}

func newServices(t *testing.T) *services {
	t.Helper()
	db := testdb.NewSQLite(t).DB
	recipes := NewRecipeService(db, nil)
	limits := config.ScalingConfig{MinFactor: 0.1, MaxFactor: 10}
	mealPlans := NewMealPlanService(db, recipes, limits, false, nil, nil)
	cache := newMemoryCache()
	return &services{
		db:        db,
		recipes:   recipes,
		scaling:   NewScalingService(db, recipes, limits, nil, nil),
		mealPlans: mealPlans,
		lists:     NewShoppingListService(db, recipes, mealPlans, cache, limits, false, nil, nil),
		cache:     cache,
	}
}

func createRecipe(t *testing.T, svc *RecipeService, name string, servings int, ingredients ...string) *model.Recipe {
	t.Helper()
	recipe, err := svc.CreateRecipe(context.Background(), &model.Recipe{
		Name:        name,
		Servings:    servings,
		Ingredients: ingredients,
	})
	require.NoError(t, err)
	return recipe
}

func day(d int) time.Time {
	return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
}

// memoryCache is an in-process ShoppingListCache.
type memoryCache struct {
	mu    sync.Mutex
	lists map[uuid.UUID]model.ShoppingList
	gets  int
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{lists: make(map[uuid.UUID]model.ShoppingList)}
}

func (c *memoryCache) Get(_ context.Context, id uuid.UUID) (*model.ShoppingList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	list, ok := c.lists[id]
	if !ok {
		return nil, false
	}
	c.hits++
	list.Items = append([]model.ShoppingListItem(nil), list.Items...)
	return &list, true
}

func (c *memoryCache) Set(_ context.Context, list *model.ShoppingList) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *list
	cp.Items = append([]model.ShoppingListItem(nil), list.Items...)
	c.lists[list.ID] = cp
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, id)
	return nil
}

func (c *memoryCache) has(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.lists[id]
	return ok
}

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *mockObjectStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}
