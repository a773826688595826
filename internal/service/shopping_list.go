package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipeServings selects a recipe for a shopping list. Zero servings keeps
// the recipe's own serving count.
type RecipeServings struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
	Servings int       `json:"servings"`
}

type GenerateShoppingListRequest struct {
	Name    string           `json:"name"`
	Recipes []RecipeServings `json:"recipes" binding:"required"`
	// NormalizeUnits overrides the configured default when set.
	NormalizeUnits *bool `json:"normalize_units"`
}

type MealPlanShoppingListRequest struct {
	Name           string     `json:"name"`
	From           *time.Time `json:"from"`
	To             *time.Time `json:"to"`
	NormalizeUnits *bool      `json:"normalize_units"`
}

type ShoppingListService struct {
	db             *gorm.DB
	recipes        *RecipeService
	mealPlans      *MealPlanService
	cache          ShoppingListCache
	limits         config.ScalingConfig
	normalizeUnits bool
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewShoppingListService wires the service. cache may be nil.
func NewShoppingListService(
	db *gorm.DB,
	recipes *RecipeService,
	mealPlans *MealPlanService,
	cache ShoppingListCache,
	limits config.ScalingConfig,
	normalizeUnits bool,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ShoppingListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShoppingListService{
		db:             db,
		recipes:        recipes,
		mealPlans:      mealPlans,
		cache:          cache,
		limits:         limits,
		normalizeUnits: normalizeUnits,
		metrics:        m,
		logger:         logger,
	}
}

func (s *ShoppingListService) normalize(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.normalizeUnits
}

// itemDisplay renders a stored item the same way AggregatedItem.Line does.
func itemDisplay(item model.ShoppingListItem) string {
	return ingredient.AggregatedItem{
		Name:          item.Name,
		TotalQuantity: item.Quantity,
		Unit:          item.Unit,
		Quantified:    item.Quantified,
	}.Line()
}

func withDisplay(list *model.ShoppingList) *model.ShoppingList {
	if list.Items == nil {
		list.Items = []model.ShoppingListItem{}
	}
	for i := range list.Items {
		list.Items[i].Display = itemDisplay(list.Items[i])
	}
	return list
}

func (s *ShoppingListService) cacheList(ctx context.Context, list *model.ShoppingList) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, list); err != nil {
		s.logger.Warn("failed to cache shopping list", zap.String("id", list.ID.String()), zap.Error(err))
	}
}

func (s *ShoppingListService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate shopping list", zap.String("id", id.String()), zap.Error(err))
	}
}

// save aggregates entries and persists the result as a new list.
func (s *ShoppingListService) save(ctx context.Context, list *model.ShoppingList, entries []ingredient.Entry, source string) (*model.ShoppingList, error) {
	items := ingredient.Aggregate(entries, aggregateOptions(list.NormalizedUnits)...)
	s.metrics.Aggregation(len(items))

	list.Items = make([]model.ShoppingListItem, 0, len(items))
	for i, item := range items {
		list.Items = append(list.Items, model.ShoppingListItem{
			Position:   i,
			Name:       item.Name,
			Quantity:   item.TotalQuantity,
			Quantified: item.Quantified,
			Unit:       item.Unit,
			Category:   string(item.Category),
			Sources:    model.JSONBStringArray(item.SourceLabels),
		})
	}

	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, apperrors.Internal("failed to save shopping list", err)
	}

	s.metrics.ShoppingListGenerated(source)
	s.logger.Info("shopping list generated",
		zap.String("id", list.ID.String()),
		zap.String("source", source),
		zap.Int("entries", len(entries)),
		zap.Int("items", len(list.Items)),
	)

	withDisplay(list)
	s.cacheList(ctx, list)
	return list, nil
}

// GenerateFromRecipes builds a list from recipes, each scaled to the
// requested servings.
func (s *ShoppingListService) GenerateFromRecipes(ctx context.Context, req GenerateShoppingListRequest) (*model.ShoppingList, error) {
	if len(req.Recipes) == 0 {
		return nil, apperrors.Validation("at least one recipe is required")
	}

	var entries []ingredient.Entry
	for _, rs := range req.Recipes {
		if rs.Servings < 0 {
			return nil, apperrors.Validation("servings must be positive")
		}
		recipe, err := s.recipes.GetRecipe(ctx, rs.RecipeID)
		if err != nil {
			return nil, err
		}
		factor := 1.0
		if rs.Servings > 0 {
			var clamped bool
			factor, clamped = servingsFactor(s.limits, recipe, rs.Servings)
			if clamped {
				s.logger.Debug("scale factor clamped",
					zap.String("recipe_id", recipe.ID.String()),
					zap.Int("servings", rs.Servings),
					zap.Float64("factor", factor),
				)
			}
		}
		entries = append(entries, ingredient.EntriesFromLines(recipe.Ingredients, factor, recipe.Name)...)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Shopping list " + time.Now().UTC().Format(dateLayout)
	}
	list := &model.ShoppingList{Name: name, NormalizedUnits: s.normalize(req.NormalizeUnits)}
	return s.save(ctx, list, entries, "recipes")
}

// GenerateFromMealPlan builds a list from the plan's meals between
// req.From and req.To.
func (s *ShoppingListService) GenerateFromMealPlan(ctx context.Context, planID uuid.UUID, req MealPlanShoppingListRequest) (*model.ShoppingList, error) {
	if err := validateRange(req.From, req.To); err != nil {
		return nil, err
	}
	plan, err := s.mealPlans.GetMealPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	entries := s.mealPlans.ingredientEntries(plan, req.From, req.To)
	if len(entries) == 0 {
		return nil, apperrors.Validation("meal plan has no meals in the selected range")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = plan.Name
	}
	list := &model.ShoppingList{
		Name:            name,
		MealPlanID:      &plan.ID,
		NormalizedUnits: s.normalize(req.NormalizeUnits),
	}
	return s.save(ctx, list, entries, "meal_plan")
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// GetShoppingList returns a list from the cache, falling back to the database.
func (s *ShoppingListService) GetShoppingList(ctx context.Context, id uuid.UUID) (*model.ShoppingList, error) {
	if s.cache != nil {
		if list, ok := s.cache.Get(ctx, id); ok {
			return withDisplay(list), nil
		}
	}

	var list model.ShoppingList
	if err := s.db.WithContext(ctx).Preload("Items", preloadItems).First(&list, "id = ?", id).Error; err != nil {
		return nil, apperrors.From(err, "shopping list")
	}
	withDisplay(&list)
	s.cacheList(ctx, &list)
	return &list, nil
}

// ListShoppingLists returns every list, newest first.
func (s *ShoppingListService) ListShoppingLists(ctx context.Context) ([]*model.ShoppingList, error) {
	var lists []*model.ShoppingList
	if err := s.db.WithContext(ctx).Preload("Items", preloadItems).Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, apperrors.Internal("failed to list shopping lists", err)
	}
	for _, l := range lists {
		withDisplay(l)
	}
	return lists, nil
}

func (s *ShoppingListService) SetItemChecked(ctx context.Context, listID, itemID uuid.UUID, checked bool) (*model.ShoppingListItem, error) {
	result := s.db.WithContext(ctx).Model(&model.ShoppingListItem{}).
		Where("id = ? AND shopping_list_id = ?", itemID, listID).
		Update("checked", checked)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to update shopping list item", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("shopping list item")
	}
	s.invalidate(ctx, listID)

	var item model.ShoppingListItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		return nil, apperrors.From(err, "shopping list item")
	}
	item.Display = itemDisplay(item)
	return &item, nil
}

func (s *ShoppingListService) DeleteShoppingList(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_list_id = ?", id).Delete(&model.ShoppingListItem{}).Error; err != nil {
			return apperrors.Internal("failed to delete shopping list items", err)
		}
		result := tx.Delete(&model.ShoppingList{}, "id = ?", id)
		if result.Error != nil {
			return apperrors.Internal("failed to delete shopping list", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("shopping list")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}
