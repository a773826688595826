package service

import (
	"context"
	"fmt"
	"sort"
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

const dateLayout = "2006-01-02"

type MealPlanService struct {
	db             *gorm.DB
	recipes        *RecipeService
	limits         config.ScalingConfig
	normalizeUnits bool
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

func NewMealPlanService(db *gorm.DB, recipes *RecipeService, limits config.ScalingConfig, normalizeUnits bool, m *metrics.Metrics, logger *zap.Logger) *MealPlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealPlanService{db: db, recipes: recipes, limits: limits, normalizeUnits: normalizeUnits, metrics: m, logger: logger}
}

// CreateMealPlan validates and stores an empty plan. Dates are truncated to days.
func (s *MealPlanService) CreateMealPlan(ctx context.Context, plan *model.MealPlan) (*model.MealPlan, error) {
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return nil, apperrors.Validation("meal plan name is required")
	}
	if plan.StartDate.IsZero() || plan.EndDate.IsZero() {
		return nil, apperrors.Validation("start_date and end_date are required")
	}
	plan.StartDate = model.DateOnly(plan.StartDate)
	plan.EndDate = model.DateOnly(plan.EndDate)
	if plan.EndDate.Before(plan.StartDate) {
		return nil, apperrors.Validation("end_date must not be before start_date")
	}
	plan.Entries = nil

	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, apperrors.Internal("failed to create meal plan", err)
	}
	plan.Entries = []model.MealPlanEntry{}
	return plan, nil
}

// GetMealPlan loads a plan with its entries in calendar order.
func (s *MealPlanService) GetMealPlan(ctx context.Context, id uuid.UUID) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Entries").
		Preload("Entries.Recipe").
		First(&plan, "id = ?", id).Error
	if err != nil {
		return nil, apperrors.From(err, "meal plan")
	}
	sort.SliceStable(plan.Entries, func(i, j int) bool {
		return plan.Entries[i].Before(plan.Entries[j])
	})
	if plan.Entries == nil {
		plan.Entries = []model.MealPlanEntry{}
	}
	return &plan, nil
}

func (s *MealPlanService) ListMealPlans(ctx context.Context) ([]*model.MealPlan, error) {
	var plans []*model.MealPlan
	if err := s.db.WithContext(ctx).Order("start_date DESC").Find(&plans).Error; err != nil {
		return nil, apperrors.Internal("failed to list meal plans", err)
	}
	return plans, nil
}

// DeleteMealPlan removes the plan's entries and soft-deletes the plan.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.MealPlan{}, "id = ?", id)
		if result.Error != nil {
			return apperrors.Internal("failed to delete meal plan", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("meal plan")
		}
		if err := tx.Where("meal_plan_id = ?", id).Delete(&model.MealPlanEntry{}).Error; err != nil {
			return apperrors.Internal("failed to delete meal plan entries", err)
		}
		return nil
	})
}

// AddEntry schedules a recipe inside the plan's date range. Servings default
// to the recipe's own serving count.
func (s *MealPlanService) AddEntry(ctx context.Context, planID uuid.UUID, entry *model.MealPlanEntry) (*model.MealPlanEntry, error) {
	var plan model.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", planID).Error; err != nil {
		return nil, apperrors.From(err, "meal plan")
	}
	if !entry.MealType.Valid() {
		return nil, apperrors.Validation("meal_type must be one of breakfast, lunch, dinner or snack")
	}
	if entry.Servings < 0 {
		return nil, apperrors.Validation("servings must be positive")
	}
	if entry.Date.IsZero() {
		return nil, apperrors.Validation("date is required")
	}
	entry.Date = model.DateOnly(entry.Date)
	if entry.Date.Before(model.DateOnly(plan.StartDate)) || entry.Date.After(model.DateOnly(plan.EndDate)) {
		return nil, apperrors.Validation("date %s is outside the meal plan (%s to %s)",
			entry.Date.Format(dateLayout), plan.StartDate.Format(dateLayout), plan.EndDate.Format(dateLayout))
	}

	recipe, err := s.recipes.GetRecipe(ctx, entry.RecipeID)
	if err != nil {
		return nil, err
	}
	if entry.Servings == 0 {
		entry.Servings = recipe.Servings
	}

	entry.ID = uuid.Nil
	entry.MealPlanID = plan.ID
	entry.Recipe = nil
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, apperrors.Internal("failed to add meal plan entry", err)
	}
	entry.Recipe = recipe
	return entry, nil
}

func (s *MealPlanService) RemoveEntry(ctx context.Context, planID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND meal_plan_id = ?", entryID, planID).
		Delete(&model.MealPlanEntry{})
	if result.Error != nil {
		return apperrors.Internal("failed to remove meal plan entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("meal plan entry")
	}
	return nil
}

// aggregateOptions returns the Aggregate options used for plan summaries and
// shopping lists.
func aggregateOptions(normalizeUnits bool) []ingredient.Option {
	opts := []ingredient.Option{ingredient.SortByCategory()}
	if normalizeUnits {
		opts = append(opts, ingredient.NormalizeUnits())
	}
	return opts
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && model.DateOnly(*to).Before(model.DateOnly(*from)) {
		return apperrors.Validation("to must not be before from")
	}
	return nil
}

// entryLabel names where a line came from, e.g. "2026-10-12 dinner: Chili".
func entryLabel(e model.MealPlanEntry) string {
	return fmt.Sprintf("%s %s: %s", e.Date.Format(dateLayout), e.MealType, e.Recipe.Name)
}

// ingredientEntries turns the plan entries between from and to (inclusive,
// either may be nil) into aggregation input. Each recipe is scaled by
// entry servings over recipe servings, clamped to the scaling limits.
func (s *MealPlanService) ingredientEntries(plan *model.MealPlan, from, to *time.Time) []ingredient.Entry {
	var entries []ingredient.Entry
	for _, e := range plan.Entries {
		day := model.DateOnly(e.Date)
		if from != nil && day.Before(model.DateOnly(*from)) {
			continue
		}
		if to != nil && day.After(model.DateOnly(*to)) {
			continue
		}
		if e.Recipe == nil {
			s.logger.Warn("skipping entry for deleted recipe",
				zap.String("entry_id", e.ID.String()),
				zap.String("recipe_id", e.RecipeID.String()),
			)
			continue
		}

		factor, clamped := servingsFactor(s.limits, e.Recipe, e.Servings)
		if clamped {
			s.logger.Debug("scale factor clamped",
				zap.String("entry_id", e.ID.String()),
				zap.Float64("factor", factor),
			)
		}
		entries = append(entries, ingredient.EntriesFromLines(e.Recipe.Ingredients, factor, entryLabel(e))...)
	}
	return entries
}

// IngredientSummary totals every ingredient needed for the plan's meals
// between from and to.
func (s *MealPlanService) IngredientSummary(ctx context.Context, planID uuid.UUID, from, to *time.Time) ([]ingredient.AggregatedItem, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	plan, err := s.GetMealPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	entries := s.ingredientEntries(plan, from, to)
	items := ingredient.Aggregate(entries, aggregateOptions(s.normalizeUnits)...)
	s.metrics.Aggregation(len(items))
	return items, nil
}
