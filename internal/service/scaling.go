package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScaledRecipe is a recipe recalculated for a different number of servings.
type ScaledRecipe struct {
	Recipe         *model.Recipe                 `json:"recipe"`
	TargetServings int                           `json:"target_servings"`
	ScaleFactor    float64                       `json:"scale_factor"`
	Clamped        bool                          `json:"clamped"`
	Ingredients    []ingredient.ScaledIngredient `json:"ingredients"`
	Instructions   []string                      `json:"instructions"`
	PrepMinutes    int                           `json:"prep_minutes"`
	CookMinutes    int                           `json:"cook_minutes"`
}

type ScalingStats struct {
	RecipeID      uuid.UUID `json:"recipe_id"`
	Count         int64     `json:"count"`
	AverageFactor float64   `json:"average_factor"`
}

type ScalingService struct {
	db      *gorm.DB
	recipes *RecipeService
	limits  config.ScalingConfig
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewScalingService(db *gorm.DB, recipes *RecipeService, limits config.ScalingConfig, m *metrics.Metrics, logger *zap.Logger) *ScalingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScalingService{db: db, recipes: recipes, limits: limits, metrics: m, logger: logger}
}

// clampFactor bounds factor to limits and reports whether it changed. A zero
// bound is open.
func clampFactor(limits config.ScalingConfig, factor float64) (float64, bool) {
	if limits.MinFactor > 0 && factor < limits.MinFactor {
		return limits.MinFactor, true
	}
	if limits.MaxFactor > 0 && factor > limits.MaxFactor {
		return limits.MaxFactor, true
	}
	return factor, false
}

// recipeServings treats recipes stored without a serving count as
// DefaultServings.
func recipeServings(recipe *model.Recipe) int {
	if recipe.Servings <= 0 {
		return model.DefaultServings
	}
	return recipe.Servings
}

// servingsFactor is the clamped factor that scales recipe to target servings.
func servingsFactor(limits config.ScalingConfig, recipe *model.Recipe, target int) (float64, bool) {
	return clampFactor(limits, float64(target)/float64(recipeServings(recipe)))
}

// ScaleRecipe scales ingredient amounts by targetServings/servings and
// adjusts prep, cook and step times with the dampened cooking multiplier.
func (s *ScalingService) ScaleRecipe(ctx context.Context, id uuid.UUID, targetServings int) (*ScaledRecipe, error) {
	if targetServings <= 0 {
		return nil, apperrors.Validation("servings must be a positive number")
	}
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	servings := recipeServings(recipe)
	factor, clamped := servingsFactor(s.limits, recipe, targetServings)

	scaled := &ScaledRecipe{
		Recipe:         recipe,
		TargetServings: targetServings,
		ScaleFactor:    factor,
		Clamped:        clamped,
		Ingredients:    ingredient.ScaleLines(recipe.Ingredients, factor),
		Instructions:   ingredient.ScaleSteps(recipe.Instructions, factor),
		PrepMinutes:    ingredient.ScaleCookingTime(recipe.PrepMinutes, factor),
		CookMinutes:    ingredient.ScaleCookingTime(recipe.CookMinutes, factor),
	}

	quantified := 0
	for _, ing := range scaled.Ingredients {
		if ing.HasAmount() {
			quantified++
		}
	}
	s.metrics.IngredientLines(quantified, len(scaled.Ingredients)-quantified)
	s.metrics.RecipeScaled(factor)

	event := model.ScalingEvent{
		RecipeID:         recipe.ID,
		OriginalServings: servings,
		TargetServings:   targetServings,
		ScaleFactor:      factor,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		s.logger.Warn("failed to record scaling event", zap.String("recipe_id", recipe.ID.String()), zap.Error(err))
	}

	if clamped {
		s.logger.Info("scale factor clamped",
			zap.String("recipe_id", recipe.ID.String()),
			zap.Int("target_servings", targetServings),
			zap.Float64("factor", factor),
		)
	}
	return scaled, nil
}

// ScalingStats summarises the scaling requests recorded for a recipe.
func (s *ScalingService) ScalingStats(ctx context.Context, recipeID uuid.UUID) (*ScalingStats, error) {
	if _, err := s.recipes.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	var row struct {
		Count         int64
		AverageFactor float64
	}
	err := s.db.WithContext(ctx).Model(&model.ScalingEvent{}).
		Select("COUNT(*) AS count, COALESCE(AVG(scale_factor), 0) AS average_factor").
		Where("recipe_id = ?", recipeID).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Internal("failed to load scaling stats", err)
	}
	return &ScalingStats{RecipeID: recipeID, Count: row.Count, AverageFactor: row.AverageFactor}, nil
}
