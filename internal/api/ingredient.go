package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/ingredient"
	"github.com/pageza/mise/backend/internal/metrics"
)

const maxLinesPerRequest = 500

// IngredientHandler exposes the stateless ingredient operations.
type IngredientHandler struct {
	limits  config.ScalingConfig
	metrics *metrics.Metrics
}

func NewIngredientHandler(limits config.ScalingConfig, m *metrics.Metrics) *IngredientHandler {
	return &IngredientHandler{limits: limits, metrics: m}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.POST("/parse", h.Parse)
		ingredients.POST("/aggregate", h.Aggregate)
	}
}

func (h *IngredientHandler) Parse(c *gin.Context) {
	var req ParseIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	if len(req.Lines) > maxLinesPerRequest {
		respondError(c, apperrors.Validation("at most %d lines per request", maxLinesPerRequest))
		return
	}

	out := make([]ParsedIngredientResponse, 0, len(req.Lines))
	quantified := 0
	for _, line := range req.Lines {
		p := ingredient.Parse(line)
		if p.HasAmount() {
			quantified++
		}
		out = append(out, ParsedIngredientResponse{ParsedIngredient: p, Category: ingredient.Categorize(p.Name)})
	}
	h.metrics.IngredientLines(quantified, len(out)-quantified)

	c.JSON(http.StatusOK, gin.H{"ingredients": out})
}

// Aggregate consolidates entries. A zero scale factor means 1; factors above
// the configured maximum are rejected.
func (h *IngredientHandler) Aggregate(c *gin.Context) {
	var req AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}
	if len(req.Entries) > maxLinesPerRequest {
		respondError(c, apperrors.Validation("at most %d entries per request", maxLinesPerRequest))
		return
	}
	for i := range req.Entries {
		switch {
		case req.Entries[i].ScaleFactor < 0:
			respondError(c, apperrors.Validation("entry %d: scale_factor must not be negative", i))
			return
		case req.Entries[i].ScaleFactor == 0:
			req.Entries[i].ScaleFactor = 1
		case h.limits.MaxFactor > 0 && req.Entries[i].ScaleFactor > h.limits.MaxFactor:
			respondError(c, apperrors.Validation("entry %d: scale_factor must be at most %g", i, h.limits.MaxFactor))
			return
		}
	}

	var opts []ingredient.Option
	if req.Sort {
		opts = append(opts, ingredient.SortByCategory())
	}
	if req.NormalizeUnits {
		opts = append(opts, ingredient.NormalizeUnits())
	}
	items := ingredient.Aggregate(req.Entries, opts...)
	h.metrics.Aggregation(len(items))

	c.JSON(http.StatusOK, gin.H{"items": aggregatedItemResponses(items)})
}
