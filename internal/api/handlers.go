package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/apperrors"
	"github.com/pageza/mise/backend/internal/database"
	"github.com/pageza/mise/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// respondError writes err as {"error", "code"} with the matching status.
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// pathID parses the uuid path parameter name.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apperrors.BadRequest("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// parseDate reads an optional yyyy-mm-dd value.
func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperrors.Validation("%s must be a date in yyyy-mm-dd format", field)
	}
	return &t, nil
}

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck reports database and redis reachability. Redis is optional and
// never makes the service unhealthy.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"database": "ok"}
	if err := database.HealthCheck(ctx, h.db); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	}
	if h.redis == nil {
		checks["redis"] = "disabled"
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
	} else {
		checks["redis"] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
