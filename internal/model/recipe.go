package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultServings is used for recipes created without a serving count.
const DefaultServings = 4

// Recipe stores ingredient lines and steps as free text; they are parsed
// when the recipe is scaled or shopped for.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Category     string           `gorm:"size:50;index" json:"category"`
	ImageURL     string           `gorm:"size:255" json:"image_url"`
	Servings     int              `gorm:"not null;default:4" json:"servings"`
	PrepMinutes  int              `json:"prep_minutes"`
	CookMinutes  int              `json:"cook_minutes"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Servings <= 0 {
		r.Servings = DefaultServings
	}
	return nil
}

// ScalingEvent records one request to scale a recipe.
type ScalingEvent struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	RecipeID         uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	OriginalServings int       `gorm:"not null" json:"original_servings"`
	TargetServings   int       `gorm:"not null" json:"target_servings"`
	ScaleFactor      float64   `gorm:"not null" json:"scale_factor"`
}

func (e *ScalingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
