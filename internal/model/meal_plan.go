package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// order ranks meals within a day.
func (m MealType) order() int {
	switch m {
	case Breakfast:
		return 0
	case Lunch:
		return 1
	case Dinner:
		return 2
	default:
		return 3
	}
}

type MealPlan struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	StartDate time.Time       `gorm:"not null" json:"start_date"`
	EndDate   time.Time       `gorm:"not null" json:"end_date"`
	Entries   []MealPlanEntry `gorm:"constraint:OnDelete:CASCADE" json:"entries"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MealPlanEntry schedules a recipe for one meal, cooked for Servings people.
type MealPlanEntry struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	MealPlanID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_plan_id"`
	RecipeID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	Recipe     *Recipe   `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Date       time.Time `gorm:"not null" json:"date"`
	MealType   MealType  `gorm:"size:20;not null" json:"meal_type"`
	Servings   int       `gorm:"not null" json:"servings"`
}

func (e *MealPlanEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Before orders entries by date, then by meal of the day.
func (e MealPlanEntry) Before(other MealPlanEntry) bool {
	di, dj := DateOnly(e.Date), DateOnly(other.Date)
	if !di.Equal(dj) {
		return di.Before(dj)
	}
	return e.MealType.order() < other.MealType.order()
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
