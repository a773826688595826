package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingList is a persisted aggregation of recipe ingredients.
type ShoppingList struct {
	ID              uuid.UUID          `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Name            string             `gorm:"size:255;not null" json:"name"`
	MealPlanID      *uuid.UUID         `gorm:"type:varchar(36);index" json:"meal_plan_id,omitempty"`
	NormalizedUnits bool               `json:"normalized_units"`
	Items           []ShoppingListItem `json:"items"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ShoppingListItem is one consolidated line of a shopping list. Quantified is
// false for items such as "salt to taste" that carry no amount.
type ShoppingListItem struct {
	ID             uuid.UUID        `gorm:"type:varchar(36);primaryKey" json:"id"`
	ShoppingListID uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"shopping_list_id"`
	Position       int              `gorm:"not null" json:"position"`
	Name           string           `gorm:"size:255;not null" json:"name"`
	Quantity       float64          `json:"quantity"`
	Quantified     bool             `json:"quantified"`
	Unit           string           `gorm:"size:50" json:"unit"`
	Category       string           `gorm:"size:50;not null" json:"category"`
	Sources        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"sources"`
	Checked        bool             `gorm:"not null;default:false" json:"checked"`
	Display        string           `gorm:"-" json:"display"`
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
