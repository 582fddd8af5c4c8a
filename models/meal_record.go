package models

import (
	"time"

	"gorm.io/gorm"
)

// One logged intake: protein/calorie counts at a specific moment.
type MealRecord struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null" json:"user_id"` // FK → users.id, never transferred
	Proteins   float64   `gorm:"not null" json:"proteins"`      // grams
	Calories   float64   `gorm:"not null" json:"calories"`      // kcal
	OccurredAt time.Time `gorm:"index;not null" json:"occurred_at"`
}
