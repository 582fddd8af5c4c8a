package services

import (
	"context"
	"math"
	"time"

	"github.com/fredneedsausername/FreDiet/cache"
	"github.com/fredneedsausername/FreDiet/models"

	"gorm.io/gorm"
)

// Bounds carried over from the original schema constraints.
const (
	maxProteins = 999.9
	maxCalories = 9999
)

// MealService creates, lists and deletes meal records. The reference timezone
// and clock are injected so day boundaries and the "now" default are testable.
type MealService struct {
	db    *gorm.DB
	loc   *time.Location
	cache *cache.SummaryCache
	now   func() time.Time
}

// NewMealService creates a MealService. If c is nil, caching is disabled.
func NewMealService(db *gorm.DB, loc *time.Location, c *cache.SummaryCache) *MealService {
	return &MealService{db: db, loc: loc, cache: c, now: time.Now}
}

// AddRecord validates and persists a record owned by userID. A nil occurredAt
// defaults to the current moment in the reference timezone. Proteins are kept
// at one decimal, as the original schema enforced.
func (s *MealService) AddRecord(ctx context.Context, userID uint, proteins, calories float64, occurredAt *time.Time) (*models.MealRecord, error) {
	if proteins < 0 || proteins > maxProteins {
		return nil, ErrValidation
	}
	if calories < 0 || calories > maxCalories {
		return nil, ErrValidation
	}
	proteins = math.Round(proteins*10) / 10

	var at time.Time
	if occurredAt != nil {
		if occurredAt.IsZero() {
			return nil, ErrValidation
		}
		at = occurredAt.In(s.loc)
	} else {
		at = s.now().In(s.loc)
	}

	rec := models.MealRecord{
		UserID:     userID,
		Proteins:   proteins,
		Calories:   calories,
		OccurredAt: at,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, userID)
	return &rec, nil
}

// DeleteRecord removes the record if it exists and belongs to userID. Absent
// and foreign-owned records are indistinguishable.
func (s *MealService) DeleteRecord(ctx context.Context, userID, recordID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recordID, userID).
		Delete(&models.MealRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// ListRecords returns the user's records whose occurred_at falls within the
// inclusive calendar-day range, ascending.
func (s *MealService) ListRecords(ctx context.Context, userID uint, from, to time.Time) ([]models.MealRecord, error) {
	var records []models.MealRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND occurred_at BETWEEN ? AND ?",
			userID, dayStart(from, s.loc), dayEnd(to, s.loc)).
		Order("occurred_at ASC").
		Find(&records).Error
	return records, err
}

func (s *MealService) invalidateCache(ctx context.Context, userID uint) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
