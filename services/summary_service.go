package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fredneedsausername/FreDiet/cache"
	"github.com/fredneedsausername/FreDiet/models"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type DayTotal struct {
	Date      string  `json:"date"`
	Proteins  float64 `json:"proteins"`
	Calories  float64 `json:"calories"`
	MealCount int     `json:"meal_count"`
}

type RangeSummary struct {
	From string     `json:"from"`
	To   string     `json:"to"`
	Days []DayTotal `json:"days"`

	TotalProteins   float64 `json:"total_proteins"`
	TotalCalories   float64 `json:"total_calories"`
	DaysWithRecords int     `json:"days_with_records"`
	AvgProteins     float64 `json:"avg_proteins"`
	AvgCalories     float64 `json:"avg_calories"`
}

// SummaryService computes gap-filled per-day totals over a date range.
type SummaryService struct {
	db    *gorm.DB
	loc   *time.Location
	cache *cache.SummaryCache
	sf    singleflight.Group
}

// NewSummaryService creates a SummaryService. If c is nil, caching is disabled.
func NewSummaryService(db *gorm.DB, loc *time.Location, c *cache.SummaryCache) *SummaryService {
	return &SummaryService{db: db, loc: loc, cache: c}
}

// DailyTotals returns one entry per calendar day in [from, to], ascending,
// with zero totals for days that have no records. Averages divide by days
// that have at least one record. Either the whole range resolves or the call
// fails.
func (s *SummaryService) DailyTotals(ctx context.Context, userID uint, from, to time.Time) (*RangeSummary, error) {
	fromDay := dayStart(from, s.loc)
	toDay := dayStart(to, s.loc)
	if toDay.Before(fromDay) {
		return nil, ErrValidation
	}

	if s.cache == nil {
		return s.compute(ctx, userID, fromDay, toDay)
	}

	fromKey := fromDay.Format(dateLayout)
	toKey := toDay.Format(dateLayout)
	v, err, _ := s.sf.Do(fmt.Sprintf("%d:%s:%s", userID, fromKey, toKey), func() (interface{}, error) {
		if b, err := s.cache.Get(ctx, userID, fromKey, toKey); err == nil && b != nil {
			var cached RangeSummary
			if json.Unmarshal(b, &cached) == nil {
				return &cached, nil
			}
		}
		out, err := s.compute(ctx, userID, fromDay, toDay)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(out); err == nil {
			_ = s.cache.Set(ctx, userID, fromKey, toKey, b)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*RangeSummary), nil
}

func (s *SummaryService) compute(ctx context.Context, userID uint, fromDay, toDay time.Time) (*RangeSummary, error) {
	var rows []models.MealRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND occurred_at BETWEEN ? AND ?",
			userID, fromDay, dayEnd(toDay, s.loc)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	// bucket rows by yyyy-mm-dd in the reference timezone
	idx := map[string]*DayTotal{}
	for _, r := range rows {
		key := r.OccurredAt.In(s.loc).Format(dateLayout)
		dt, ok := idx[key]
		if !ok {
			dt = &DayTotal{Date: key}
			idx[key] = dt
		}
		dt.Proteins += r.Proteins
		dt.Calories += r.Calories
		dt.MealCount++
	}

	out := &RangeSummary{
		From: fromDay.Format(dateLayout),
		To:   toDay.Format(dateLayout),
		Days: []DayTotal{},
	}
	for d := fromDay; !d.After(toDay); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		if dt, ok := idx[key]; ok {
			out.Days = append(out.Days, *dt)
			out.TotalProteins += dt.Proteins
			out.TotalCalories += dt.Calories
			out.DaysWithRecords++
		} else {
			out.Days = append(out.Days, DayTotal{Date: key})
		}
	}
	if out.DaysWithRecords > 0 {
		out.AvgProteins = out.TotalProteins / float64(out.DaysWithRecords)
		out.AvgCalories = out.TotalCalories / float64(out.DaysWithRecords)
	}
	return out, nil
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dayEnd(t time.Time, loc *time.Location) time.Time {
	return dayStart(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
