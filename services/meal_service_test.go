package services

import (
	"context"
	"testing"
	"time"

	"github.com/fredneedsausername/FreDiet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRecordRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)
	ctx := context.Background()

	at := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)
	rec, err := svc.AddRecord(ctx, 1, 30, 400, &at)
	require.NoError(t, err)
	require.NotZero(t, rec.ID)

	records, err := svc.ListRecords(ctx, 1, at, at)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 30.0, records[0].Proteins)
	assert.Equal(t, 400.0, records[0].Calories)
	assert.True(t, records[0].OccurredAt.Equal(at))
}

func TestAddRecordRejectsNegativeValues(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, 1, -1, 100, nil)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddRecord(ctx, 1, 10, -100, nil)
	require.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.MealRecord{}).Count(&count).Error)
	assert.Zero(t, count, "rejected records must persist nothing")
}

func TestAddRecordRejectsOutOfRangeValues(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, 1, 1000, 100, nil)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddRecord(ctx, 1, 10, 10000, nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddRecordDefaultsToClockInReferenceTimezone(t *testing.T) {
	db := newTestDB(t)
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	svc := NewMealService(db, rome, nil)
	// 23:30 UTC is already the next day in Rome
	svc.now = func() time.Time {
		return time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	}

	rec, err := svc.AddRecord(context.Background(), 1, 10, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", rec.OccurredAt.In(rome).Format("2006-01-02"))
}

func TestAddRecordRoundsProteinsToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)

	rec, err := svc.AddRecord(context.Background(), 1, 10.25, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 10.3, rec.Proteins)
}

func TestAddRecordRejectsZeroTimestamp(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)

	var zero time.Time
	_, err := svc.AddRecord(context.Background(), 1, 10, 100, &zero)
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteRecordNotOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)
	ctx := context.Background()

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rec, err := svc.AddRecord(ctx, 1, 30, 400, &at)
	require.NoError(t, err)

	err = svc.DeleteRecord(ctx, 2, rec.ID)
	require.ErrorIs(t, err, ErrNotFound)

	records, err := svc.ListRecords(ctx, 1, at, at)
	require.NoError(t, err)
	assert.Len(t, records, 1, "foreign delete must leave the record intact")
}

func TestDeleteRecordTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)
	ctx := context.Background()

	rec, err := svc.AddRecord(ctx, 1, 30, 400, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecord(ctx, 1, rec.ID))
	require.ErrorIs(t, svc.DeleteRecord(ctx, 1, rec.ID), ErrNotFound)
}

func TestListRecordsRangeAndOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, time.UTC, nil)
	ctx := context.Background()

	add := func(userID uint, day, hour int) {
		at := time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
		_, err := svc.AddRecord(ctx, userID, 10, 100, &at)
		require.NoError(t, err)
	}
	add(1, 9, 23)  // day before the range
	add(1, 10, 18) // in range, later
	add(1, 10, 8)  // in range, earlier
	add(1, 11, 0)  // in range, midnight boundary
	add(1, 12, 1)  // day after the range
	add(2, 10, 12) // someone else's

	from := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC) // time-of-day must not matter
	to := time.Date(2024, 3, 11, 4, 0, 0, 0, time.UTC)
	records, err := svc.ListRecords(ctx, 1, from, to)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].OccurredAt.Before(records[i-1].OccurredAt), "records must be ordered by occurred_at")
	}
	for _, r := range records {
		assert.Equal(t, uint(1), r.UserID)
	}
}
