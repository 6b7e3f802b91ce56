package repository

import (
	"testing"
	"time"

	"github.com/architect/study-companion/internal/analytics/models"
	"github.com/architect/study-companion/internal/common/database"
	"github.com/architect/study-companion/internal/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AnalyticsSnapshot{}))
	return db
}

// A saved snapshot round-trips through the blob column
func TestSnapshotRoundTrip(t *testing.T) {
	database.DB = setupTestDB(t)

	analytics := models.NewStudyAnalytics("user-1", time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC))
	analytics.TotalAnswersGiven = 10
	analytics.TotalCorrectAnswers = 7
	analytics.OverallAccuracy = 0.7
	require.NoError(t, SaveSnapshot(&analytics))

	loaded, err := GetSnapshot("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.TotalAnswersGiven)
	assert.Equal(t, 7, loaded.TotalCorrectAnswers)
	assert.Equal(t, 0.7, loaded.OverallAccuracy)
}

// A missing snapshot is a 404; a failing store is not
func TestGetSnapshotErrorDiscrimination(t *testing.T) {
	database.DB = setupTestDB(t)

	_, err := GetSnapshot("user-1")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = GetSnapshot("user-1")
	require.Error(t, err)
	appErr, ok = err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInternalError, appErr.Code)
}
