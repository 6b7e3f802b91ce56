package repository

import (
	"encoding/json"
	"time"

	"github.com/architect/study-companion/internal/analytics/models"
	"github.com/architect/study-companion/internal/common/database"
	"github.com/architect/study-companion/internal/common/errors"
	"gorm.io/gorm"
)

// GetSnapshot loads a user's persisted StudyAnalytics, if any
func GetSnapshot(userID string) (*models.StudyAnalytics, error) {
	var stored models.AnalyticsSnapshot
	result := database.DB.First(&stored, "user_id = ?", userID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("analytics snapshot")
		}
		return nil, errors.Internal("failed to fetch analytics snapshot", result.Error.Error())
	}

	var analytics models.StudyAnalytics
	if err := json.Unmarshal(stored.Data, &analytics); err != nil {
		return nil, errors.Internal("failed to decode analytics snapshot", err.Error())
	}

	return &analytics, nil
}

// SaveSnapshot upserts a user's StudyAnalytics
func SaveSnapshot(analytics *models.StudyAnalytics) error {
	data, err := json.Marshal(analytics)
	if err != nil {
		return errors.Internal("failed to encode analytics snapshot", err.Error())
	}

	stored := models.AnalyticsSnapshot{
		UserID:    analytics.UserID,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}

	result := database.DB.Save(&stored)
	if result.Error != nil {
		return errors.Internal("failed to save analytics snapshot", result.Error.Error())
	}

	return nil
}
