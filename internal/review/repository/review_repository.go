package repository

import (
	"time"

	"github.com/architect/study-companion/internal/common/database"
	"github.com/architect/study-companion/internal/common/errors"
	"github.com/architect/study-companion/internal/review/models"
	"gorm.io/gorm"
)

// GetReviewState retrieves scheduling state for one item, seeding defaults for
// items that have never been studied
func GetReviewState(userID, cardID string, now time.Time) (*models.ReviewState, error) {
	var state models.ReviewState
	result := database.DB.Where("user_id = ? AND card_id = ?", userID, cardID).First(&state)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			fresh := models.NewReviewState(userID, cardID, now)
			return &fresh, nil
		}
		return nil, errors.Internal("failed to fetch review state", result.Error.Error())
	}
	return &state, nil
}

// SaveReviewState upserts the scheduling state for an item
func SaveReviewState(state *models.ReviewState) error {
	result := database.DB.Save(state)
	if result.Error != nil {
		return errors.Internal("failed to save review state", result.Error.Error())
	}
	return nil
}

// GetDueStates retrieves states due at or before the given time, soonest first
func GetDueStates(userID string, now time.Time, limit int) ([]*models.ReviewState, error) {
	var states []*models.ReviewState

	result := database.DB.
		Where("user_id = ? AND due_at <= ?", userID, now).
		Order("due_at ASC").
		Limit(limit).
		Find(&states)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch due states", result.Error.Error())
	}

	return states, nil
}

// CountDueStates counts items currently awaiting review
func CountDueStates(userID string, now time.Time) (int64, error) {
	var count int64
	result := database.DB.Model(&models.ReviewState{}).
		Where("user_id = ? AND due_at <= ?", userID, now).
		Count(&count)
	if result.Error != nil {
		return 0, errors.Internal("failed to count due states", result.Error.Error())
	}
	return count, nil
}
