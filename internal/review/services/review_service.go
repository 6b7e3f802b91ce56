package services

import (
	"time"

	"github.com/architect/study-companion/internal/review/models"
	"github.com/architect/study-companion/internal/review/repository"
)

// GradeCard applies a grade to one item's stored state and persists the result
func GradeCard(userID, cardID string, grade models.Grade, now time.Time) (*models.ReviewState, error) {
	state, err := repository.GetReviewState(userID, cardID, now)
	if err != nil {
		return nil, err
	}

	next := ApplyGrade(*state, grade, now)
	next.ID = state.ID

	if err := repository.SaveReviewState(&next); err != nil {
		return nil, err
	}

	return &next, nil
}

// GetDueCards lists items due for review at or before now
func GetDueCards(userID string, now time.Time, limit int) ([]*models.ReviewState, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return repository.GetDueStates(userID, now, limit)
}
