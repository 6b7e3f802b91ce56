package repository

import (
	"github.com/architect/study-companion/internal/common/database"
	"github.com/architect/study-companion/internal/common/errors"
	"github.com/architect/study-companion/internal/study/models"
)

// CreateQuizResult persists a completed quiz record
func CreateQuizResult(quiz *models.QuizResult) error {
	result := database.DB.Create(quiz)
	if result.Error != nil {
		return errors.Internal("failed to record quiz result", result.Error.Error())
	}
	return nil
}

// GetUserQuizResults retrieves all quiz records for a user, oldest first
func GetUserQuizResults(userID string) ([]models.QuizResult, error) {
	var quizzes []models.QuizResult

	result := database.DB.
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&quizzes)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch quiz results", result.Error.Error())
	}

	return quizzes, nil
}
