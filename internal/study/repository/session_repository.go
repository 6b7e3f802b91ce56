package repository

import (
	"github.com/architect/study-companion/internal/common/database"
	"github.com/architect/study-companion/internal/common/errors"
	"github.com/architect/study-companion/internal/study/models"
	"gorm.io/gorm"
)

// CreateSession persists a newly started session
func CreateSession(session *models.StudySession) error {
	result := database.DB.Create(session)
	if result.Error != nil {
		return errors.Internal("failed to create session", result.Error.Error())
	}
	return nil
}

// GetSession retrieves one session with its activities
func GetSession(sessionID string) (*models.StudySession, error) {
	var session models.StudySession
	result := database.DB.Preload("Activities").First(&session, "id = ?", sessionID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("session")
		}
		return nil, errors.Internal("failed to fetch session", result.Error.Error())
	}
	return &session, nil
}

// UpdateSession saves session field changes
func UpdateSession(session *models.StudySession) error {
	result := database.DB.Save(session)
	if result.Error != nil {
		return errors.Internal("failed to update session", result.Error.Error())
	}
	return nil
}

// AppendActivity records one activity under a session
func AppendActivity(activity *models.SessionActivity) error {
	result := database.DB.Create(activity)
	if result.Error != nil {
		return errors.Internal("failed to record activity", result.Error.Error())
	}
	return nil
}

// GetUserSessions retrieves all sessions for a user with activities, oldest first
func GetUserSessions(userID string) ([]models.StudySession, error) {
	var sessions []models.StudySession

	result := database.DB.
		Preload("Activities").
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&sessions)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch sessions", result.Error.Error())
	}

	return sessions, nil
}
