package services

import (
	"time"

	"github.com/architect/study-companion/internal/common/errors"
	"github.com/architect/study-companion/internal/study/models"
	"github.com/architect/study-companion/internal/study/repository"
	"github.com/google/uuid"
)

// StartSession opens a new study session for a user
func StartSession(req *models.StartSessionRequest, now time.Time) (*models.StudySession, error) {
	session := &models.StudySession{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Subject:   req.Subject,
		DeckID:    req.DeckID,
		StartTime: now,
		Metadata:  req.Metadata,
	}

	if err := repository.CreateSession(session); err != nil {
		return nil, err
	}

	return session, nil
}

// EndSession stamps a session's end time. Ending twice is a conflict.
func EndSession(sessionID string, now time.Time) (*models.StudySession, error) {
	session, err := repository.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.EndTime != nil {
		return nil, errors.Conflict("session already ended")
	}

	session.EndTime = &now
	if err := repository.UpdateSession(session); err != nil {
		return nil, err
	}

	return session, nil
}

// LogActivity appends one activity to an in-progress session
func LogActivity(sessionID string, req *models.LogActivityRequest, now time.Time) (*models.SessionActivity, error) {
	session, err := repository.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.EndTime != nil {
		return nil, errors.Conflict("session already ended")
	}

	activity := &models.SessionActivity{
		SessionID:      session.ID,
		Type:           req.Type,
		Timestamp:      now,
		CardID:         req.CardID,
		WasCorrect:     req.WasCorrect,
		ResponseTimeMs: req.ResponseTimeMs,
		Data:           req.Data,
	}

	if err := repository.AppendActivity(activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// RecordQuiz stores a completed quiz result
func RecordQuiz(req *models.RecordQuizRequest, now time.Time) (*models.QuizResult, error) {
	startTime := req.StartTime
	if startTime.IsZero() {
		startTime = now
	}

	quiz := &models.QuizResult{
		UserID:     req.UserID,
		DeckID:     req.DeckID,
		Subject:    req.Subject,
		FinalScore: req.FinalScore,
		StartTime:  startTime,
	}

	if err := repository.CreateQuizResult(quiz); err != nil {
		return nil, err
	}

	return quiz, nil
}
