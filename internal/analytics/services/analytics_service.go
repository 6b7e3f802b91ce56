package services

import (
	"sync"
	"time"

	"github.com/architect/study-companion/internal/analytics/models"
	"github.com/architect/study-companion/internal/analytics/repository"
	"github.com/architect/study-companion/internal/common/errors"
	studyrepo "github.com/architect/study-companion/internal/study/repository"
)

// Folds assume they land on the most recent snapshot, so all snapshot writes
// for one user are serialized behind a per-user lock.
var (
	userLocksMu sync.Mutex
	userLocks   = make(map[string]*sync.Mutex)
)

func lockUser(userID string) *sync.Mutex {
	userLocksMu.Lock()
	defer userLocksMu.Unlock()

	lock := userLocks[userID]
	if lock == nil {
		lock = &sync.Mutex{}
		userLocks[userID] = lock
	}
	return lock
}

// GetAnalytics returns the stored snapshot, recomputing it when absent
func GetAnalytics(userID string, now time.Time) (*models.StudyAnalytics, error) {
	analytics, err := repository.GetSnapshot(userID)
	if err == nil {
		return analytics, nil
	}
	if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.CodeNotFound {
		return nil, err
	}

	return RefreshAnalytics(userID, now)
}

// RefreshAnalytics recomputes a user's snapshot from full history and persists it
func RefreshAnalytics(userID string, now time.Time) (*models.StudyAnalytics, error) {
	lock := lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	sessions, err := studyrepo.GetUserSessions(userID)
	if err != nil {
		return nil, err
	}

	quizzes, err := studyrepo.GetUserQuizResults(userID)
	if err != nil {
		return nil, err
	}

	analytics := ComputeAnalytics(userID, sessions, quizzes, now)
	if err := repository.SaveSnapshot(&analytics); err != nil {
		return nil, err
	}

	return &analytics, nil
}

// FoldSessionByID folds one stored session into the user's snapshot, seeding
// the snapshot from scratch when none exists yet
func FoldSessionByID(sessionID string, now time.Time) (*models.StudyAnalytics, error) {
	session, err := studyrepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	lock := lockUser(session.UserID)
	lock.Lock()
	defer lock.Unlock()

	current, err := repository.GetSnapshot(session.UserID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.CodeNotFound {
			return nil, err
		}
		fresh := models.NewStudyAnalytics(session.UserID, now)
		current = &fresh
	}

	next := FoldSession(*current, *session, now)
	if err := repository.SaveSnapshot(&next); err != nil {
		return nil, err
	}

	return &next, nil
}
