package models

import (
	"time"
)

// Grade is a user's self-reported recall quality for one review
type Grade string

const (
	GradeAgain Grade = "again"
	GradeHard  Grade = "hard"
	GradeGood  Grade = "good"
	GradeEasy  Grade = "easy"
)

// Valid reports whether g is one of the four known grades
func (g Grade) Valid() bool {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return true
	}
	return false
}

// ReviewState holds the spaced-repetition scheduling state for one studied
// item. Field names match the persisted schema of the existing store.
type ReviewState struct {
	ID             uint       `gorm:"primaryKey" json:"-"`
	UserID         string     `gorm:"index:idx_review_user_card,unique;not null" json:"userId"`
	CardID         string     `gorm:"index:idx_review_user_card,unique;not null" json:"cardId"`
	Ease           float64    `json:"ease"`
	Interval       int        `json:"interval"` // days
	Reps           int        `json:"reps"`
	DueAt          time.Time  `json:"dueAt"`
	LastGrade      Grade      `json:"lastGrade,omitempty"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
}

// NewReviewState returns the state an item carries the first time it is studied
func NewReviewState(userID, cardID string, now time.Time) ReviewState {
	return ReviewState{
		UserID:   userID,
		CardID:   cardID,
		Ease:     2.5,
		Interval: 1,
		Reps:     0,
		DueAt:    now.AddDate(0, 0, 1),
	}
}

// Request/Response Models

type ApplyGradeRequest struct {
	UserID string `json:"user_id" binding:"required"`
	CardID string `json:"card_id" binding:"required"`
	Grade  string `json:"grade" binding:"required,oneof=again hard good easy"`
}
