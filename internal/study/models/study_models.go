package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity types recorded during a study session
const (
	ActivityCardView = "card_view"
	ActivityAnswer   = "answer"
	ActivityHintUsed = "hint_used"
	ActivitySkip     = "skip"
)

// SessionActivity is one immutable timestamped event within a study session.
// WasCorrect is only meaningful for answer activities; ResponseTimeMs is nil
// when the UI did not record a response time.
type SessionActivity struct {
	ID             uint              `gorm:"primaryKey" json:"-"`
	SessionID      string            `gorm:"index;not null" json:"-"`
	Type           string            `gorm:"not null" json:"type"`
	Timestamp      time.Time         `json:"timestamp"`
	CardID         string            `json:"cardId,omitempty"`
	WasCorrect     *bool             `json:"wasCorrect,omitempty"`
	ResponseTimeMs *int              `json:"responseTimeMs,omitempty"`
	Data           datatypes.JSONMap `gorm:"type:json" json:"data,omitempty"`
}

// SessionMetadata carries the known optional session annotations plus an
// untyped escape hatch for forward compatibility
type SessionMetadata struct {
	CardDifficulties map[string]int    `json:"cardDifficulties,omitempty"` // cardId -> difficulty rating
	LearningStyle    string            `json:"learningStyle,omitempty"`
	Extra            datatypes.JSONMap `json:"extra,omitempty"`
}

// StudySession is a bounded sequence of activities. EndTime stays nil while
// the session is in progress and is stamped exactly once on end.
type StudySession struct {
	ID         string            `gorm:"primaryKey" json:"id"`
	UserID     string            `gorm:"index;not null" json:"userId"`
	Subject    string            `gorm:"index" json:"subject,omitempty"`
	DeckID     string            `json:"deckId,omitempty"`
	StartTime  time.Time         `json:"startTime"`
	EndTime    *time.Time        `json:"endTime,omitempty"`
	Metadata   SessionMetadata   `gorm:"serializer:json" json:"metadata"`
	Activities []SessionActivity `gorm:"foreignKey:SessionID;references:ID" json:"activities"`
}

// DurationMinutes returns the session length, or 0 while still in progress
func (s *StudySession) DurationMinutes() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Minutes()
}

// QuizResult is a completed quiz record. Subject may be empty for records that
// predate explicit subject tagging; those are matched to subjects by deckId.
type QuizResult struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     string    `gorm:"index;not null" json:"userId"`
	DeckID     string    `json:"deckId"`
	Subject    string    `json:"subject,omitempty"`
	FinalScore float64   `json:"finalScore"`
	StartTime  time.Time `json:"startTime"`
}

// Request/Response Models

type StartSessionRequest struct {
	UserID   string          `json:"user_id" binding:"required"`
	Subject  string          `json:"subject"`
	DeckID   string          `json:"deck_id"`
	Metadata SessionMetadata `json:"metadata"`
}

type LogActivityRequest struct {
	Type           string            `json:"type" binding:"required,oneof=card_view answer hint_used skip"`
	CardID         string            `json:"card_id"`
	WasCorrect     *bool             `json:"was_correct"`
	ResponseTimeMs *int              `json:"response_time_ms"`
	Data           datatypes.JSONMap `json:"data"`
}

type RecordQuizRequest struct {
	UserID     string    `json:"user_id" binding:"required"`
	DeckID     string    `json:"deck_id" binding:"required"`
	Subject    string    `json:"subject"`
	FinalScore float64   `json:"final_score" binding:"gte=0,lte=100"`
	StartTime  time.Time `json:"start_time"`
}
