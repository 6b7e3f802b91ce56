package models

import (
	"time"

	"gorm.io/datatypes"
)

// Trend directions
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// StudyAnalytics is the full derived-statistics snapshot for one user.
// TotalAnswersGiven/TotalCorrectAnswers are raw counters kept alongside
// OverallAccuracy so incremental folds never compound rounding error.
// Field names match the persisted schema of the existing store.
type StudyAnalytics struct {
	UserID              string                        `json:"userId"`
	OverallAccuracy     float64                       `json:"overallAccuracy"`
	TotalStudyTime      float64                       `json:"totalStudyTime"` // minutes, ended sessions only
	TotalCardsStudied   int                           `json:"totalCardsStudied"`
	TotalQuizzesTaken   int                           `json:"totalQuizzesTaken"`
	CurrentStreak       int                           `json:"currentStreak"`
	LongestStreak       int                           `json:"longestStreak"`
	TotalAnswersGiven   int                           `json:"totalAnswersGiven"`
	TotalCorrectAnswers int                           `json:"totalCorrectAnswers"`
	SubjectPerformance  map[string]SubjectPerformance `json:"subjectPerformance"`
	LearningPatterns    LearningPatterns              `json:"learningPatterns"`
	PerformanceTrend    PerformanceTrend              `json:"performanceTrend"`
	LastUpdated         time.Time                     `json:"lastUpdated"`
}

// SubjectPerformance is the per-subject slice of the snapshot
type SubjectPerformance struct {
	Accuracy            float64             `json:"accuracy"`
	TotalCards          int                 `json:"totalCards"`
	TotalQuizzes        int                 `json:"totalQuizzes"`
	StudyTimeMinutes    float64             `json:"studyTimeMinutes"`
	LastStudied         time.Time           `json:"lastStudied"`
	RecentScores        []float64           `json:"recentScores"` // newest first, at most 10
	DifficultyBreakdown DifficultyBreakdown `json:"difficultyBreakdown"`
	AverageResponseTime float64             `json:"averageResponseTime"` // seconds
}

// DifficultyBreakdown buckets cards by their rated difficulty
type DifficultyBreakdown struct {
	Easy     int `json:"easy"`     // rating <= 2
	Moderate int `json:"moderate"` // rating <= 3
	Hard     int `json:"hard"`
}

// LearningPatterns captures habits derived from session history
type LearningPatterns struct {
	PreferredStudyHours        map[int]int        `json:"preferredStudyHours"` // hour of day -> session count
	LearningStyleEffectiveness map[string]float64 `json:"learningStyleEffectiveness"`
	TopicInterest              map[string]float64 `json:"topicInterest"` // subject -> 0..1 engagement score
	MistakePatterns            []string           `json:"mistakePatterns"`
}

// WeeklyStats is one trailing-week bucket of the performance trend
type WeeklyStats struct {
	WeekStart        time.Time `json:"weekStart"`
	Accuracy         float64   `json:"accuracy"`
	StudyTimeMinutes float64   `json:"studyTimeMinutes"`
	CardsStudied     int       `json:"cardsStudied"`
	QuizzesCompleted int       `json:"quizzesCompleted"`
}

// PerformanceTrend holds the trailing 4-week series (oldest first, no gaps)
// and the derived direction
type PerformanceTrend struct {
	Direction  string        `json:"direction"`
	ChangeRate float64       `json:"changeRate"` // percent per week
	WeeklyData []WeeklyStats `json:"weeklyData"`
}

// AnalyticsSnapshot is the persisted form of a StudyAnalytics record
type AnalyticsSnapshot struct {
	UserID    string         `gorm:"primaryKey" json:"user_id"`
	Data      datatypes.JSON `gorm:"type:json" json:"data"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewStudyAnalytics returns a zero-valued snapshot for a user with no history
func NewStudyAnalytics(userID string, now time.Time) StudyAnalytics {
	return StudyAnalytics{
		UserID:             userID,
		SubjectPerformance: make(map[string]SubjectPerformance),
		LearningPatterns: LearningPatterns{
			PreferredStudyHours:        make(map[int]int),
			LearningStyleEffectiveness: make(map[string]float64),
			TopicInterest:              make(map[string]float64),
			MistakePatterns:            []string{},
		},
		PerformanceTrend: PerformanceTrend{
			Direction:  TrendStable,
			WeeklyData: []WeeklyStats{},
		},
		LastUpdated: now,
	}
}
