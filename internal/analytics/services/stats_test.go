package services

import (
	"testing"
	"time"

	study "github.com/architect/study-companion/internal/study/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The weekly series always has exactly 4 entries in chronological order,
// even for a user with zero sessions
func TestComputeWeeklyTrendSeriesCompleteness(t *testing.T) {
	trend := computeWeeklyTrend(nil, nil, aggNow)

	require.Len(t, trend.WeeklyData, 4)
	for i := 1; i < len(trend.WeeklyData); i++ {
		assert.True(t, trend.WeeklyData[i].WeekStart.After(trend.WeeklyData[i-1].WeekStart))
	}
	for _, week := range trend.WeeklyData {
		assert.Equal(t, 0.0, week.Accuracy)
		assert.Equal(t, 0, week.CardsStudied)
		assert.Equal(t, 0, week.QuizzesCompleted)
	}
	assert.Equal(t, "stable", trend.Direction)
	assert.Equal(t, 0.0, trend.ChangeRate)
}

// sessionWithAccuracy builds an ended session whose answers hit the given ratio
func sessionWithAccuracy(start time.Time, correct, total int) study.StudySession {
	var activities []study.SessionActivity
	for i := 0; i < total; i++ {
		activities = append(activities, answer(start, i < correct))
	}
	return endedSession(start, 10, "Math", activities...)
}

func TestComputeWeeklyTrendDirection(t *testing.T) {
	tests := []struct {
		name              string
		oldCorrect        int // accuracy of the two older weeks, out of 10
		recentCorrect     int // accuracy of the two newer weeks, out of 10
		expectedDirection string
	}{
		{"improving", 2, 9, "improving"},
		{"declining", 9, 2, "declining"},
		{"stable", 5, 5, "stable"},
		{"within threshold", 50, 51, "stable"}, // 0.50 vs 0.51, delta below 0.05
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 10
			if tt.oldCorrect > 10 {
				total = 100
			}
			sessions := []study.StudySession{
				sessionWithAccuracy(aggNow.AddDate(0, 0, -25), tt.oldCorrect, total),
				sessionWithAccuracy(aggNow.AddDate(0, 0, -17), tt.oldCorrect, total),
				sessionWithAccuracy(aggNow.AddDate(0, 0, -10), tt.recentCorrect, total),
				sessionWithAccuracy(aggNow.AddDate(0, 0, -2), tt.recentCorrect, total),
			}

			trend := computeWeeklyTrend(sessions, nil, aggNow)
			assert.Equal(t, tt.expectedDirection, trend.Direction)
		})
	}
}

// Change rate is the percent difference between halves spread over the weeks analyzed
func TestComputeWeeklyTrendChangeRate(t *testing.T) {
	sessions := []study.StudySession{
		sessionWithAccuracy(aggNow.AddDate(0, 0, -25), 5, 10),
		sessionWithAccuracy(aggNow.AddDate(0, 0, -17), 5, 10),
		sessionWithAccuracy(aggNow.AddDate(0, 0, -10), 10, 10),
		sessionWithAccuracy(aggNow.AddDate(0, 0, -2), 10, 10),
	}

	trend := computeWeeklyTrend(sessions, nil, aggNow)

	// halves: 0.5 -> 1.0 is +100%, over 4 weeks = 25%/week
	assert.InDelta(t, 25.0, trend.ChangeRate, 1e-9)
	assert.Equal(t, "improving", trend.Direction)
}

// Quizzes are bucketed by start time alongside sessions
func TestComputeWeeklyTrendQuizBuckets(t *testing.T) {
	quizzes := []study.QuizResult{
		{DeckID: "d", FinalScore: 80, StartTime: aggNow.AddDate(0, 0, -2)},
		{DeckID: "d", FinalScore: 60, StartTime: aggNow.AddDate(0, 0, -9)},
		{DeckID: "d", FinalScore: 60, StartTime: aggNow.AddDate(0, 0, -40)}, // outside window
	}

	trend := computeWeeklyTrend(nil, quizzes, aggNow)

	require.Len(t, trend.WeeklyData, 4)
	assert.Equal(t, 1, trend.WeeklyData[3].QuizzesCompleted)
	assert.Equal(t, 1, trend.WeeklyData[2].QuizzesCompleted)
	assert.Equal(t, 0, trend.WeeklyData[1].QuizzesCompleted)
	assert.Equal(t, 0, trend.WeeklyData[0].QuizzesCompleted)
}

func sessionOn(day time.Time) study.StudySession {
	return endedSession(day, 10, "Math")
}

// Three consecutive study days ending today give a current streak of 3
func TestComputeStreaksConsecutiveRun(t *testing.T) {
	now := time.Date(2025, 1, 3, 20, 0, 0, 0, time.UTC)
	sessions := []study.StudySession{
		sessionOn(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)),
	}

	current, longest := computeStreaks(sessions, now)
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)
}

// A gap breaks the current streak but the longest run is remembered
func TestComputeStreaksGapResetsCurrent(t *testing.T) {
	now := time.Date(2025, 1, 5, 20, 0, 0, 0, time.UTC)
	sessions := []study.StudySession{
		sessionOn(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)), // no session on the 4th
	}

	current, longest := computeStreaks(sessions, now)
	assert.Equal(t, 1, current)
	assert.Equal(t, 3, longest)
}

// The current streak survives when the last study day was yesterday
func TestComputeStreaksYesterdayStillCounts(t *testing.T) {
	now := time.Date(2025, 1, 4, 8, 0, 0, 0, time.UTC)
	sessions := []study.StudySession{
		sessionOn(time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)),
	}

	current, longest := computeStreaks(sessions, now)
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)
}

// An older last study day means no current streak at all
func TestComputeStreaksStale(t *testing.T) {
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	sessions := []study.StudySession{
		sessionOn(time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)),
	}

	current, longest := computeStreaks(sessions, now)
	assert.Equal(t, 0, current)
	assert.Equal(t, 2, longest)
}

// Multiple sessions on one calendar day count as a single streak day
func TestComputeStreaksDistinctDates(t *testing.T) {
	now := time.Date(2025, 1, 3, 20, 0, 0, 0, time.UTC)
	sessions := []study.StudySession{
		sessionOn(time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 1, 3, 15, 0, 0, 0, time.UTC)),
	}

	current, longest := computeStreaks(sessions, now)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, longest)
}
