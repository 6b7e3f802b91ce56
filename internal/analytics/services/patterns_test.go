package services

import (
	"testing"
	"time"

	study "github.com/architect/study-companion/internal/study/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Session start hours feed the preferred-hours frequency map
func TestComputeLearningPatternsPreferredHours(t *testing.T) {
	sessions := []study.StudySession{
		endedSession(time.Date(2025, 1, 1, 9, 15, 0, 0, time.UTC), 10, "Math"),
		endedSession(time.Date(2025, 1, 2, 9, 45, 0, 0, time.UTC), 10, "Math"),
		endedSession(time.Date(2025, 1, 2, 21, 0, 0, 0, time.UTC), 10, "Math"),
	}

	patterns := computeLearningPatterns(sessions, 0.8, aggNow)

	assert.Equal(t, 2, patterns.PreferredStudyHours[9])
	assert.Equal(t, 1, patterns.PreferredStudyHours[21])
}

// Tagged sessions yield measured per-style accuracy
func TestComputeStyleEffectivenessTagged(t *testing.T) {
	start := aggNow.Add(-time.Hour)
	visual := endedSession(start, 10, "Math",
		answer(start, true), answer(start, true), answer(start, false),
	)
	visual.Metadata.LearningStyle = "visual"

	reading := endedSession(start.Add(time.Hour), 10, "Math",
		answer(start, false), answer(start, false),
	)
	reading.Metadata.LearningStyle = "reading"

	effectiveness := computeStyleEffectiveness([]study.StudySession{visual, reading}, 0.5)

	require.Len(t, effectiveness, 2)
	assert.InDelta(t, 2.0/3.0, effectiveness["visual"], 1e-9)
	assert.Equal(t, 0.0, effectiveness["reading"])
}

// Untagged histories get the synthesized default styles scaled off overall accuracy
func TestComputeStyleEffectivenessFallback(t *testing.T) {
	start := aggNow.Add(-time.Hour)
	sessions := []study.StudySession{
		endedSession(start, 10, "Math", answer(start, true)),
	}

	effectiveness := computeStyleEffectiveness(sessions, 0.6)

	require.Len(t, effectiveness, 3)
	assert.InDelta(t, 0.63, effectiveness["visual"], 1e-6)
	assert.InDelta(t, 0.60, effectiveness["reading"], 1e-6)
	assert.InDelta(t, 0.57, effectiveness["kinesthetic"], 1e-6)
}

// Synthesized styles never exceed 1.0
func TestComputeStyleEffectivenessFallbackCapped(t *testing.T) {
	effectiveness := computeStyleEffectiveness(nil, 0.99)
	assert.Equal(t, 1.0, effectiveness["visual"])
}

// Topic interest blends frequency share, session length and activity volume
func TestComputeTopicInterest(t *testing.T) {
	start := aggNow.Add(-4 * time.Hour)

	// A maxed-out subject: all sessions, 60+ minute length, 50+ activities
	var activities []study.SessionActivity
	for i := 0; i < 60; i++ {
		activities = append(activities, cardView(start))
	}
	sessions := []study.StudySession{
		endedSession(start, 90, "Math", activities...),
	}

	interest := computeTopicInterest(sessions)

	require.Len(t, interest, 1)
	assert.InDelta(t, 1.0, interest["Math"], 1e-9)
}

func TestComputeTopicInterestSplit(t *testing.T) {
	start := aggNow.Add(-4 * time.Hour)
	sessions := []study.StudySession{
		endedSession(start, 30, "Math"),
		endedSession(start.Add(time.Hour), 30, "Math"),
		endedSession(start.Add(2*time.Hour), 30, "History"),
	}

	interest := computeTopicInterest(sessions)

	require.Len(t, interest, 2)
	// Math: 2/3 frequency share, 30/60 length, 0 activities
	assert.InDelta(t, 0.3*(2.0/3.0)+0.3*0.5, interest["Math"], 1e-9)
	assert.InDelta(t, 0.3*(1.0/3.0)+0.3*0.5, interest["History"], 1e-9)
	assert.Greater(t, interest["Math"], interest["History"])
}

// Mistake flags fire on repeated per-card errors, recent error clustering and
// slow incorrect answers
func TestDetectMistakePatterns(t *testing.T) {
	recent := aggNow.Add(-24 * time.Hour)
	old := aggNow.AddDate(0, 0, -20)

	wrongOn := func(at time.Time, cardID string, responseMs *int) study.SessionActivity {
		return study.SessionActivity{
			Type:           study.ActivityAnswer,
			Timestamp:      at,
			CardID:         cardID,
			WasCorrect:     boolPtr(false),
			ResponseTimeMs: responseMs,
		}
	}

	tests := []struct {
		name       string
		activities []study.SessionActivity
		expected   []string
	}{
		{
			name:       "no incorrect answers",
			activities: []study.SessionActivity{answer(old, true)},
			expected:   []string{},
		},
		{
			name: "repeated errors on two cards",
			activities: []study.SessionActivity{
				wrongOn(old, "card-a", nil), wrongOn(old, "card-a", nil),
				wrongOn(old, "card-b", nil), wrongOn(old, "card-b", nil),
			},
			expected: []string{"repeated errors on the same cards"},
		},
		{
			name: "errors clustered in the last week",
			activities: []study.SessionActivity{
				wrongOn(recent, "card-a", nil),
				wrongOn(recent, "card-b", nil),
				wrongOn(old, "card-c", nil),
			},
			expected: []string{"high error rate in recent sessions"},
		},
		{
			name: "slow incorrect answers",
			activities: []study.SessionActivity{
				wrongOn(old, "card-a", intPtr(15000)),
				wrongOn(old, "card-b", intPtr(2000)),
			},
			expected: []string{"slower response times on incorrect answers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := []study.StudySession{
				endedSession(old, 10, "Math", tt.activities...),
			}
			patterns := detectMistakePatterns(sessions, aggNow)
			assert.Equal(t, tt.expected, patterns)
		})
	}
}
