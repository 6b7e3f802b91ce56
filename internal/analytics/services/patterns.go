package services

import (
	"time"

	"github.com/architect/study-companion/internal/analytics/models"
	study "github.com/architect/study-companion/internal/study/models"
)

// Topic-interest blend weights and caps. The 30/30/40 split and the session
// caps are fixed tuning constants carried over from the original product.
const (
	interestFrequencyWeight = 0.3
	interestLengthWeight    = 0.3
	interestActivityWeight  = 0.4
	interestLengthCapMin    = 60.0
	interestActivityCap     = 50.0
)

// Synthesized style effectiveness when no session carries a style tag. The
// scale factors are arbitrary tuning constants; the fallback exists so the
// field is always populated for UI consumption.
const (
	fallbackVisualScale      = 1.05
	fallbackReadingScale     = 1.0
	fallbackKinestheticScale = 0.95
)

// Mistake-pattern thresholds
const (
	repeatedErrorMinCards    = 2
	repeatedErrorMinCount    = 2
	recentErrorWindow        = 7 * 24 * time.Hour
	recentErrorShare         = 0.5
	slowIncorrectThresholdMs = 10000
	slowIncorrectShare       = 0.3
)

// computeLearningPatterns derives study-habit insights from session history
func computeLearningPatterns(sessions []study.StudySession, overallAccuracy float64, now time.Time) models.LearningPatterns {
	patterns := models.LearningPatterns{
		PreferredStudyHours:        make(map[int]int),
		LearningStyleEffectiveness: make(map[string]float64),
		TopicInterest:              make(map[string]float64),
		MistakePatterns:            []string{},
	}

	for _, session := range sessions {
		patterns.PreferredStudyHours[session.StartTime.Hour()]++
	}

	patterns.LearningStyleEffectiveness = computeStyleEffectiveness(sessions, overallAccuracy)
	patterns.TopicInterest = computeTopicInterest(sessions)
	patterns.MistakePatterns = detectMistakePatterns(sessions, now)

	return patterns
}

// computeStyleEffectiveness measures per-style accuracy for sessions tagged
// with a learningStyle; untagged histories get synthesized defaults scaled
// off the overall accuracy
func computeStyleEffectiveness(sessions []study.StudySession, overallAccuracy float64) map[string]float64 {
	type tally struct{ answers, correct int }
	byStyle := make(map[string]*tally)

	for _, session := range sessions {
		style := session.Metadata.LearningStyle
		if style == "" {
			continue
		}
		t := byStyle[style]
		if t == nil {
			t = &tally{}
			byStyle[style] = t
		}
		for _, activity := range session.Activities {
			if activity.Type != study.ActivityAnswer {
				continue
			}
			t.answers++
			if activity.WasCorrect != nil && *activity.WasCorrect {
				t.correct++
			}
		}
	}

	effectiveness := make(map[string]float64)
	for style, t := range byStyle {
		effectiveness[style] = safeRatio(t.correct, t.answers)
	}

	if len(effectiveness) == 0 {
		effectiveness["visual"] = capScore(overallAccuracy * fallbackVisualScale)
		effectiveness["reading"] = capScore(overallAccuracy * fallbackReadingScale)
		effectiveness["kinesthetic"] = capScore(overallAccuracy * fallbackKinestheticScale)
	}

	return effectiveness
}

// computeTopicInterest blends session frequency, session length and activity
// volume into a 0..1 engagement score per subject
func computeTopicInterest(sessions []study.StudySession) map[string]float64 {
	type usage struct {
		count      int
		minutes    float64
		activities int
	}
	bySubject := make(map[string]*usage)
	totalSessions := 0

	for _, session := range sessions {
		if session.Subject == "" {
			continue
		}
		totalSessions++
		u := bySubject[session.Subject]
		if u == nil {
			u = &usage{}
			bySubject[session.Subject] = u
		}
		u.count++
		u.minutes += session.DurationMinutes()
		u.activities += len(session.Activities)
	}

	interest := make(map[string]float64)
	for subject, u := range bySubject {
		frequencyShare := float64(u.count) / float64(totalSessions)

		avgLength := u.minutes / float64(u.count)
		if avgLength > interestLengthCapMin {
			avgLength = interestLengthCapMin
		}

		avgActivities := float64(u.activities) / float64(u.count)
		if avgActivities > interestActivityCap {
			avgActivities = interestActivityCap
		}

		interest[subject] = interestFrequencyWeight*frequencyShare +
			interestLengthWeight*(avgLength/interestLengthCapMin) +
			interestActivityWeight*(avgActivities/interestActivityCap)
	}

	return interest
}

// detectMistakePatterns produces textual flags describing error habits
func detectMistakePatterns(sessions []study.StudySession, now time.Time) []string {
	incorrectByCard := make(map[string]int)
	var totalIncorrect, recentIncorrect, slowIncorrect int

	cutoff := now.Add(-recentErrorWindow)

	for _, session := range sessions {
		for _, activity := range session.Activities {
			if activity.Type != study.ActivityAnswer {
				continue
			}
			if activity.WasCorrect == nil || *activity.WasCorrect {
				continue
			}

			totalIncorrect++
			if activity.CardID != "" {
				incorrectByCard[activity.CardID]++
			}
			if activity.Timestamp.After(cutoff) {
				recentIncorrect++
			}
			if activity.ResponseTimeMs != nil && *activity.ResponseTimeMs > slowIncorrectThresholdMs {
				slowIncorrect++
			}
		}
	}

	patterns := []string{}
	if totalIncorrect == 0 {
		return patterns
	}

	repeatedCards := 0
	for _, count := range incorrectByCard {
		if count >= repeatedErrorMinCount {
			repeatedCards++
		}
	}
	if repeatedCards >= repeatedErrorMinCards {
		patterns = append(patterns, "repeated errors on the same cards")
	}

	if float64(recentIncorrect)/float64(totalIncorrect) > recentErrorShare {
		patterns = append(patterns, "high error rate in recent sessions")
	}

	if float64(slowIncorrect)/float64(totalIncorrect) > slowIncorrectShare {
		patterns = append(patterns, "slower response times on incorrect answers")
	}

	return patterns
}

func capScore(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
