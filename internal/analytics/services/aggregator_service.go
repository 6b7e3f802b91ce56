package services

import (
	"sort"
	"time"

	"github.com/architect/study-companion/internal/analytics/models"
	study "github.com/architect/study-companion/internal/study/models"
)

// Difficulty bucket thresholds for rated cards
const (
	easyDifficultyMax     = 2
	moderateDifficultyMax = 3
)

// ComputeAnalytics derives a full StudyAnalytics snapshot from a user's
// complete session and quiz history. It is deterministic for identical inputs
// and the injected now; empty history yields a zero-valued snapshot.
func ComputeAnalytics(userID string, sessions []study.StudySession, quizzes []study.QuizResult, now time.Time) models.StudyAnalytics {
	analytics := models.NewStudyAnalytics(userID, now)

	// Overall metrics
	for _, session := range sessions {
		analytics.TotalStudyTime += session.DurationMinutes()
		for _, activity := range session.Activities {
			switch activity.Type {
			case study.ActivityCardView:
				analytics.TotalCardsStudied++
			case study.ActivityAnswer:
				analytics.TotalAnswersGiven++
				if activity.WasCorrect != nil && *activity.WasCorrect {
					analytics.TotalCorrectAnswers++
				}
			}
		}
	}
	analytics.TotalQuizzesTaken = len(quizzes)
	analytics.OverallAccuracy = safeRatio(analytics.TotalCorrectAnswers, analytics.TotalAnswersGiven)

	analytics.SubjectPerformance = computeSubjectPerformance(sessions, quizzes)
	analytics.LearningPatterns = computeLearningPatterns(sessions, analytics.OverallAccuracy, now)
	analytics.PerformanceTrend = computeWeeklyTrend(sessions, quizzes, now)
	analytics.CurrentStreak, analytics.LongestStreak = computeStreaks(sessions, now)

	return analytics
}

// computeSubjectPerformance groups sessions by subject and derives each
// subject's slice of the stats. Sessions without a subject are simply
// excluded from the map; their activities still count toward overall totals.
func computeSubjectPerformance(sessions []study.StudySession, quizzes []study.QuizResult) map[string]models.SubjectPerformance {
	groups := make(map[string][]study.StudySession)
	for _, session := range sessions {
		if session.Subject == "" {
			continue
		}
		groups[session.Subject] = append(groups[session.Subject], session)
	}

	performance := make(map[string]models.SubjectPerformance, len(groups))
	for subject, group := range groups {
		perf := models.SubjectPerformance{}
		deckIDs := make(map[string]bool)

		var answers, correct int
		var responseSumMs, responseCount int

		for _, session := range group {
			perf.StudyTimeMinutes += session.DurationMinutes()
			if session.StartTime.After(perf.LastStudied) {
				perf.LastStudied = session.StartTime
			}
			if session.DeckID != "" {
				deckIDs[session.DeckID] = true
			}

			for _, rating := range session.Metadata.CardDifficulties {
				switch {
				case rating <= easyDifficultyMax:
					perf.DifficultyBreakdown.Easy++
				case rating <= moderateDifficultyMax:
					perf.DifficultyBreakdown.Moderate++
				default:
					perf.DifficultyBreakdown.Hard++
				}
			}

			for _, activity := range session.Activities {
				switch activity.Type {
				case study.ActivityCardView:
					perf.TotalCards++
				case study.ActivityAnswer:
					answers++
					if activity.WasCorrect != nil && *activity.WasCorrect {
						correct++
					}
					if activity.ResponseTimeMs != nil {
						responseSumMs += *activity.ResponseTimeMs
						responseCount++
					}
				}
			}
		}

		perf.Accuracy = safeRatio(correct, answers)
		if responseCount > 0 {
			perf.AverageResponseTime = float64(responseSumMs) / float64(responseCount) / 1000.0
		}

		// Match quiz records to the subject. Records tagged with a subject
		// match by tag; untagged records (which predate subject tagging)
		// match when their deck belongs to one of this subject's sessions.
		var matched []study.QuizResult
		for _, quiz := range quizzes {
			if quiz.Subject != "" {
				if quiz.Subject == subject {
					matched = append(matched, quiz)
				}
			} else if deckIDs[quiz.DeckID] {
				matched = append(matched, quiz)
			}
		}
		perf.TotalQuizzes = len(matched)

		sort.Slice(matched, func(i, j int) bool {
			return matched[i].StartTime.After(matched[j].StartTime)
		})
		for i := 0; i < len(matched) && i < 10; i++ {
			perf.RecentScores = append(perf.RecentScores, matched[i].FinalScore)
		}

		performance[subject] = perf
	}

	return performance
}

func safeRatio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
