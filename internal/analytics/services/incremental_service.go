package services

import (
	"time"

	"github.com/architect/study-companion/internal/analytics/models"
	study "github.com/architect/study-companion/internal/study/models"
)

// foldPriorWeight estimates the prior sample size behind an existing subject
// slice as totalCards x 0.8. The 0.8 is a fixed heuristic carried over from
// the original product.
const foldPriorWeight = 0.8

// FoldSession folds one session into a previously computed snapshot without
// re-scanning full history. Raw answer counters are incremented and accuracy
// re-derived from them, so repeated folds cannot drift. Streaks are only ever
// extended here; discovering a missed day is left to full recomputation.
// The weekly trend is likewise recompute-only and passes through untouched.
func FoldSession(current models.StudyAnalytics, session study.StudySession, now time.Time) models.StudyAnalytics {
	next := current
	next.SubjectPerformance = make(map[string]models.SubjectPerformance, len(current.SubjectPerformance)+1)
	for subject, perf := range current.SubjectPerformance {
		next.SubjectPerformance[subject] = perf
	}

	var answers, correct, cards int
	var responseSumMs, responseCount int
	for _, activity := range session.Activities {
		switch activity.Type {
		case study.ActivityCardView:
			cards++
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

	next.TotalAnswersGiven += answers
	next.TotalCorrectAnswers += correct
	next.OverallAccuracy = safeRatio(next.TotalCorrectAnswers, next.TotalAnswersGiven)
	next.TotalCardsStudied += cards
	next.TotalStudyTime += session.DurationMinutes()

	if session.Subject != "" {
		next.SubjectPerformance[session.Subject] = foldSubject(
			next.SubjectPerformance[session.Subject], session,
			answers, correct, cards, responseSumMs, responseCount,
		)
	}

	// Streak extension only looks at "did this session happen today"; the
	// previous snapshot's lastUpdated date tells us whether today was
	// already counted.
	if calendarDate(session.StartTime).Equal(calendarDate(now)) {
		switch {
		case next.CurrentStreak == 0:
			next.CurrentStreak = 1
		case !calendarDate(current.LastUpdated).Equal(calendarDate(now)):
			next.CurrentStreak++
		}
		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}
	}

	next.LastUpdated = now
	return next
}

// foldSubject seeds or merges the per-subject slice for the folded session.
// An existing slice is blended against the session's figures, weighting the
// prior by its estimated sample size.
func foldSubject(perf models.SubjectPerformance, session study.StudySession,
	answers, correct, cards, responseSumMs, responseCount int) models.SubjectPerformance {

	sessionAccuracy := safeRatio(correct, answers)
	var sessionResponse float64
	if responseCount > 0 {
		sessionResponse = float64(responseSumMs) / float64(responseCount) / 1000.0
	}

	priorWeight := float64(perf.TotalCards) * foldPriorWeight

	if answers > 0 {
		perf.Accuracy = (perf.Accuracy*priorWeight + sessionAccuracy*float64(answers)) /
			(priorWeight + float64(answers))
	}
	if responseCount > 0 {
		perf.AverageResponseTime = (perf.AverageResponseTime*priorWeight + sessionResponse*float64(responseCount)) /
			(priorWeight + float64(responseCount))
	}

	perf.TotalCards += cards
	perf.StudyTimeMinutes += session.DurationMinutes()
	if session.StartTime.After(perf.LastStudied) {
		perf.LastStudied = session.StartTime
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

	return perf
}
