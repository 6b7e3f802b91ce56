package services

import (
	"sort"
	"time"

	"github.com/architect/study-companion/internal/analytics/models"
	study "github.com/architect/study-companion/internal/study/models"
)

// Trend tuning constants
const (
	trendWeeksAnalyzed  = 4
	trendDirectionDelta = 0.05
)

// computeWeeklyTrend partitions the trailing 4 weeks into fixed 7-day buckets
// and compares the first and second half of the per-week accuracy series.
// Weeks without activity still emit zero-valued entries so charts have no
// gaps; the series is always oldest first.
func computeWeeklyTrend(sessions []study.StudySession, quizzes []study.QuizResult, now time.Time) models.PerformanceTrend {
	weekly := make([]models.WeeklyStats, 0, trendWeeksAnalyzed)

	for i := 0; i < trendWeeksAnalyzed; i++ {
		end := now.AddDate(0, 0, -7*i)
		start := now.AddDate(0, 0, -7*(i+1))

		stats := models.WeeklyStats{WeekStart: start}
		var answers, correct int

		for _, session := range sessions {
			if session.StartTime.Before(start) || !session.StartTime.Before(end) {
				continue
			}
			stats.StudyTimeMinutes += session.DurationMinutes()
			for _, activity := range session.Activities {
				switch activity.Type {
				case study.ActivityCardView:
					stats.CardsStudied++
				case study.ActivityAnswer:
					answers++
					if activity.WasCorrect != nil && *activity.WasCorrect {
						correct++
					}
				}
			}
		}

		for _, quiz := range quizzes {
			if !quiz.StartTime.Before(start) && quiz.StartTime.Before(end) {
				stats.QuizzesCompleted++
			}
		}

		stats.Accuracy = safeRatio(correct, answers)
		weekly = append(weekly, stats)
	}

	// Buckets were built newest first; the series is published oldest first
	for i, j := 0, len(weekly)-1; i < j; i, j = i+1, j-1 {
		weekly[i], weekly[j] = weekly[j], weekly[i]
	}

	trend := models.PerformanceTrend{
		Direction:  models.TrendStable,
		WeeklyData: weekly,
	}

	half := len(weekly) / 2
	firstMean := meanAccuracy(weekly[:half])
	secondMean := meanAccuracy(weekly[half:])

	switch {
	case secondMean-firstMean > trendDirectionDelta:
		trend.Direction = models.TrendImproving
	case firstMean-secondMean > trendDirectionDelta:
		trend.Direction = models.TrendDeclining
	}

	if firstMean > 0 {
		trend.ChangeRate = ((secondMean - firstMean) / firstMean * 100) / trendWeeksAnalyzed
	}

	return trend
}

func meanAccuracy(weeks []models.WeeklyStats) float64 {
	if len(weeks) == 0 {
		return 0
	}
	var sum float64
	for _, week := range weeks {
		sum += week.Accuracy
	}
	return sum / float64(len(weeks))
}

// computeStreaks walks the distinct calendar dates with at least one session.
// The current streak is only alive when the most recent study date is today
// or yesterday; the longest streak scans the whole history.
func computeStreaks(sessions []study.StudySession, now time.Time) (current, longest int) {
	seen := make(map[time.Time]bool)
	for _, session := range sessions {
		seen[calendarDate(session.StartTime)] = true
	}
	if len(seen) == 0 {
		return 0, 0
	}

	dates := make([]time.Time, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	today := calendarDate(now)
	yesterday := today.AddDate(0, 0, -1)

	if dates[0].Equal(today) || dates[0].Equal(yesterday) {
		current = 1
		for i := 1; i < len(dates); i++ {
			if dates[i-1].Sub(dates[i]) != 24*time.Hour {
				break
			}
			current++
		}
	}

	longest = 1
	run := 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].Sub(dates[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return current, longest
}

// calendarDate truncates a timestamp to its UTC calendar day
func calendarDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
