package services

import (
	"math"
	"time"

	"github.com/architect/study-companion/internal/review/models"
)

// SM-2 tuning constants
const (
	MinEase = 1.3
	MaxEase = 2.5

	againEasePenalty = 0.2
	hardEasePenalty  = 0.15
	easyEaseBonus    = 0.15

	hardIntervalFactor = 1.2
	easyIntervalBonus  = 1.3
)

// ApplyGrade computes the next scheduling state for an item after one review.
// It never mutates its input and is total over all four grades: an unknown
// grade is treated as a failed review. Corrupted ease values from the store
// are re-clamped on the way out, so the update is self-healing.
func ApplyGrade(state models.ReviewState, grade models.Grade, now time.Time) models.ReviewState {
	next := state

	switch grade {
	case models.GradeHard:
		next.Interval = round(float64(state.Interval) * hardIntervalFactor)
		next.Ease = state.Ease - hardEasePenalty
		next.Reps = state.Reps + 1

	case models.GradeGood:
		// The first two successful reviews get fixed intervals so the ease
		// multiplier can't produce degenerate short gaps.
		switch state.Reps {
		case 0:
			next.Interval = 1
		case 1:
			next.Interval = 6
		default:
			next.Interval = round(float64(state.Interval) * state.Ease)
		}
		next.Reps = state.Reps + 1

	case models.GradeEasy:
		next.Interval = round(float64(state.Interval) * state.Ease * easyIntervalBonus)
		next.Ease = state.Ease + easyEaseBonus
		next.Reps = state.Reps + 1

	default: // again, or anything unrecognized
		grade = models.GradeAgain
		next.Interval = 1
		next.Ease = state.Ease - againEasePenalty
		next.Reps = 0
	}

	if next.Ease < MinEase {
		next.Ease = MinEase
	}
	if next.Ease > MaxEase {
		next.Ease = MaxEase
	}
	if next.Interval < 1 {
		next.Interval = 1
	}

	next.DueAt = now.AddDate(0, 0, next.Interval)
	next.LastGrade = grade
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt

	return next
}

func round(v float64) int {
	return int(math.Round(v))
}
