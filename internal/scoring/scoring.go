// Package scoring provides the pure score derivation functions shared by
// the compiler and validators: banding, health descriptors, trajectory,
// and score aggregation. All functions are total and side-effect free.
package scoring

import (
	"math"

	"idm-compiler/internal/idm"
)

// Band maps a 0-100 score to its performance tier. Boundaries are
// inclusive on the lower bound of each band: exactly 80 is Excellence,
// exactly 60 is Proficiency, exactly 40 is Attention.
func Band(score float64) idm.Band {
	switch {
	case score >= 80:
		return idm.Excellence
	case score >= 60:
		return idm.Proficiency
	case score >= 40:
		return idm.Attention
	}
	return idm.Critical
}

// HealthDescriptor maps an overall health score to its descriptor text.
func HealthDescriptor(score float64) string {
	switch {
	case score >= 85:
		return "Excellent Health"
	case score >= 75:
		return "Good Health"
	case score >= 65:
		return "Fair Health"
	case score >= 50:
		return "Needs Improvement"
	}
	return "Critical Condition"
}

// TrajectoryFrom derives a trajectory from current vs previous scores.
// A missing previous score yields Flat; the delta must exceed 5 points in
// either direction before the trajectory moves off Flat.
func TrajectoryFrom(current float64, previous *float64) idm.Trajectory {
	if previous == nil {
		return idm.Flat
	}
	delta := current - *previous
	if delta > 5 {
		return idm.Improving
	}
	if delta < -5 {
		return idm.Declining
	}
	return idm.Flat
}

// ChapterScore is the arithmetic mean of dimension scores, rounded to one
// decimal place. An empty input yields 0.0.
func ChapterScore(dimensionScores []float64) float64 {
	return meanRound1(dimensionScores)
}

// OverallHealthScore is the arithmetic mean of chapter scores, rounded to
// one decimal place. An empty input yields 0.0.
func OverallHealthScore(chapterScores []float64) float64 {
	return meanRound1(chapterScores)
}

func meanRound1(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return Round1(total / float64(len(scores)))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp bounds a score to the 0-100 range.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
