package services

import (
	"math"

	"github.com/language-gems/analytics-service/internal/models"
)

type overrideKey struct {
	studentID      string
	assessmentType string
}

// buildOverrideIndex folds an oldest-first override list into a map
// where the most recent override per (student, assessment type) key
// wins.
func buildOverrideIndex(overrides []models.ScoreOverride) map[overrideKey]models.ScoreOverride {
	if len(overrides) == 0 {
		return nil
	}
	index := make(map[overrideKey]models.ScoreOverride, len(overrides))
	for _, o := range overrides {
		key := overrideKey{studentID: o.StudentID, assessmentType: o.AssessmentType}
		if existing, ok := index[key]; ok && existing.OverriddenAt.After(o.OverriddenAt) {
			continue
		}
		index[key] = o
	}
	return index
}

// ApplyOverrides merges teacher overrides into the canonical records.
// Matched records get the override score with the originals preserved;
// unmatched records pass through untouched. The operation is
// idempotent and order-independent across records.
func ApplyOverrides(records []models.NormalizedResult, overrides []models.ScoreOverride) []models.NormalizedResult {
	index := buildOverrideIndex(overrides)
	if index == nil {
		return records
	}

	out := make([]models.NormalizedResult, len(records))
	for i, rec := range records {
		o, ok := index[overrideKey{studentID: rec.StudentID, assessmentType: rec.AssessmentType}]
		if !ok {
			out[i] = rec
			continue
		}
		out[i] = applyOverride(rec, o)
	}
	return out
}

func applyOverride(rec models.NormalizedResult, o models.ScoreOverride) models.NormalizedResult {
	if !rec.IsOverridden {
		originalScore := rec.RawScore
		originalPct := rec.ScorePercentage
		rec.OriginalScore = &originalScore
		rec.OriginalPercentage = &originalPct
	}

	rec.IsOverridden = true
	rec.RawScore = o.OverrideScore
	rec.MaxScore = o.OverrideMaxScore
	if o.OverrideMaxScore > 0 {
		rec.ScorePercentage = clampPercent(math.Round(o.OverrideScore / o.OverrideMaxScore * 100))
	} else {
		rec.ScorePercentage = 0
	}
	return rec
}
