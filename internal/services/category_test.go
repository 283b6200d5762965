package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/language-gems/analytics-service/internal/models"
)

func TestComputeCategoryBreakdown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("nil when no breakdown data and no grades", func(t *testing.T) {
		records := []models.NormalizedResult{
			{StudentID: "s1", ScorePercentage: 80},
			{StudentID: "s2", ScorePercentage: 55},
		}
		assert.Nil(t, computeCategoryBreakdown(records, now))
		assert.Nil(t, computeCategoryBreakdown(nil, now))
	})

	t.Run("buckets sum across records", func(t *testing.T) {
		records := []models.NormalizedResult{
			{PerformanceByQuestionType: map[string]models.CategoryPerformance{
				"translation": {Total: 12, Correct: 6, AverageTimeSeconds: 10},
			}},
			{PerformanceByQuestionType: map[string]models.CategoryPerformance{
				"translation": {Total: 8, Correct: 4, AverageTimeSeconds: 20},
			}},
		}

		breakdown := computeCategoryBreakdown(records, now)
		assert.NotNil(t, breakdown)
		assert.Len(t, breakdown.ByQuestionType, 1)

		bucket := breakdown.ByQuestionType[0]
		assert.Equal(t, "translation", bucket.Label)
		assert.Equal(t, 20, bucket.Attempts)
		assert.Equal(t, 10, bucket.Correct)
		assert.Equal(t, 50, bucket.Accuracy)
		assert.Equal(t, float64(15), bucket.AverageTimeSeconds)
	})

	t.Run("buckets sort by attempt volume descending", func(t *testing.T) {
		records := []models.NormalizedResult{
			{PerformanceByTheme: map[string]models.CategoryPerformance{
				"school":  {Total: 3, Correct: 1},
				"travel":  {Total: 10, Correct: 9},
				"weather": {Total: 6, Correct: 2},
			}},
		}

		breakdown := computeCategoryBreakdown(records, now)
		labels := make([]string, 0, 3)
		for _, b := range breakdown.ByTheme {
			labels = append(labels, b.Label)
		}
		assert.Equal(t, []string{"travel", "weather", "school"}, labels)
	})

	t.Run("three maps stay independent", func(t *testing.T) {
		records := []models.NormalizedResult{
			{
				PerformanceByQuestionType: map[string]models.CategoryPerformance{"gap-fill": {Total: 4, Correct: 3}},
				PerformanceByTopic:        map[string]models.CategoryPerformance{"food": {Total: 5, Correct: 1}},
			},
		}

		breakdown := computeCategoryBreakdown(records, now)
		assert.Len(t, breakdown.ByQuestionType, 1)
		assert.Empty(t, breakdown.ByTheme)
		assert.Len(t, breakdown.ByTopic, 1)
	})

	t.Run("grade histogram alone produces a breakdown", func(t *testing.T) {
		g7, g5 := 7, 5
		records := []models.NormalizedResult{
			{GCSEGrade: &g7},
			{GCSEGrade: &g7},
			{GCSEGrade: &g5},
		}

		breakdown := computeCategoryBreakdown(records, now)
		assert.NotNil(t, breakdown)
		assert.Equal(t, map[int]int{7: 2, 5: 1}, breakdown.GradeDistribution)
		assert.Empty(t, breakdown.ByQuestionType)
	})

	t.Run("accuracy rounds half up", func(t *testing.T) {
		records := []models.NormalizedResult{
			{PerformanceByTopic: map[string]models.CategoryPerformance{"colors": {Total: 3, Correct: 1}}},
		}
		breakdown := computeCategoryBreakdown(records, now)
		assert.Equal(t, 33, breakdown.ByTopic[0].Accuracy)
	})
}
