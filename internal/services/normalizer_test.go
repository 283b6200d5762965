package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/registry"
	"github.com/language-gems/analytics-service/internal/repositories"
)

func mustLookup(t *testing.T, at registry.AssessmentType) registry.TypeConfig {
	t.Helper()
	cfg, ok := registry.Lookup(at)
	assert.True(t, ok)
	return cfg
}

func TestNormalizeResult(t *testing.T) {
	completedAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	t.Run("stored percentage column wins over derived", func(t *testing.T) {
		cfg := mustLookup(t, registry.AQAReading)
		rec := NormalizeResult(repositories.RawResultRow{
			"id":                   "r1",
			"student_id":           "s1",
			"raw_score":            float64(10),
			"total_possible_score": float64(40),
			"percentage_score":     float64(30),
		}, cfg)

		assert.Equal(t, "s1", rec.StudentID)
		assert.Equal(t, float64(30), rec.ScorePercentage)
		assert.Equal(t, float64(10), rec.RawScore)
	})

	t.Run("percentage derived when no stored column", func(t *testing.T) {
		cfg := mustLookup(t, registry.ExamStyle)
		rec := NormalizeResult(repositories.RawResultRow{
			"id":         "r2",
			"student_id": "s1",
			"score":      float64(7),
			"max_score":  float64(20),
		}, cfg)

		assert.Equal(t, float64(35), rec.ScorePercentage)
	})

	t.Run("zero max score yields zero percentage", func(t *testing.T) {
		cfg := mustLookup(t, registry.ExamStyle)
		rec := NormalizeResult(repositories.RawResultRow{
			"id":        "r3",
			"score":     float64(7),
			"max_score": float64(0),
		}, cfg)

		assert.Equal(t, float64(0), rec.ScorePercentage)
	})

	t.Run("percentage clamps to bounds", func(t *testing.T) {
		cfg := mustLookup(t, registry.AQAReading)

		over := NormalizeResult(repositories.RawResultRow{"percentage_score": float64(250)}, cfg)
		assert.Equal(t, float64(100), over.ScorePercentage)

		under := NormalizeResult(repositories.RawResultRow{"percentage_score": float64(-5)}, cfg)
		assert.Equal(t, float64(0), under.ScorePercentage)
	})

	t.Run("student id falls back through aliases", func(t *testing.T) {
		cfg := mustLookup(t, registry.AQAReading)
		rec := NormalizeResult(repositories.RawResultRow{"user_id": "s9"}, cfg)
		assert.Equal(t, "s9", rec.StudentID)
	})

	t.Run("status from explicit column", func(t *testing.T) {
		cfg := mustLookup(t, registry.ReadingComprehension)

		done := NormalizeResult(repositories.RawResultRow{"status": "submitted"}, cfg)
		assert.Equal(t, models.StatusCompleted, done.Status)

		pending := NormalizeResult(repositories.RawResultRow{"status": "started"}, cfg)
		assert.Equal(t, models.StatusInProgress, pending.Status)
	})

	t.Run("status inferred from completed_at", func(t *testing.T) {
		cfg := mustLookup(t, registry.ExamStyle)

		done := NormalizeResult(repositories.RawResultRow{"completed_at": completedAt}, cfg)
		assert.Equal(t, models.StatusCompleted, done.Status)
		assert.NotNil(t, done.CompletedAt)

		pending := NormalizeResult(repositories.RawResultRow{}, cfg)
		assert.Equal(t, models.StatusInProgress, pending.Status)
		assert.Nil(t, pending.CompletedAt)
	})

	t.Run("numeric variants normalize", func(t *testing.T) {
		cfg := mustLookup(t, registry.ExamStyle)
		rec := NormalizeResult(repositories.RawResultRow{
			"score":              int64(9),
			"max_score":          "18",
			"time_spent_seconds": int64(420),
			"attempt_number":     int64(2),
		}, cfg)

		assert.Equal(t, float64(50), rec.ScorePercentage)
		assert.Equal(t, 420, rec.TimeSpentSeconds)
		assert.Equal(t, 2, rec.AttemptNumber)
	})

	t.Run("jsonb breakdown unmarshals", func(t *testing.T) {
		cfg := mustLookup(t, registry.AQAReading)
		rec := NormalizeResult(repositories.RawResultRow{
			"performance_by_question_type": []byte(`{"translation":{"total":8,"correct":5,"average_time_seconds":12.5}}`),
		}, cfg)

		assert.Len(t, rec.PerformanceByQuestionType, 1)
		assert.Equal(t, 8, rec.PerformanceByQuestionType["translation"].Total)
		assert.Equal(t, 5, rec.PerformanceByQuestionType["translation"].Correct)
	})

	t.Run("malformed breakdown degrades to nil", func(t *testing.T) {
		cfg := mustLookup(t, registry.AQAReading)
		rec := NormalizeResult(repositories.RawResultRow{
			"performance_by_question_type": []byte(`{"broken`),
		}, cfg)
		assert.Nil(t, rec.PerformanceByQuestionType)
	})

	t.Run("empty row yields a valid zeroed record", func(t *testing.T) {
		for _, cfg := range registry.All() {
			rec := NormalizeResult(repositories.RawResultRow{}, cfg)
			assert.Equal(t, string(cfg.Type), rec.AssessmentType)
			assert.Equal(t, float64(0), rec.ScorePercentage)
			assert.Equal(t, 1, rec.AttemptNumber)
			assert.False(t, rec.IsOverridden)
		}
	})

	t.Run("grade column captured when present", func(t *testing.T) {
		cfg := mustLookup(t, registry.AQAReading)

		graded := NormalizeResult(repositories.RawResultRow{"gcse_grade": int64(7)}, cfg)
		assert.NotNil(t, graded.GCSEGrade)
		assert.Equal(t, 7, *graded.GCSEGrade)

		ungraded := NormalizeResult(repositories.RawResultRow{}, cfg)
		assert.Nil(t, ungraded.GCSEGrade)
	})
}
