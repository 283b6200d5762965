package services

import (
	"sort"
	"time"

	"github.com/language-gems/analytics-service/internal/models"
)

// computeCategoryBreakdown folds the per-record breakdown maps into
// three independent bucket lists plus a grade histogram. Returns nil
// when the record set carries no breakdown data and no grades, so
// callers can tell "no data" from "all zero".
func computeCategoryBreakdown(records []models.NormalizedResult, generatedAt time.Time) *models.CategoryBreakdown {
	byQuestionType := newBucketAccumulator()
	byTheme := newBucketAccumulator()
	byTopic := newBucketAccumulator()
	grades := make(map[int]int)

	for _, rec := range records {
		byQuestionType.addAll(rec.PerformanceByQuestionType)
		byTheme.addAll(rec.PerformanceByTheme)
		byTopic.addAll(rec.PerformanceByTopic)
		if rec.GCSEGrade != nil {
			grades[*rec.GCSEGrade]++
		}
	}

	if byQuestionType.empty() && byTheme.empty() && byTopic.empty() && len(grades) == 0 {
		return nil
	}

	return &models.CategoryBreakdown{
		ByQuestionType:    byQuestionType.buckets(),
		ByTheme:           byTheme.buckets(),
		ByTopic:           byTopic.buckets(),
		GradeDistribution: grades,
		GeneratedAt:       generatedAt,
	}
}

type bucketAccumulator struct {
	totals map[string]*bucketTotals
}

type bucketTotals struct {
	attempts    int
	correct     int
	timeSum     float64
	timeSamples int
}

func newBucketAccumulator() *bucketAccumulator {
	return &bucketAccumulator{totals: make(map[string]*bucketTotals)}
}

func (a *bucketAccumulator) addAll(perf map[string]models.CategoryPerformance) {
	for label, p := range perf {
		t, ok := a.totals[label]
		if !ok {
			t = &bucketTotals{}
			a.totals[label] = t
		}
		t.attempts += p.Total
		t.correct += p.Correct
		if p.AverageTimeSeconds > 0 {
			t.timeSum += p.AverageTimeSeconds
			t.timeSamples++
		}
	}
}

func (a *bucketAccumulator) empty() bool {
	return len(a.totals) == 0
}

// buckets materializes the accumulated totals sorted by attempt volume
// descending. The stable sort runs over alphabetical label order, so
// equal volumes keep a deterministic order.
func (a *bucketAccumulator) buckets() []models.CategoryBucket {
	labels := make([]string, 0, len(a.totals))
	for label := range a.totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]models.CategoryBucket, 0, len(labels))
	for _, label := range labels {
		t := a.totals[label]
		b := models.CategoryBucket{
			Label:    label,
			Attempts: t.attempts,
			Correct:  t.correct,
			Accuracy: ratioPercent(t.correct, t.attempts),
		}
		if t.timeSamples > 0 {
			b.AverageTimeSeconds = t.timeSum / float64(t.timeSamples)
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Attempts > out[j].Attempts
	})
	return out
}
