package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/registry"
	"github.com/language-gems/analytics-service/internal/repositories"
)

// NormalizeResult converts one raw row into the canonical record
// shape. The function is total: any row, however malformed, yields a
// valid record with ScorePercentage in [0,100]. Missing fields degrade
// to zero values, never to a panic or an error.
func NormalizeResult(row repositories.RawResultRow, cfg registry.TypeConfig) models.NormalizedResult {
	rec := models.NormalizedResult{
		ResultID:       rowString(row, "id"),
		AssessmentType: string(cfg.Type),
		AttemptNumber:  1,
	}

	for _, col := range cfg.StudentIDColumns {
		if v := rowString(row, col); v != "" {
			rec.StudentID = v
			break
		}
	}

	rec.RawScore = rowFloat(row, cfg.ScoreColumn)
	rec.MaxScore = rowFloat(row, cfg.MaxScoreColumn)
	rec.ScorePercentage = resolvePercentage(row, cfg, rec.RawScore, rec.MaxScore)

	if cfg.TimeColumn != "" {
		rec.TimeSpentSeconds = int(rowFloat(row, cfg.TimeColumn))
	}
	if cfg.CompletedAtColumn != "" {
		rec.CompletedAt = rowTime(row, cfg.CompletedAtColumn)
	}
	if cfg.AttemptColumn != "" {
		if n := int(rowFloat(row, cfg.AttemptColumn)); n > 0 {
			rec.AttemptNumber = n
		}
	}

	rec.Status = resolveStatus(row, cfg, rec.CompletedAt)

	if cfg.GradeColumn != "" {
		if v, ok := rowFloatOK(row, cfg.GradeColumn); ok {
			grade := int(v)
			rec.GCSEGrade = &grade
		}
	}

	rec.ExamBoard = rowString(row, cfg.ExamBoardColumn)
	rec.Tier = rowString(row, cfg.TierColumn)
	rec.Language = rowString(row, cfg.LanguageColumn)
	rec.PaperIdentifier = rowString(row, cfg.PaperIDColumn)
	rec.PaperTitle = rowString(row, cfg.PaperTitleColumn)

	rec.PerformanceByQuestionType = rowBreakdown(row, cfg.QuestionTypeBreakdownColumn)
	rec.PerformanceByTheme = rowBreakdown(row, cfg.ThemeBreakdownColumn)
	rec.PerformanceByTopic = rowBreakdown(row, cfg.TopicBreakdownColumn)

	return rec
}

// resolvePercentage prefers a stored percentage column and otherwise
// derives round(raw/max*100). max <= 0 yields 0; the result is always
// clamped to [0,100].
func resolvePercentage(row repositories.RawResultRow, cfg registry.TypeConfig, raw, max float64) float64 {
	for _, col := range cfg.PercentageColumns {
		if v, ok := rowFloatOK(row, col); ok {
			return clampPercent(v)
		}
	}
	if max <= 0 {
		return 0
	}
	return clampPercent(math.Round(raw / max * 100))
}

// resolveStatus prefers an explicit status column, then infers
// completion from the completion timestamp, and defaults to
// in_progress.
func resolveStatus(row repositories.RawResultRow, cfg registry.TypeConfig, completedAt *time.Time) models.ResultStatus {
	if cfg.StatusColumn != "" {
		if s := strings.ToLower(rowString(row, cfg.StatusColumn)); s != "" {
			switch s {
			case "completed", "complete", "submitted", "graded":
				return models.StatusCompleted
			default:
				return models.StatusInProgress
			}
		}
	}
	if completedAt != nil {
		return models.StatusCompleted
	}
	return models.StatusInProgress
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ===== ROW ACCESSORS =====
//
// Source rows arrive as map[string]any straight from the driver, so
// numerics may be int64, float64 or numeric strings, timestamps may be
// time.Time or RFC3339 strings, and jsonb columns may be []byte or
// string.

func rowString(row repositories.RawResultRow, col string) string {
	if col == "" {
		return ""
	}
	switch v := row[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func rowFloat(row repositories.RawResultRow, col string) float64 {
	v, _ := rowFloatOK(row, col)
	return v
}

func rowFloatOK(row repositories.RawResultRow, col string) (float64, bool) {
	if col == "" {
		return 0, false
	}
	switch v := row[col].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func rowTime(row repositories.RawResultRow, col string) *time.Time {
	if col == "" {
		return nil
	}
	switch v := row[col].(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		t := *v
		return &t
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
	}
	return nil
}

func rowBreakdown(row repositories.RawResultRow, col string) map[string]models.CategoryPerformance {
	if col == "" {
		return nil
	}

	var data []byte
	switch v := row[col].(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var breakdown map[string]models.CategoryPerformance
	if err := json.Unmarshal(data, &breakdown); err != nil || len(breakdown) == 0 {
		return nil
	}
	return breakdown
}
