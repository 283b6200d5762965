package models

import "time"

type ResultStatus string

const (
	StatusCompleted  ResultStatus = "completed"
	StatusInProgress ResultStatus = "in_progress"
	StatusNotStarted ResultStatus = "not_started"
)

// CategoryPerformance is one bucket of a per-category breakdown map
// (by question type, theme or topic) as stored in the source tables'
// jsonb columns.
type CategoryPerformance struct {
	Total              int     `json:"total"`
	Correct            int     `json:"correct"`
	AverageTimeSeconds float64 `json:"average_time_seconds"`
}

// NormalizedResult is the canonical record every raw result row is
// converted into before aggregation. One record exists per
// (assignment, student, assessment type, attempt). Derived, request
// scoped, never persisted.
type NormalizedResult struct {
	ResultID        string       `json:"result_id"`
	StudentID       string       `json:"student_id"`
	StudentName     string       `json:"student_name"`
	AssessmentType  string       `json:"assessment_type"`
	ExamBoard       string       `json:"exam_board,omitempty"`
	PaperIdentifier string       `json:"paper_identifier,omitempty"`
	PaperTitle      string       `json:"paper_title,omitempty"`
	Tier            string       `json:"tier,omitempty"`
	Language        string       `json:"language,omitempty"`
	AttemptNumber   int          `json:"attempt_number"`
	Status          ResultStatus `json:"status"`

	// ScorePercentage is always in [0,100]: either a stored percentage
	// column or round(raw/max*100), with max<=0 treated as zero.
	ScorePercentage float64 `json:"score_percentage"`
	RawScore        float64 `json:"raw_score"`
	MaxScore        float64 `json:"max_score"`

	TimeSpentSeconds int        `json:"time_spent_seconds"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	GCSEGrade        *int       `json:"gcse_grade,omitempty"`

	PerformanceByQuestionType map[string]CategoryPerformance `json:"performance_by_question_type,omitempty"`
	PerformanceByTheme        map[string]CategoryPerformance `json:"performance_by_theme,omitempty"`
	PerformanceByTopic        map[string]CategoryPerformance `json:"performance_by_topic,omitempty"`

	// Override bookkeeping: originals survive an applied override.
	IsOverridden       bool     `json:"is_overridden"`
	OriginalScore      *float64 `json:"original_score,omitempty"`
	OriginalPercentage *float64 `json:"original_percentage,omitempty"`
}

// ScoreOverride is a teacher-entered manual score replacement. The
// only teacher-authored entity this engine reads. For one
// (assignment, student, assessment type) key the most recent override
// by OverriddenAt wins.
type ScoreOverride struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid"`
	AssignmentID     string    `json:"assignment_id" gorm:"type:uuid;index:idx_override_key"`
	StudentID        string    `json:"student_id" gorm:"type:uuid;index:idx_override_key"`
	AssessmentType   string    `json:"assessment_type" gorm:"size:64;index:idx_override_key"`
	OverrideScore    float64   `json:"override_score"`
	OverrideMaxScore float64   `json:"override_max_score"`
	OriginalScore    float64   `json:"original_score"`
	OriginalMaxScore float64   `json:"original_max_score"`
	OverriddenBy     string    `json:"overridden_by" gorm:"type:uuid"`
	OverriddenAt     time.Time `json:"overridden_at" gorm:"index"`
}

func (ScoreOverride) TableName() string {
	return "assessment_score_overrides"
}
