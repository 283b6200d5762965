package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/language-gems/analytics-service/internal/models"
)

// EventType represents the analytics integration events this service
// emits.
type EventType string

const (
	EventReportGenerated EventType = "analytics.report_generated"
)

// AnalyticsEvent is the envelope every published event travels in.
type AnalyticsEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// ReportGeneratedEvent summarizes a freshly computed assignment report
// for downstream consumers (dashboards, digests). It carries headline
// numbers only, never the full report body.
type ReportGeneratedEvent struct {
	AssignmentID        string                `json:"assignment_id"`
	AssignmentTitle     string                `json:"assignment_title"`
	ClassName           string                `json:"class_name"`
	Kind                models.AssignmentKind `json:"kind"`
	TotalStudents       int                   `json:"total_students"`
	CompletedStudents   int                   `json:"completed_students"`
	ClassSuccessScore   int                   `json:"class_success_score"`
	StudentsNeedingHelp int                   `json:"students_needing_help"`
	RankedWords         int                   `json:"ranked_words"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

// NewReportGeneratedEvent wraps a report summary in the standard
// envelope.
func NewReportGeneratedEvent(report *models.AssignmentReport) *AnalyticsEvent {
	data := ReportGeneratedEvent{
		AssignmentID:        report.Overview.AssignmentID,
		AssignmentTitle:     report.Overview.AssignmentTitle,
		ClassName:           report.Overview.ClassName,
		Kind:                report.Overview.Kind,
		TotalStudents:       report.Overview.TotalStudents,
		CompletedStudents:   report.Overview.CompletedStudents,
		ClassSuccessScore:   report.Overview.ClassSuccessScore,
		StudentsNeedingHelp: report.Overview.StudentsNeedingHelp,
		RankedWords:         len(report.WordRanking),
		GeneratedAt:         report.GeneratedAt,
	}

	return &AnalyticsEvent{
		ID:        uuid.New().String(),
		Type:      EventReportGenerated,
		Timestamp: time.Now().UTC(),
		Source:    "analytics-service",
		Version:   "1.0",
		Data:      data,
	}
}
