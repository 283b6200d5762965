package models

import "time"

// Derived analytics shapes. All of these are computed fresh per
// request and owned by the request scope; nothing here is persisted.

type AssignmentOverview struct {
	AssignmentID        string         `json:"assignment_id"`
	AssignmentTitle     string         `json:"assignment_title"`
	ClassName           string         `json:"class_name"`
	Kind                AssignmentKind `json:"kind"`
	TotalStudents       int            `json:"total_students"`
	CompletedStudents   int            `json:"completed_students"`
	InProgressStudents  int            `json:"in_progress_students"`
	NotStartedStudents  int            `json:"not_started_students"`
	CompletionRate      int            `json:"completion_rate"`
	AverageTimeMinutes  int            `json:"average_time_minutes"`
	ClassSuccessScore   int            `json:"class_success_score"`
	StudentsNeedingHelp int            `json:"students_needing_help"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// CategoryBucket is one aggregated category with accuracy =
// round(correct/attempts*100). Buckets are ordered by attempt volume
// descending.
type CategoryBucket struct {
	Label              string  `json:"label"`
	Attempts           int     `json:"attempts"`
	Correct            int     `json:"correct"`
	Accuracy           int     `json:"accuracy"`
	AverageTimeSeconds float64 `json:"average_time_seconds"`
}

// CategoryBreakdown is nil-valued as a whole when the record set holds
// no breakdown data and no grades, so callers can tell "no data" from
// "all zero".
type CategoryBreakdown struct {
	ByQuestionType    []CategoryBucket `json:"by_question_type"`
	ByTheme           []CategoryBucket `json:"by_theme"`
	ByTopic           []CategoryBucket `json:"by_topic"`
	GradeDistribution map[int]int      `json:"grade_distribution"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

type InsightLevel string

const (
	InsightSuccess InsightLevel = "success"
	InsightMonitor InsightLevel = "monitor"
	InsightReview  InsightLevel = "review"
	InsightProblem InsightLevel = "problem"
)

// WordDifficulty is one entry of the confidence-tiered ranking.
// WeakRetrievalRate is weak/total over gem events. It measures
// retrieval weakness, not incorrect answers, since every gem event
// records a correct answer.
type WordDifficulty struct {
	Rank                 int          `json:"rank"`
	WordText             string       `json:"word_text"`
	TranslationText      string       `json:"translation_text"`
	TotalAttempts        int          `json:"total_attempts"`
	WeakRetrievalCount   int          `json:"weak_retrieval_count"`
	StrongRetrievalCount int          `json:"strong_retrieval_count"`
	WeakRetrievalRate    int          `json:"weak_retrieval_rate"`
	ActionableInsight    string       `json:"actionable_insight"`
	InsightLevel         InsightLevel `json:"insight_level"`
	IsCustomVocabulary   bool         `json:"is_custom_vocabulary"`
}

type InterventionFlag string

const (
	FlagHighFailure   InterventionFlag = "high_failure"
	FlagUnusuallyLong InterventionFlag = "unusually_long"
	FlagStoppedMidway InterventionFlag = "stopped_midway"
)

// StudentProgress carries both gem-domain metrics: WeakRetrievalPercent
// counts common+uncommon events, FailureRate counts only common ones
// (strict failures). The intervention rules key off FailureRate.
type StudentProgress struct {
	StudentID            string            `json:"student_id"`
	StudentName          string            `json:"student_name"`
	Status               ResultStatus      `json:"status"`
	TimeSpentMinutes     int               `json:"time_spent_minutes"`
	SuccessScore         int               `json:"success_score"`
	WeakRetrievalPercent int               `json:"weak_retrieval_percent"`
	FailureRate          int               `json:"failure_rate"`
	KeyStruggleWords     []string          `json:"key_struggle_words"`
	InterventionFlag     *InterventionFlag `json:"intervention_flag"`
	LastAttempt          *time.Time        `json:"last_attempt"`
}

// StudentWordStruggle describes one student's history with a single
// vocabulary item.
type StudentWordStruggle struct {
	StudentID               string    `json:"student_id"`
	StudentName             string    `json:"student_name"`
	Exposures               int       `json:"exposures"`
	StrongRetrievals        int       `json:"strong_retrievals"`
	WeakRetrievals          int       `json:"weak_retrievals"`
	WeakRetrievalRate       int       `json:"weak_retrieval_rate"`
	LastAttempt             time.Time `json:"last_attempt"`
	RecommendedIntervention string    `json:"recommended_intervention"`
}

// AssignmentReport bundles the four analytics views computed from one
// shared request scope.
type AssignmentReport struct {
	Overview    *AssignmentOverview `json:"overview"`
	Categories  *CategoryBreakdown  `json:"categories,omitempty"`
	WordRanking []WordDifficulty    `json:"word_ranking"`
	Roster      []StudentProgress   `json:"roster"`
	GeneratedAt time.Time           `json:"generated_at"`
}
