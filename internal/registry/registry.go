// Package registry holds the static assessment type registry: for each
// assessment family, where its results live and what its columns mean.
// Source tables were written by unrelated subsystems and agree on
// almost nothing, so every column semantic is spelled out here instead
// of being guessed at per call site.
package registry

import "sort"

type AssessmentType string

const (
	ReadingComprehension AssessmentType = "reading_comprehension"
	AQAReading           AssessmentType = "aqa_reading"
	AQAListening         AssessmentType = "aqa_listening"
	AQAWriting           AssessmentType = "aqa_writing"
	AQADictation         AssessmentType = "aqa_dictation"
	AQASpeaking          AssessmentType = "aqa_speaking"
	FourSkills           AssessmentType = "four_skills"
	ExamStyle            AssessmentType = "exam_style"
)

// TypeConfig describes one result table. Alias slices exist because
// the schemas disagree on identifier columns (student_id vs user_id)
// and on whether a stored percentage exists at all.
type TypeConfig struct {
	Type        AssessmentType
	DisplayName string

	TableName     string
	ResultColumns []string

	// Field aliases, tried in order.
	StudentIDColumns  []string
	PercentageColumns []string

	ScoreColumn       string
	MaxScoreColumn    string
	TimeColumn        string
	StatusColumn      string
	CompletedAtColumn string
	AttemptColumn     string

	// Optional jsonb breakdown columns.
	QuestionTypeBreakdownColumn string
	ThemeBreakdownColumn        string
	TopicBreakdownColumn        string
	GradeColumn                 string

	// Optional descriptive columns.
	ExamBoardColumn  string
	PaperIDColumn    string
	PaperTitleColumn string
	TierColumn       string
	LanguageColumn   string

	// AQA-family tables key results by an assessment instance rather
	// than the assignment itself; BridgeTable maps assignment id to
	// instance ids and BridgeResultKey is the result table's column
	// holding the instance id.
	BridgeTable     string
	BridgeResultKey string
}

var configs = map[AssessmentType]TypeConfig{
	ReadingComprehension: {
		Type:              ReadingComprehension,
		DisplayName:       "Reading Comprehension",
		TableName:         "reading_comprehension_results",
		ResultColumns:     []string{"id", "user_id", "assignment_id", "score", "correct_answers", "total_questions", "time_spent_seconds", "status", "attempt_number", "completed_at"},
		StudentIDColumns:  []string{"user_id", "student_id"},
		PercentageColumns: []string{"score"},
		ScoreColumn:       "correct_answers",
		MaxScoreColumn:    "total_questions",
		TimeColumn:        "time_spent_seconds",
		StatusColumn:      "status",
		CompletedAtColumn: "completed_at",
		AttemptColumn:     "attempt_number",
	},
	AQAReading: {
		Type:                        AQAReading,
		DisplayName:                 "GCSE Reading",
		TableName:                   "aqa_reading_results",
		ResultColumns:               []string{"id", "student_id", "assessment_id", "assignment_id", "raw_score", "total_possible_score", "percentage_score", "time_spent_seconds", "status", "attempt_number", "completed_at", "performance_by_question_type", "performance_by_theme", "performance_by_topic", "gcse_grade", "exam_board", "tier", "language"},
		StudentIDColumns:            []string{"student_id", "user_id"},
		PercentageColumns:           []string{"percentage_score"},
		ScoreColumn:                 "raw_score",
		MaxScoreColumn:              "total_possible_score",
		TimeColumn:                  "time_spent_seconds",
		StatusColumn:                "status",
		CompletedAtColumn:           "completed_at",
		AttemptColumn:               "attempt_number",
		QuestionTypeBreakdownColumn: "performance_by_question_type",
		ThemeBreakdownColumn:        "performance_by_theme",
		TopicBreakdownColumn:        "performance_by_topic",
		GradeColumn:                 "gcse_grade",
		ExamBoardColumn:             "exam_board",
		TierColumn:                  "tier",
		LanguageColumn:              "language",
		BridgeTable:                 "aqa_reading_assessments",
		BridgeResultKey:             "assessment_id",
	},
	AQAListening: {
		Type:                        AQAListening,
		DisplayName:                 "GCSE Listening",
		TableName:                   "aqa_listening_results",
		ResultColumns:               []string{"id", "student_id", "assessment_id", "assignment_id", "raw_score", "total_possible_score", "percentage_score", "time_spent_seconds", "status", "attempt_number", "completed_at", "performance_by_question_type", "gcse_grade", "exam_board", "tier", "language"},
		StudentIDColumns:            []string{"student_id", "user_id"},
		PercentageColumns:           []string{"percentage_score"},
		ScoreColumn:                 "raw_score",
		MaxScoreColumn:              "total_possible_score",
		TimeColumn:                  "time_spent_seconds",
		StatusColumn:                "status",
		CompletedAtColumn:           "completed_at",
		AttemptColumn:               "attempt_number",
		QuestionTypeBreakdownColumn: "performance_by_question_type",
		GradeColumn:                 "gcse_grade",
		ExamBoardColumn:             "exam_board",
		TierColumn:                  "tier",
		LanguageColumn:              "language",
		BridgeTable:                 "aqa_listening_assessments",
		BridgeResultKey:             "assessment_id",
	},
	AQAWriting: {
		Type:              AQAWriting,
		DisplayName:       "GCSE Writing",
		TableName:         "aqa_writing_results",
		ResultColumns:     []string{"id", "student_id", "assessment_id", "assignment_id", "total_score", "max_score", "percentage_score", "time_spent_seconds", "status", "attempt_number", "completed_at", "exam_board", "tier", "language"},
		StudentIDColumns:  []string{"student_id", "user_id"},
		PercentageColumns: []string{"percentage_score"},
		ScoreColumn:       "total_score",
		MaxScoreColumn:    "max_score",
		TimeColumn:        "time_spent_seconds",
		StatusColumn:      "status",
		CompletedAtColumn: "completed_at",
		AttemptColumn:     "attempt_number",
		ExamBoardColumn:   "exam_board",
		TierColumn:        "tier",
		LanguageColumn:    "language",
		BridgeTable:       "aqa_writing_assessments",
		BridgeResultKey:   "assessment_id",
	},
	AQADictation: {
		Type:              AQADictation,
		DisplayName:       "Dictation",
		TableName:         "aqa_dictation_results",
		ResultColumns:     []string{"id", "student_id", "assessment_id", "assignment_id", "raw_score", "total_possible_score", "percentage_score", "time_spent_seconds", "status", "attempt_number", "completed_at", "tier", "language"},
		StudentIDColumns:  []string{"student_id", "user_id"},
		PercentageColumns: []string{"percentage_score"},
		ScoreColumn:       "raw_score",
		MaxScoreColumn:    "total_possible_score",
		TimeColumn:        "time_spent_seconds",
		StatusColumn:      "status",
		CompletedAtColumn: "completed_at",
		AttemptColumn:     "attempt_number",
		TierColumn:        "tier",
		LanguageColumn:    "language",
		BridgeTable:       "aqa_dictation_assessments",
		BridgeResultKey:   "assessment_id",
	},
	AQASpeaking: {
		Type:              AQASpeaking,
		DisplayName:       "GCSE Speaking",
		TableName:         "aqa_speaking_results",
		ResultColumns:     []string{"id", "student_id", "assessment_id", "assignment_id", "raw_score", "total_possible_score", "percentage_score", "time_spent_seconds", "status", "attempt_number", "completed_at", "tier", "language"},
		StudentIDColumns:  []string{"student_id", "user_id"},
		PercentageColumns: []string{"percentage_score"},
		ScoreColumn:       "raw_score",
		MaxScoreColumn:    "total_possible_score",
		TimeColumn:        "time_spent_seconds",
		StatusColumn:      "status",
		CompletedAtColumn: "completed_at",
		AttemptColumn:     "attempt_number",
		TierColumn:        "tier",
		LanguageColumn:    "language",
		BridgeTable:       "aqa_speaking_assessments",
		BridgeResultKey:   "assessment_id",
	},
	FourSkills: {
		Type:                        FourSkills,
		DisplayName:                 "Four Skills",
		TableName:                   "four_skills_results",
		ResultColumns:               []string{"id", "user_id", "assignment_id", "raw_score", "max_score", "percentage_score", "time_spent_seconds", "status", "attempt_number", "completed_at", "performance_by_question_type", "language"},
		StudentIDColumns:            []string{"user_id", "student_id"},
		PercentageColumns:           []string{"percentage_score"},
		ScoreColumn:                 "raw_score",
		MaxScoreColumn:              "max_score",
		TimeColumn:                  "time_spent_seconds",
		StatusColumn:                "status",
		CompletedAtColumn:           "completed_at",
		AttemptColumn:               "attempt_number",
		QuestionTypeBreakdownColumn: "performance_by_question_type",
		LanguageColumn:              "language",
	},
	ExamStyle: {
		Type:                        ExamStyle,
		DisplayName:                 "Exam Style Practice",
		TableName:                   "exam_style_results",
		ResultColumns:               []string{"id", "student_id", "assignment_id", "score", "max_score", "time_spent_seconds", "completed_at", "attempt_number", "performance_by_theme", "performance_by_topic", "gcse_grade"},
		StudentIDColumns:            []string{"student_id", "user_id"},
		PercentageColumns:           nil, // derived from score/max_score
		ScoreColumn:                 "score",
		MaxScoreColumn:              "max_score",
		TimeColumn:                  "time_spent_seconds",
		CompletedAtColumn:           "completed_at",
		AttemptColumn:               "attempt_number",
		ThemeBreakdownColumn:        "performance_by_theme",
		TopicBreakdownColumn:        "performance_by_topic",
		GradeColumn:                 "gcse_grade",
	},
}

// Lookup returns the config for a type.
func Lookup(t AssessmentType) (TypeConfig, bool) {
	cfg, ok := configs[t]
	return cfg, ok
}

// All returns every registered config in a stable order.
func All() []TypeConfig {
	out := make([]TypeConfig, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Types returns every registered type identifier in a stable order.
func Types() []AssessmentType {
	out := make([]AssessmentType, 0, len(configs))
	for t := range configs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
