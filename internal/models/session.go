package models

import "time"

// GameSession is one play-through of a vocabulary game, written by the
// gameplay subsystem. WordsCorrect/WordsAttempted are per-session word
// counters, distinct from gem rarity.
type GameSession struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid"`
	StudentID        string     `json:"student_id" gorm:"type:uuid;index"`
	AssignmentID     string     `json:"assignment_id" gorm:"type:uuid;index"`
	DurationSeconds  int        `json:"duration_seconds"`
	CompletionStatus string     `json:"completion_status" gorm:"size:32"`
	WordsCorrect     int        `json:"words_correct"`
	WordsAttempted   int        `json:"words_attempted"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at"`
}

func (GameSession) TableName() string {
	return "enhanced_game_sessions"
}

// Completed reports whether the session finished, either by an explicit
// status or by carrying an end timestamp.
func (s GameSession) Completed() bool {
	return s.CompletionStatus == "completed" || s.EndedAt != nil
}

// GrammarAttempt is one grammar drill run, written by the skills
// subsystem.
type GrammarAttempt struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	StudentID       string     `json:"student_id" gorm:"type:uuid;index"`
	AssignmentID    string     `json:"assignment_id" gorm:"type:uuid;index"`
	CorrectCount    int        `json:"correct_count"`
	TotalCount      int        `json:"total_count"`
	DurationSeconds int        `json:"duration_seconds"`
	CompletedAt     *time.Time `json:"completed_at"`
}

func (GrammarAttempt) TableName() string {
	return "grammar_practice_attempts"
}
