package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type AssignmentKind string

const (
	KindAssessment     AssignmentKind = "assessment"
	KindSkillsGrammar  AssignmentKind = "skills_grammar"
	KindVocabularyGame AssignmentKind = "vocabulary_game"
	KindMixedMode      AssignmentKind = "mixed_mode"
)

// Assignment is an upstream entity owned by the assignment subsystem.
// The analytics engine reads it once per request and never writes it.
type Assignment struct {
	ID         string         `json:"id" gorm:"primaryKey;type:uuid"`
	Title      string         `json:"title" gorm:"not null;size:255"`
	GameType   string         `json:"game_type" gorm:"size:100;index"`
	Type       string         `json:"type" gorm:"size:100"` // content-type tag
	ClassID    string         `json:"class_id" gorm:"type:uuid;index"`
	GameConfig datatypes.JSON `json:"game_config" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// Metadata projects the assignment into the shape the type detector
// inspects. A malformed game config is treated as empty rather than
// failing the request.
func (a Assignment) Metadata() AssignmentMetadata {
	meta := AssignmentMetadata{
		AssignmentID: a.ID,
		GameType:     a.GameType,
		ContentType:  a.Type,
	}
	if len(a.GameConfig) > 0 {
		var cfg map[string]any
		if err := json.Unmarshal(a.GameConfig, &cfg); err == nil {
			meta.GameConfig = cfg
		}
	}
	return meta
}

// AssignmentMetadata carries the tags the type detector inspects.
// GameConfig is opaque except for the keys the detector probes to
// disambiguate mixed-mode assignments.
type AssignmentMetadata struct {
	AssignmentID string         `json:"assignment_id"`
	GameType     string         `json:"game_type"`
	ContentType  string         `json:"content_type"`
	GameConfig   map[string]any `json:"game_config"`
}

type ClassEnrollment struct {
	ClassID   string `json:"class_id" gorm:"type:uuid;index"`
	StudentID string `json:"student_id" gorm:"type:uuid;index"`
	Status    string `json:"status" gorm:"size:32;index"`
}

func (ClassEnrollment) TableName() string {
	return "class_enrollments"
}

type UserProfile struct {
	UserID      string `json:"user_id" gorm:"primaryKey;type:uuid"`
	DisplayName string `json:"display_name" gorm:"size:255"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// RosterEntry is one enrolled student resolved to a display name.
type RosterEntry struct {
	StudentID   string `json:"student_id"`
	DisplayName string `json:"display_name"`
}
