package models

import "time"

// GemRarity encodes retrieval strength for a correct answer: how
// confidently and quickly the word was retrieved, never whether the
// answer was right. Every gem event is a correct answer by
// construction.
type GemRarity string

const (
	RarityCommon    GemRarity = "common"
	RarityUncommon  GemRarity = "uncommon"
	RarityRare      GemRarity = "rare"
	RarityEpic      GemRarity = "epic"
	RarityLegendary GemRarity = "legendary"
)

// Weak reports whether the rarity indicates weak retrieval (slow, or
// answered with help).
func (r GemRarity) Weak() bool {
	return r == RarityCommon || r == RarityUncommon
}

// Strong reports whether the rarity indicates strong retrieval.
func (r GemRarity) Strong() bool {
	return r == RarityRare || r == RarityEpic || r == RarityLegendary
}

// GemEvent is an atomic per-word practice event written by the
// gameplay subsystems. Read-only here.
type GemEvent struct {
	ID                      string    `json:"id" gorm:"primaryKey;type:uuid"`
	SessionID               string    `json:"session_id" gorm:"type:uuid;index"`
	StudentID               string    `json:"student_id" gorm:"type:uuid;index"`
	CentralizedVocabularyID *string   `json:"centralized_vocabulary_id" gorm:"type:uuid"`
	CustomVocabularyID      *string   `json:"custom_vocabulary_id" gorm:"type:uuid"`
	GemRarity               GemRarity `json:"gem_rarity" gorm:"size:16"`
	WordText                string    `json:"word_text"`
	TranslationText         string    `json:"translation_text"`
	CreatedAt               time.Time `json:"created_at"`
}

func (GemEvent) TableName() string {
	return "gem_events"
}

// VocabularyKey returns the vocabulary identifier the event belongs
// to, preferring the centralized list, and whether the item is custom
// teacher vocabulary. Events with no vocabulary link return ok=false.
func (g GemEvent) VocabularyKey() (key string, custom bool, ok bool) {
	if g.CentralizedVocabularyID != nil && *g.CentralizedVocabularyID != "" {
		return *g.CentralizedVocabularyID, false, true
	}
	if g.CustomVocabularyID != nil && *g.CustomVocabularyID != "" {
		return *g.CustomVocabularyID, true, true
	}
	return "", false, false
}
