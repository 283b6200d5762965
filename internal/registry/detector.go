package registry

import (
	"strings"

	"github.com/language-gems/analytics-service/internal/models"
)

// Tag values the assignment subsystem writes into game_type / type.
// Assignments predating the tag scheme carry free-form values, which
// the detector degrades to the vocabulary-game kind.
const (
	tagAssessment    = "assessment"
	tagMixedMode     = "mixed-mode"
	tagSkillsGrammar = "skills"
	tagGrammar       = "grammar"
)

var assessmentFamilyTags = map[string]AssessmentType{
	"reading-comprehension": ReadingComprehension,
	"gcse-reading":          AQAReading,
	"aqa-reading":           AQAReading,
	"gcse-listening":        AQAListening,
	"aqa-listening":         AQAListening,
	"gcse-writing":          AQAWriting,
	"aqa-writing":           AQAWriting,
	"writing":               AQAWriting,
	"gcse-dictation":        AQADictation,
	"aqa-dictation":         AQADictation,
	"dictation":             AQADictation,
	"gcse-speaking":         AQASpeaking,
	"aqa-speaking":          AQASpeaking,
	"speaking":              AQASpeaking,
	"four-skills":           FourSkills,
	"exam-style":            ExamStyle,
}

// DetectKind classifies an assignment into one of the aggregation
// branches. Never errors: anything unrecognized is treated as a plain
// vocabulary game.
func DetectKind(meta models.AssignmentMetadata) models.AssignmentKind {
	game := strings.ToLower(strings.TrimSpace(meta.GameType))
	content := strings.ToLower(strings.TrimSpace(meta.ContentType))

	if game == tagMixedMode || content == tagMixedMode || configBool(meta.GameConfig, "mixed_mode") {
		return models.KindMixedMode
	}
	if game == tagAssessment || content == tagAssessment {
		return models.KindAssessment
	}
	if _, ok := assessmentFamilyTags[game]; ok {
		return models.KindAssessment
	}
	if _, ok := assessmentFamilyTags[content]; ok {
		return models.KindAssessment
	}
	if game == tagSkillsGrammar || game == tagGrammar || content == tagSkillsGrammar || content == tagGrammar {
		return models.KindSkillsGrammar
	}
	return models.KindVocabularyGame
}

// DetectTypes returns the assessment types potentially present for an
// assignment, in registry order. A dedicated family tag selects
// exactly that type; the generic assessment tag selects every
// registered type (the fetch layer tolerates empty tables); anything
// else yields no assessment types at all, which aggregates to zero
// attempts rather than an error.
func DetectTypes(meta models.AssignmentMetadata) []AssessmentType {
	game := strings.ToLower(strings.TrimSpace(meta.GameType))
	content := strings.ToLower(strings.TrimSpace(meta.ContentType))

	if t, ok := assessmentFamilyTags[game]; ok {
		return []AssessmentType{t}
	}
	if t, ok := assessmentFamilyTags[content]; ok {
		return []AssessmentType{t}
	}
	if t, ok := configType(meta.GameConfig); ok {
		return []AssessmentType{t}
	}
	if game == tagAssessment || content == tagAssessment {
		return Types()
	}
	return nil
}

func configBool(cfg map[string]any, key string) bool {
	if cfg == nil {
		return false
	}
	v, ok := cfg[key].(bool)
	return ok && v
}

func configType(cfg map[string]any) (AssessmentType, bool) {
	if cfg == nil {
		return "", false
	}
	raw, ok := cfg["assessment_type"].(string)
	if !ok {
		return "", false
	}
	if t, ok := assessmentFamilyTags[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t, true
	}
	t := AssessmentType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := Lookup(t); ok {
		return t, true
	}
	return "", false
}
