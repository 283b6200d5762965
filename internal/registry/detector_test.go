package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/language-gems/analytics-service/internal/models"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		meta     models.AssignmentMetadata
		expected models.AssignmentKind
	}{
		{
			name:     "generic assessment tag",
			meta:     models.AssignmentMetadata{GameType: "assessment"},
			expected: models.KindAssessment,
		},
		{
			name:     "family tag on game type",
			meta:     models.AssignmentMetadata{GameType: "gcse-reading"},
			expected: models.KindAssessment,
		},
		{
			name:     "family tag on content type",
			meta:     models.AssignmentMetadata{GameType: "memory-game", ContentType: "aqa-listening"},
			expected: models.KindAssessment,
		},
		{
			name:     "mixed mode tag wins over assessment tag",
			meta:     models.AssignmentMetadata{GameType: "mixed-mode", ContentType: "assessment"},
			expected: models.KindMixedMode,
		},
		{
			name:     "mixed mode from game config",
			meta:     models.AssignmentMetadata{GameType: "memory-game", GameConfig: map[string]any{"mixed_mode": true}},
			expected: models.KindMixedMode,
		},
		{
			name:     "skills tag",
			meta:     models.AssignmentMetadata{GameType: "skills"},
			expected: models.KindSkillsGrammar,
		},
		{
			name:     "grammar content type",
			meta:     models.AssignmentMetadata{GameType: "conjugation-duel", ContentType: "grammar"},
			expected: models.KindSkillsGrammar,
		},
		{
			name:     "uppercase tags normalize",
			meta:     models.AssignmentMetadata{GameType: " ASSESSMENT "},
			expected: models.KindAssessment,
		},
		{
			name:     "unrecognized tag degrades to vocabulary game",
			meta:     models.AssignmentMetadata{GameType: "gem-collector"},
			expected: models.KindVocabularyGame,
		},
		{
			name:     "empty metadata degrades to vocabulary game",
			meta:     models.AssignmentMetadata{},
			expected: models.KindVocabularyGame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectKind(tt.meta))
		})
	}
}

func TestDetectTypes(t *testing.T) {
	t.Run("family tag selects exactly one type", func(t *testing.T) {
		types := DetectTypes(models.AssignmentMetadata{GameType: "gcse-reading"})
		assert.Equal(t, []AssessmentType{AQAReading}, types)
	})

	t.Run("content type family tag selects exactly one type", func(t *testing.T) {
		types := DetectTypes(models.AssignmentMetadata{GameType: "assessment", ContentType: "dictation"})
		assert.Equal(t, []AssessmentType{AQADictation}, types)
	})

	t.Run("game config assessment_type selects one type", func(t *testing.T) {
		types := DetectTypes(models.AssignmentMetadata{
			GameType:   "assessment",
			GameConfig: map[string]any{"assessment_type": "four-skills"},
		})
		assert.Equal(t, []AssessmentType{FourSkills}, types)
	})

	t.Run("generic assessment tag selects every registered type", func(t *testing.T) {
		types := DetectTypes(models.AssignmentMetadata{GameType: "assessment"})
		assert.Equal(t, Types(), types)
		assert.Len(t, types, len(All()))
	})

	t.Run("non assessment assignment yields no types", func(t *testing.T) {
		assert.Nil(t, DetectTypes(models.AssignmentMetadata{GameType: "gem-collector"}))
	})
}

func TestRegistryConfigs(t *testing.T) {
	t.Run("every config is queryable", func(t *testing.T) {
		for _, cfg := range All() {
			found, ok := Lookup(cfg.Type)
			assert.True(t, ok)
			assert.NotEmpty(t, found.TableName)
			assert.NotEmpty(t, found.ResultColumns)
			assert.NotEmpty(t, found.StudentIDColumns)
		}
	})

	t.Run("bridge tables pair with a result key", func(t *testing.T) {
		for _, cfg := range All() {
			if cfg.BridgeTable != "" {
				assert.NotEmpty(t, cfg.BridgeResultKey, "type %s", cfg.Type)
			}
		}
	})

	t.Run("stable order", func(t *testing.T) {
		assert.Equal(t, Types(), Types())
	})
}
