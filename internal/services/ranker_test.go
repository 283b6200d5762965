package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/language-gems/analytics-service/internal/models"
)

// gemBatch emits count events for one word with the given number of
// weak retrievals.
func gemBatch(vocabID, word string, total, weak int) []models.GemEvent {
	events := make([]models.GemEvent, 0, total)
	for i := 0; i < total; i++ {
		rarity := models.RarityRare
		if i < weak {
			rarity = models.RarityCommon
		}
		id := vocabID
		events = append(events, models.GemEvent{
			CentralizedVocabularyID: &id,
			WordText:                word,
			GemRarity:               rarity,
		})
	}
	return events
}

func TestRankWordDifficulty(t *testing.T) {
	t.Run("high volume word outranks unlucky low volume word", func(t *testing.T) {
		var events []models.GemEvent
		// 20 attempts at 60% weak: trusted problem word.
		events = append(events, gemBatch("v1", "der Hund", 20, 12)...)
		// 1 attempt, 100% weak: cannot dominate on rate alone.
		events = append(events, gemBatch("v2", "die Katze", 1, 1)...)

		ranked := rankWordDifficulty(events)
		assert.Len(t, ranked, 2)
		assert.Equal(t, "der Hund", ranked[0].WordText)
		assert.Equal(t, "die Katze", ranked[1].WordText)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, 2, ranked[1].Rank)
	})

	t.Run("tier one sorts by rate then volume", func(t *testing.T) {
		var events []models.GemEvent
		events = append(events, gemBatch("v1", "a", 10, 6)...) // 60%
		events = append(events, gemBatch("v2", "b", 10, 8)...) // 80%
		events = append(events, gemBatch("v3", "c", 20, 12)...) // 60%, more volume

		ranked := rankWordDifficulty(events)
		assert.Equal(t, []string{"b", "c", "a"}, []string{ranked[0].WordText, ranked[1].WordText, ranked[2].WordText})
	})

	t.Run("emerging tier sorts by volume then rate", func(t *testing.T) {
		var events []models.GemEvent
		events = append(events, gemBatch("v1", "a", 2, 1)...) // 50%, 2 attempts
		events = append(events, gemBatch("v2", "b", 4, 2)...) // 50%, 4 attempts

		ranked := rankWordDifficulty(events)
		assert.Equal(t, "b", ranked[0].WordText)
		assert.Equal(t, "a", ranked[1].WordText)
	})

	t.Run("tiers concatenate in order", func(t *testing.T) {
		var events []models.GemEvent
		events = append(events, gemBatch("v3", "low", 3, 0)...)       // tier 3
		events = append(events, gemBatch("v2", "emerging", 2, 2)...)  // tier 2
		events = append(events, gemBatch("v1", "confident", 6, 1)...) // tier 1

		ranked := rankWordDifficulty(events)
		assert.Equal(t, "confident", ranked[0].WordText)
		assert.Equal(t, "emerging", ranked[1].WordText)
		assert.Equal(t, "low", ranked[2].WordText)
	})

	t.Run("insight levels follow per tier thresholds", func(t *testing.T) {
		tests := []struct {
			total, weak int
			level       models.InsightLevel
		}{
			{10, 7, models.InsightProblem},
			{10, 5, models.InsightReview},
			{10, 3, models.InsightMonitor},
			{10, 1, models.InsightSuccess},
			{3, 2, models.InsightReview},  // 67% on low volume
			{3, 1, models.InsightMonitor}, // 33% on low volume
		}
		for _, tt := range tests {
			ranked := rankWordDifficulty(gemBatch("v1", "w", tt.total, tt.weak))
			assert.Equal(t, tt.level, ranked[0].InsightLevel, "total=%d weak=%d", tt.total, tt.weak)
		}
	})

	t.Run("counts split weak and strong retrievals", func(t *testing.T) {
		ranked := rankWordDifficulty(gemBatch("v1", "w", 8, 3))
		assert.Equal(t, 8, ranked[0].TotalAttempts)
		assert.Equal(t, 3, ranked[0].WeakRetrievalCount)
		assert.Equal(t, 5, ranked[0].StrongRetrievalCount)
		assert.Equal(t, 38, ranked[0].WeakRetrievalRate)
	})

	t.Run("uncommon counts as weak retrieval", func(t *testing.T) {
		id := "v1"
		ranked := rankWordDifficulty([]models.GemEvent{
			{CentralizedVocabularyID: &id, WordText: "w", GemRarity: models.RarityUncommon},
			{CentralizedVocabularyID: &id, WordText: "w", GemRarity: models.RarityLegendary},
		})
		assert.Equal(t, 1, ranked[0].WeakRetrievalCount)
		assert.Equal(t, 50, ranked[0].WeakRetrievalRate)
	})

	t.Run("custom vocabulary flagged", func(t *testing.T) {
		customID := "custom-1"
		ranked := rankWordDifficulty([]models.GemEvent{
			{CustomVocabularyID: &customID, WordText: "w", GemRarity: models.RarityRare},
		})
		assert.True(t, ranked[0].IsCustomVocabulary)
	})

	t.Run("events with no vocabulary link are skipped", func(t *testing.T) {
		ranked := rankWordDifficulty([]models.GemEvent{{WordText: "orphan", GemRarity: models.RarityCommon}})
		assert.Empty(t, ranked)
	})

	t.Run("insight text varies by attempt volume", func(t *testing.T) {
		emerging := rankWordDifficulty(gemBatch("v1", "w", 1, 1))
		assert.Contains(t, emerging[0].ActionableInsight, "1 attempt")

		sparse := rankWordDifficulty(gemBatch("v1", "w", 3, 0))
		assert.Contains(t, sparse[0].ActionableInsight, "3 attempts")
	})
}
