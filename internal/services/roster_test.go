package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/language-gems/analytics-service/internal/models"
)

func TestComputeRoster(t *testing.T) {
	ended := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)

	t.Run("every enrolled student appears even without activity", func(t *testing.T) {
		scope := testScope(models.KindVocabularyGame, 3)
		scope.gameSessions = []models.GameSession{
			{ID: "x1", StudentID: "s1", CompletionStatus: "completed", EndedAt: &ended, WordsCorrect: 8, WordsAttempted: 10},
		}

		roster := computeRoster(scope)
		assert.Len(t, roster, 3)

		byID := make(map[string]models.StudentProgress)
		for _, p := range roster {
			byID[p.StudentID] = p
		}
		assert.Equal(t, models.StatusCompleted, byID["s1"].Status)
		assert.Equal(t, models.StatusNotStarted, byID["s2"].Status)
		assert.Equal(t, models.StatusNotStarted, byID["s3"].Status)
	})

	t.Run("sorted by failure rate descending", func(t *testing.T) {
		scope := testScope(models.KindVocabularyGame, 2)
		scope.gameSessions = []models.GameSession{
			{ID: "x1", StudentID: "s1", CompletionStatus: "completed", EndedAt: &ended},
			{ID: "x2", StudentID: "s2", CompletionStatus: "completed", EndedAt: &ended},
		}
		v := "v1"
		scope.gemEvents = []models.GemEvent{
			{SessionID: "x1", StudentID: "s1", CentralizedVocabularyID: &v, GemRarity: models.RarityRare},
			{SessionID: "x2", StudentID: "s2", CentralizedVocabularyID: &v, GemRarity: models.RarityCommon},
			{SessionID: "x2", StudentID: "s2", CentralizedVocabularyID: &v, GemRarity: models.RarityCommon},
		}

		roster := computeRoster(scope)
		assert.Equal(t, "s2", roster[0].StudentID)
		assert.Equal(t, 100, roster[0].FailureRate)
		assert.Equal(t, 0, roster[len(roster)-1].FailureRate)
	})

	t.Run("weak retrieval and failure metrics diverge", func(t *testing.T) {
		scope := testScope(models.KindVocabularyGame, 1)
		scope.gameSessions = []models.GameSession{
			{ID: "x1", StudentID: "s1", CompletionStatus: "completed", EndedAt: &ended},
		}
		v := "v1"
		scope.gemEvents = []models.GemEvent{
			{SessionID: "x1", StudentID: "s1", CentralizedVocabularyID: &v, GemRarity: models.RarityCommon},
			{SessionID: "x1", StudentID: "s1", CentralizedVocabularyID: &v, GemRarity: models.RarityUncommon},
			{SessionID: "x1", StudentID: "s1", CentralizedVocabularyID: &v, GemRarity: models.RarityRare},
			{SessionID: "x1", StudentID: "s1", CentralizedVocabularyID: &v, GemRarity: models.RarityEpic},
		}

		roster := computeRoster(scope)
		assert.Equal(t, 50, roster[0].WeakRetrievalPercent) // common + uncommon
		assert.Equal(t, 25, roster[0].FailureRate)          // common only
	})

	t.Run("assessment kind takes score from best record", func(t *testing.T) {
		completedAt := ended
		scope := testScope(models.KindAssessment, 1)
		scope.records = []models.NormalizedResult{
			{StudentID: "s1", ScorePercentage: 45, Status: models.StatusCompleted, CompletedAt: &completedAt, TimeSpentSeconds: 900},
			{StudentID: "s1", ScorePercentage: 75, Status: models.StatusCompleted, CompletedAt: &completedAt, TimeSpentSeconds: 600},
		}

		roster := computeRoster(scope)
		assert.Equal(t, 75, roster[0].SuccessScore)
		assert.Equal(t, 25, roster[0].TimeSpentMinutes)
		assert.Equal(t, models.StatusCompleted, roster[0].Status)
		assert.NotNil(t, roster[0].LastAttempt)
	})
}

func TestInterventionFlags(t *testing.T) {
	flagOf := func(p models.StudentProgress) *models.InterventionFlag {
		return interventionFlag(p)
	}

	t.Run("high failure wins first", func(t *testing.T) {
		flag := flagOf(models.StudentProgress{FailureRate: 45, Status: models.StatusInProgress, TimeSpentMinutes: 90})
		assert.NotNil(t, flag)
		assert.Equal(t, models.FlagHighFailure, *flag)
	})

	t.Run("long in progress session", func(t *testing.T) {
		flag := flagOf(models.StudentProgress{FailureRate: 10, Status: models.StatusInProgress, TimeSpentMinutes: 61})
		assert.NotNil(t, flag)
		assert.Equal(t, models.FlagUnusuallyLong, *flag)
	})

	t.Run("stopped midway needs no last attempt", func(t *testing.T) {
		flag := flagOf(models.StudentProgress{FailureRate: 10, Status: models.StatusInProgress, TimeSpentMinutes: 15})
		assert.NotNil(t, flag)
		assert.Equal(t, models.FlagStoppedMidway, *flag)

		now := time.Now()
		flagged := flagOf(models.StudentProgress{FailureRate: 10, Status: models.StatusInProgress, TimeSpentMinutes: 15, LastAttempt: &now})
		assert.Nil(t, flagged)
	})

	t.Run("healthy student has no flag", func(t *testing.T) {
		assert.Nil(t, flagOf(models.StudentProgress{FailureRate: 10, Status: models.StatusCompleted, TimeSpentMinutes: 20}))
		assert.Nil(t, flagOf(models.StudentProgress{FailureRate: 30, Status: models.StatusCompleted}))
	})
}

func TestStruggleWords(t *testing.T) {
	gems := func(vocabID, word string, weak, strong int) []models.GemEvent {
		var out []models.GemEvent
		id := vocabID
		for i := 0; i < weak; i++ {
			out = append(out, models.GemEvent{CentralizedVocabularyID: &id, WordText: word, GemRarity: models.RarityCommon})
		}
		for i := 0; i < strong; i++ {
			out = append(out, models.GemEvent{CentralizedVocabularyID: &id, WordText: word, GemRarity: models.RarityEpic})
		}
		return out
	}

	t.Run("requires two exposures and majority weak share", func(t *testing.T) {
		var events []models.GemEvent
		events = append(events, gems("v1", "single", 1, 0)...)   // one exposure only
		events = append(events, gems("v2", "balanced", 1, 1)...) // 50%, not above threshold
		events = append(events, gems("v3", "hard", 3, 1)...)     // 75%

		assert.Equal(t, []string{"hard"}, struggleWords(events))
	})

	t.Run("caps at three words by weak share", func(t *testing.T) {
		var events []models.GemEvent
		events = append(events, gems("v1", "w100", 4, 0)...)
		events = append(events, gems("v2", "w80", 4, 1)...)
		events = append(events, gems("v3", "w75", 3, 1)...)
		events = append(events, gems("v4", "w67", 2, 1)...)

		words := struggleWords(events)
		assert.Equal(t, []string{"w100", "w80", "w75"}, words)
	})
}

func TestComputeWordStruggles(t *testing.T) {
	v1 := "v1"
	v2 := "v2"
	earlier := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	later := earlier.Add(2 * time.Hour)

	roster := []models.RosterEntry{
		{StudentID: "s1", DisplayName: "Ana"},
		{StudentID: "s2", DisplayName: "Ben"},
		{StudentID: "s3", DisplayName: "Cal"},
	}
	events := []models.GemEvent{
		{StudentID: "s1", CentralizedVocabularyID: &v1, GemRarity: models.RarityCommon, CreatedAt: earlier},
		{StudentID: "s1", CentralizedVocabularyID: &v1, GemRarity: models.RarityCommon, CreatedAt: later},
		{StudentID: "s2", CentralizedVocabularyID: &v1, GemRarity: models.RarityRare, CreatedAt: earlier},
		{StudentID: "s3", CentralizedVocabularyID: &v2, GemRarity: models.RarityCommon, CreatedAt: earlier},
	}

	t.Run("filters to one word and sorts worst first", func(t *testing.T) {
		struggles := computeWordStruggles(roster, events, "v1")
		assert.Len(t, struggles, 2)

		assert.Equal(t, "s1", struggles[0].StudentID)
		assert.Equal(t, "Ana", struggles[0].StudentName)
		assert.Equal(t, 2, struggles[0].Exposures)
		assert.Equal(t, 100, struggles[0].WeakRetrievalRate)
		assert.Equal(t, later, struggles[0].LastAttempt)
		assert.Equal(t, "Individual re-assignment of this word only", struggles[0].RecommendedIntervention)

		assert.Equal(t, "s2", struggles[1].StudentID)
		assert.Equal(t, 0, struggles[1].WeakRetrievalRate)
		assert.Equal(t, "Monitor progress", struggles[1].RecommendedIntervention)
	})

	t.Run("students without exposures are omitted", func(t *testing.T) {
		struggles := computeWordStruggles(roster, events, "v2")
		assert.Len(t, struggles, 1)
		assert.Equal(t, "s3", struggles[0].StudentID)
	})
}
