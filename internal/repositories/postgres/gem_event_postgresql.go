package postgres

import (
	"context"
	"fmt"

	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type GemEventPostgreSQL struct {
	db        *gorm.DB
	chunkSize int
}

func NewGemEventPostgreSQL(db *gorm.DB, chunkSize int) repositories.GemEventRepository {
	return &GemEventPostgreSQL{
		db:        db,
		chunkSize: chunkSize,
	}
}

// GetBySessionIDs fetches gem events for a session set. The IN-list is
// chunked so a large class cannot exceed query parameter limits.
func (g *GemEventPostgreSQL) GetBySessionIDs(ctx context.Context, sessionIDs []string) ([]models.GemEvent, error) {
	return g.fetchChunked(ctx, sessionIDs, func(q *gorm.DB) *gorm.DB { return q })
}

func (g *GemEventPostgreSQL) GetByVocabulary(ctx context.Context, sessionIDs []string, vocabularyID string) ([]models.GemEvent, error) {
	return g.fetchChunked(ctx, sessionIDs, func(q *gorm.DB) *gorm.DB {
		return q.Where("centralized_vocabulary_id = ? OR custom_vocabulary_id = ?", vocabularyID, vocabularyID)
	})
}

func (g *GemEventPostgreSQL) fetchChunked(ctx context.Context, sessionIDs []string, scope func(*gorm.DB) *gorm.DB) ([]models.GemEvent, error) {
	if len(sessionIDs) == 0 {
		return []models.GemEvent{}, nil
	}

	var events []models.GemEvent
	for start := 0; start < len(sessionIDs); start += g.chunkSize {
		end := start + g.chunkSize
		if end > len(sessionIDs) {
			end = len(sessionIDs)
		}

		var chunk []models.GemEvent
		query := g.db.WithContext(ctx).Where("session_id IN ?", sessionIDs[start:end])
		if err := scope(query).Find(&chunk).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch gem events chunk [%d:%d]: %w", start, end, err)
		}
		events = append(events, chunk...)
	}

	return events, nil
}
