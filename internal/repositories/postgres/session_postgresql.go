package postgres

import (
	"context"
	"fmt"

	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type SessionPostgreSQL struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &SessionPostgreSQL{db: db}
}

func (s *SessionPostgreSQL) GetGameSessions(ctx context.Context, assignmentID string) ([]models.GameSession, error) {
	var sessions []models.GameSession
	err := s.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get game sessions for assignment %s: %w", assignmentID, err)
	}
	return sessions, nil
}

func (s *SessionPostgreSQL) GetGrammarAttempts(ctx context.Context, assignmentID string) ([]models.GrammarAttempt, error) {
	var attempts []models.GrammarAttempt
	err := s.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get grammar attempts for assignment %s: %w", assignmentID, err)
	}
	return attempts, nil
}
