package postgres

import (
	"context"
	"fmt"

	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type OverridePostgreSQL struct {
	db *gorm.DB
}

func NewOverridePostgreSQL(db *gorm.DB) repositories.OverrideRepository {
	return &OverridePostgreSQL{db: db}
}

// GetForAssignment returns all overrides for an assignment ordered
// oldest first. The resolver folds them in order, so the most recent
// override per (student, assessment type) key wins.
func (o *OverridePostgreSQL) GetForAssignment(ctx context.Context, assignmentID string) ([]models.ScoreOverride, error) {
	var overrides []models.ScoreOverride
	err := o.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("overridden_at ASC").
		Find(&overrides).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get score overrides for assignment %s: %w", assignmentID, err)
	}
	return overrides, nil
}
