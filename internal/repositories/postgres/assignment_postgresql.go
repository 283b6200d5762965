package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/language-gems/analytics-service/internal/cache"
	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/repositories"
	"github.com/language-gems/analytics-service/internal/utils"
	"gorm.io/gorm"
)

type AssignmentPostgreSQL struct {
	db       *gorm.DB
	cacheSvc cache.CacheService
	logger   utils.Logger
	cacheTTL time.Duration
}

func NewAssignmentPostgreSQL(db *gorm.DB, cacheSvc cache.CacheService, logger utils.Logger, cacheTTL time.Duration) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{
		db:       db,
		cacheSvc: cacheSvc,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// GetByID retrieves an assignment, consulting the cache first.
// Cache errors degrade to a database read.
func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	cacheKey := "assignment:" + id

	if a.cacheSvc != nil {
		var cached models.Assignment
		if err := a.cacheSvc.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var assignment models.Assignment
	if err := a.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assignment %s: %w", id, err)
	}

	if a.cacheSvc != nil {
		if err := a.cacheSvc.Set(ctx, cacheKey, &assignment, a.cacheTTL); err != nil {
			a.logger.Warn("assignment cache write failed", "assignment_id", id, "error", err)
		}
	}

	return &assignment, nil
}

func (a *AssignmentPostgreSQL) GetClassName(ctx context.Context, classID string) (string, error) {
	var name string
	err := a.db.WithContext(ctx).
		Table("classes").
		Select("name").
		Where("id = ?", classID).
		Scan(&name).Error
	if err != nil {
		return "", fmt.Errorf("failed to get class name for %s: %w", classID, err)
	}
	if name == "" {
		name = "Unknown Class"
	}
	return name, nil
}
