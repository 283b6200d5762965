package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/language-gems/analytics-service/internal/cache"
	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/repositories"
	"github.com/language-gems/analytics-service/internal/utils"
	"gorm.io/gorm"
)

type RosterPostgreSQL struct {
	db       *gorm.DB
	cacheSvc cache.CacheService
	logger   utils.Logger
	cacheTTL time.Duration
}

func NewRosterPostgreSQL(db *gorm.DB, cacheSvc cache.CacheService, logger utils.Logger, cacheTTL time.Duration) repositories.RosterRepository {
	return &RosterPostgreSQL{
		db:       db,
		cacheSvc: cacheSvc,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// GetActiveRoster returns active enrollments with display names.
// Without a roster no completion rate is computable, so errors here
// propagate to the caller instead of degrading.
func (r *RosterPostgreSQL) GetActiveRoster(ctx context.Context, classID string) ([]models.RosterEntry, error) {
	cacheKey := "roster:" + classID

	if r.cacheSvc != nil {
		var cached []models.RosterEntry
		if err := r.cacheSvc.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var enrollments []models.ClassEnrollment
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND status = ?", classID, "active").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollments for class %s: %w", classID, err)
	}

	if len(enrollments) == 0 {
		return []models.RosterEntry{}, nil
	}

	studentIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		studentIDs = append(studentIDs, e.StudentID)
	}

	var profiles []models.UserProfile
	err = r.db.WithContext(ctx).
		Where("user_id IN ?", studentIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles for class %s: %w", classID, err)
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.DisplayName
	}

	roster := make([]models.RosterEntry, 0, len(enrollments))
	for _, e := range enrollments {
		name := names[e.StudentID]
		if name == "" {
			name = "Unknown"
		}
		roster = append(roster, models.RosterEntry{
			StudentID:   e.StudentID,
			DisplayName: name,
		})
	}

	if r.cacheSvc != nil {
		if err := r.cacheSvc.Set(ctx, cacheKey, roster, r.cacheTTL); err != nil {
			r.logger.Warn("roster cache write failed", "class_id", classID, "error", err)
		}
	}

	return roster, nil
}
