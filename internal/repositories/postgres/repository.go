package postgres

import (
	"time"

	"github.com/language-gems/analytics-service/internal/cache"
	"github.com/language-gems/analytics-service/internal/repositories"
	"github.com/language-gems/analytics-service/internal/utils"
	"gorm.io/gorm"
)

type repository struct {
	assignment repositories.AssignmentRepository
	roster     repositories.RosterRepository
	results    repositories.ResultRepository
	sessions   repositories.SessionRepository
	gemEvents  repositories.GemEventRepository
	overrides  repositories.OverrideRepository
}

// Options tune repository behavior. Zero values fall back to safe
// defaults.
type Options struct {
	// GemEventChunkSize caps the session-id IN-list size per query.
	GemEventChunkSize int

	// UpstreamCacheTTL bounds staleness of cached assignment and roster
	// lookups.
	UpstreamCacheTTL time.Duration
}

// NewRepository builds the full PostgreSQL-backed repository set. The
// cache service may be nil; lookups then always go to the database.
func NewRepository(db *gorm.DB, cacheSvc cache.CacheService, logger utils.Logger, opts Options) repositories.Repository {
	chunkSize := opts.GemEventChunkSize
	if chunkSize <= 0 {
		chunkSize = 50
	}
	ttl := opts.UpstreamCacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	return &repository{
		assignment: NewAssignmentPostgreSQL(db, cacheSvc, logger, ttl),
		roster:     NewRosterPostgreSQL(db, cacheSvc, logger, ttl),
		results:    NewResultPostgreSQL(db, logger),
		sessions:   NewSessionPostgreSQL(db),
		gemEvents:  NewGemEventPostgreSQL(db, chunkSize),
		overrides:  NewOverridePostgreSQL(db),
	}
}

func (r *repository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *repository) Roster() repositories.RosterRepository         { return r.roster }
func (r *repository) Results() repositories.ResultRepository        { return r.results }
func (r *repository) Sessions() repositories.SessionRepository      { return r.sessions }
func (r *repository) GemEvents() repositories.GemEventRepository    { return r.gemEvents }
func (r *repository) Overrides() repositories.OverrideRepository    { return r.overrides }
