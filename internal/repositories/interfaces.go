package repositories

import (
	"context"

	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/registry"
)

// ResolutionMethod tags how a result query was scoped to an
// assignment: through the bridge table, or by filtering the result
// table on the assignment id directly after the bridge lookup failed.
type ResolutionMethod string

const (
	ResolvedViaBridge ResolutionMethod = "bridge"
	ResolvedDirectly  ResolutionMethod = "direct"
)

// ResolvedFilter is the tagged outcome of bridge resolution. Keys are
// the values matched against Column on the result table.
type ResolvedFilter struct {
	Column string           `json:"column"`
	Keys   []string         `json:"keys"`
	Via    ResolutionMethod `json:"via"`
}

// RawResultRow is one untyped row from a registered result table.
// Column semantics come from the registry config the row was fetched
// under.
type RawResultRow map[string]any

type AssignmentRepository interface {
	// GetByID returns (nil, nil) when no assignment exists.
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	GetClassName(ctx context.Context, classID string) (string, error)
}

type RosterRepository interface {
	// GetActiveRoster returns the active enrollments of a class with
	// display names resolved.
	GetActiveRoster(ctx context.Context, classID string) ([]models.RosterEntry, error)
}

type ResultRepository interface {
	// FetchRows returns the raw result rows of one assessment type for
	// an assignment, together with the tagged filter resolution that
	// scoped the query.
	FetchRows(ctx context.Context, cfg registry.TypeConfig, assignmentID string) ([]RawResultRow, ResolvedFilter, error)
}

type SessionRepository interface {
	GetGameSessions(ctx context.Context, assignmentID string) ([]models.GameSession, error)
	GetGrammarAttempts(ctx context.Context, assignmentID string) ([]models.GrammarAttempt, error)
}

type GemEventRepository interface {
	// GetBySessionIDs fetches gem events for a set of sessions,
	// chunking the IN-list to respect query parameter limits.
	GetBySessionIDs(ctx context.Context, sessionIDs []string) ([]models.GemEvent, error)
	GetByVocabulary(ctx context.Context, sessionIDs []string, vocabularyID string) ([]models.GemEvent, error)
}

type OverrideRepository interface {
	// GetForAssignment returns all overrides of an assignment ordered
	// oldest first, so the latest per key naturally wins on merge.
	GetForAssignment(ctx context.Context, assignmentID string) ([]models.ScoreOverride, error)
}

// Repository aggregates every data access surface the engine consumes.
type Repository interface {
	Assignment() AssignmentRepository
	Roster() RosterRepository
	Results() ResultRepository
	Sessions() SessionRepository
	GemEvents() GemEventRepository
	Overrides() OverrideRepository
}
