package services

import (
	"time"

	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/registry"
	"github.com/language-gems/analytics-service/internal/repositories"
)

// fetchOutcome records how one assessment type's fetch went, including
// the tagged bridge resolution, so degraded paths stay observable.
type fetchOutcome struct {
	Type     registry.AssessmentType
	Filter   repositories.ResolvedFilter
	RowCount int
	Failed   bool
}

// requestScope is the per-request cache: one instance is built per
// analytics request, populated once by the fetch fan-in, and read by
// the aggregators. It never outlives the request, so repeated
// aggregator calls share one snapshot and cross-request staleness
// cannot occur. Populated before any concurrent reads; immutable
// afterwards.
type requestScope struct {
	assignment *models.Assignment
	kind       models.AssignmentKind
	types      []registry.AssessmentType
	className  string

	roster []models.RosterEntry

	records  []models.NormalizedResult
	outcomes []fetchOutcome

	gameSessions    []models.GameSession
	grammarAttempts []models.GrammarAttempt
	gemEvents       []models.GemEvent

	generatedAt time.Time
}

// sessionIDs returns the ids of every game session in scope.
func (s *requestScope) sessionIDs() []string {
	ids := make([]string, 0, len(s.gameSessions))
	for _, sess := range s.gameSessions {
		ids = append(ids, sess.ID)
	}
	return ids
}

// studentSessions groups game sessions by student.
func (s *requestScope) studentSessions() map[string][]models.GameSession {
	byStudent := make(map[string][]models.GameSession)
	for _, sess := range s.gameSessions {
		byStudent[sess.StudentID] = append(byStudent[sess.StudentID], sess)
	}
	return byStudent
}

// studentGemEvents groups gem events by student.
func (s *requestScope) studentGemEvents() map[string][]models.GemEvent {
	byStudent := make(map[string][]models.GemEvent)
	for _, g := range s.gemEvents {
		if g.StudentID == "" {
			continue
		}
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}
	return byStudent
}

// studentRecords groups normalized records by student.
func (s *requestScope) studentRecords() map[string][]models.NormalizedResult {
	byStudent := make(map[string][]models.NormalizedResult)
	for _, rec := range s.records {
		if rec.StudentID == "" {
			continue
		}
		byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
	}
	return byStudent
}
