package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/language-gems/analytics-service/internal/events"
	"github.com/language-gems/analytics-service/internal/models"
	"github.com/language-gems/analytics-service/internal/registry"
	"github.com/language-gems/analytics-service/internal/repositories"
	"github.com/language-gems/analytics-service/internal/utils"
)

// AnalyticsService computes per-assignment analytics over the
// heterogeneous result tables. Read-only; every request fetches fresh
// upstream data into one request scope and aggregates from there.
type AnalyticsService interface {
	GetOverview(ctx context.Context, assignmentID string) (*models.AssignmentOverview, error)
	GetCategoryBreakdown(ctx context.Context, assignmentID string) (*models.CategoryBreakdown, error)
	GetWordDifficultyRanking(ctx context.Context, assignmentID string) ([]models.WordDifficulty, error)
	GetStudentRoster(ctx context.Context, assignmentID string) ([]models.StudentProgress, error)
	GetWordStruggles(ctx context.Context, assignmentID, vocabularyID string) ([]models.StudentWordStruggle, error)
	GetAssignmentReport(ctx context.Context, assignmentID string) (*models.AssignmentReport, error)
}

type analyticsService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator
}

func NewAnalyticsService(repo repositories.Repository, publisher events.EventPublisher, logger utils.Logger, validator *utils.Validator) AnalyticsService {
	return &analyticsService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *analyticsService) GetOverview(ctx context.Context, assignmentID string) (*models.AssignmentOverview, error) {
	scope, err := s.buildScope(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return computeOverview(scope), nil
}

func (s *analyticsService) GetCategoryBreakdown(ctx context.Context, assignmentID string) (*models.CategoryBreakdown, error) {
	scope, err := s.buildScope(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return computeCategoryBreakdown(scope.records, scope.generatedAt), nil
}

func (s *analyticsService) GetWordDifficultyRanking(ctx context.Context, assignmentID string) ([]models.WordDifficulty, error) {
	scope, err := s.buildScope(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return rankWordDifficulty(scope.gemEvents), nil
}

func (s *analyticsService) GetStudentRoster(ctx context.Context, assignmentID string) ([]models.StudentProgress, error) {
	scope, err := s.buildScope(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return computeRoster(scope), nil
}

// GetWordStruggles drills into one vocabulary item. The gem fetch is
// re-scoped to that item instead of reusing the full event set, so the
// query stays narrow on large assignments.
func (s *analyticsService) GetWordStruggles(ctx context.Context, assignmentID, vocabularyID string) ([]models.StudentWordStruggle, error) {
	if err := s.validator.Var(vocabularyID, "required,uuid"); err != nil {
		return nil, err
	}

	scope, err := s.buildScope(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	targeted, err := s.repo.GemEvents().GetByVocabulary(ctx, scope.sessionIDs(), vocabularyID)
	if err != nil {
		s.logger.WarnContext(ctx, "Targeted gem fetch failed, filtering in memory",
			"assignment_id", assignmentID,
			"vocabulary_id", vocabularyID,
			"error", err)
		targeted = scope.gemEvents
	}
	return computeWordStruggles(scope.roster, targeted, vocabularyID), nil
}

// GetAssignmentReport computes all four views from one shared scope
// and publishes a report summary event. Publish failures are logged,
// never surfaced to the caller.
func (s *analyticsService) GetAssignmentReport(ctx context.Context, assignmentID string) (*models.AssignmentReport, error) {
	scope, err := s.buildScope(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	report := &models.AssignmentReport{
		Overview:    computeOverview(scope),
		Categories:  computeCategoryBreakdown(scope.records, scope.generatedAt),
		WordRanking: rankWordDifficulty(scope.gemEvents),
		Roster:      computeRoster(scope),
		GeneratedAt: scope.generatedAt,
	}

	if s.publisher != nil {
		event := events.NewReportGeneratedEvent(report)
		if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish report event",
				"assignment_id", assignmentID,
				"error", err)
		}
	}
	return report, nil
}

// buildScope performs the whole fetch phase for one request: detect
// the assignment kind, fan out the independent upstream queries, then
// normalize and override-resolve the raw rows. Only the roster fetch
// propagates an error; every other failure degrades to empty data with
// a warning.
func (s *analyticsService) buildScope(ctx context.Context, assignmentID string) (*requestScope, error) {
	if err := s.validator.Var(assignmentID, "required,uuid"); err != nil {
		return nil, err
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.ClassID == "" {
		return nil, ErrAssignmentNoClass
	}

	meta := assignment.Metadata()
	scope := &requestScope{
		assignment: assignment,
		kind:       registry.DetectKind(meta),
		types:      registry.DetectTypes(meta),
	}

	s.logger.InfoContext(ctx, "Building analytics scope",
		"assignment_id", assignmentID,
		"kind", scope.kind,
		"assessment_types", len(scope.types))

	var overrides []models.ScoreOverride
	typeRows := make([][]repositories.RawResultRow, len(scope.types))
	outcomes := make([]fetchOutcome, len(scope.types))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roster, err := s.repo.Roster().GetActiveRoster(gctx, assignment.ClassID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
		}
		scope.roster = roster
		return nil
	})

	g.Go(func() error {
		name, err := s.repo.Assignment().GetClassName(gctx, assignment.ClassID)
		if err != nil {
			s.logger.WarnContext(gctx, "Class name lookup failed",
				"class_id", assignment.ClassID, "error", err)
			name = "Unknown Class"
		}
		scope.className = name
		return nil
	})

	for i, t := range scope.types {
		i, t := i, t
		cfg, ok := registry.Lookup(t)
		if !ok {
			continue
		}
		g.Go(func() error {
			rows, filter, err := s.repo.Results().FetchRows(gctx, cfg, assignmentID)
			outcomes[i] = fetchOutcome{Type: t, Filter: filter, RowCount: len(rows), Failed: err != nil}
			if err != nil {
				s.logger.WarnContext(gctx, "Result fetch failed, degrading to empty",
					"assessment_type", string(t),
					"table", cfg.TableName,
					"error", err)
				return nil
			}
			typeRows[i] = rows
			return nil
		})
	}

	g.Go(func() error {
		sessions, err := s.repo.Sessions().GetGameSessions(gctx, assignmentID)
		if err != nil {
			s.logger.WarnContext(gctx, "Game session fetch failed, degrading to empty",
				"assignment_id", assignmentID, "error", err)
			return nil
		}
		scope.gameSessions = sessions
		return nil
	})

	if scope.kind == models.KindSkillsGrammar || scope.kind == models.KindMixedMode {
		g.Go(func() error {
			attempts, err := s.repo.Sessions().GetGrammarAttempts(gctx, assignmentID)
			if err != nil {
				s.logger.WarnContext(gctx, "Grammar attempt fetch failed, degrading to empty",
					"assignment_id", assignmentID, "error", err)
				return nil
			}
			scope.grammarAttempts = attempts
			return nil
		})
	}

	g.Go(func() error {
		found, err := s.repo.Overrides().GetForAssignment(gctx, assignmentID)
		if err != nil {
			s.logger.WarnContext(gctx, "Override fetch failed, scores left as stored",
				"assignment_id", assignmentID, "error", err)
			return nil
		}
		overrides = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Gem events hang off the sessions, so they fetch after the fan-out.
	if ids := scope.sessionIDs(); len(ids) > 0 {
		gems, err := s.repo.GemEvents().GetBySessionIDs(ctx, ids)
		if err != nil {
			s.logger.WarnContext(ctx, "Gem event fetch failed, degrading to empty",
				"assignment_id", assignmentID, "error", err)
		} else {
			scope.gemEvents = gems
		}
	}

	for i, rows := range typeRows {
		cfg, ok := registry.Lookup(scope.types[i])
		if !ok {
			continue
		}
		for _, row := range rows {
			scope.records = append(scope.records, NormalizeResult(row, cfg))
		}
	}
	scope.records = ApplyOverrides(scope.records, overrides)
	scope.outcomes = outcomes
	scope.generatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Analytics scope ready",
		"assignment_id", assignmentID,
		"records", len(scope.records),
		"sessions", len(scope.gameSessions),
		"gem_events", len(scope.gemEvents),
		"roster", len(scope.roster))

	return scope, nil
}
