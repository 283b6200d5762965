package postgres

import (
	"context"
	"fmt"

	"github.com/language-gems/analytics-service/internal/registry"
	"github.com/language-gems/analytics-service/internal/repositories"
	"github.com/language-gems/analytics-service/internal/utils"
	"gorm.io/gorm"
)

// ResultPostgreSQL is the single generic fetcher behind every
// registered assessment type. The registry config carries the table
// and column semantics; no per-type query code exists.
type ResultPostgreSQL struct {
	db     *gorm.DB
	logger utils.Logger
}

func NewResultPostgreSQL(db *gorm.DB, logger utils.Logger) repositories.ResultRepository {
	return &ResultPostgreSQL{
		db:     db,
		logger: logger,
	}
}

// FetchRows queries one result table for an assignment. Types with a
// bridge table resolve assignment → assessment-instance ids first; a
// failed or empty bridge lookup falls back to filtering the result
// table on assignment_id directly, so a broken bridge degrades the
// query instead of blanking it.
func (r *ResultPostgreSQL) FetchRows(ctx context.Context, cfg registry.TypeConfig, assignmentID string) ([]repositories.RawResultRow, repositories.ResolvedFilter, error) {
	filter := r.resolveFilter(ctx, cfg, assignmentID)

	var rows []map[string]any
	err := r.db.WithContext(ctx).
		Table(cfg.TableName).
		Select(cfg.ResultColumns).
		Where(fmt.Sprintf("%s IN ?", filter.Column), filter.Keys).
		Find(&rows).Error
	if err != nil {
		return nil, filter, fmt.Errorf("failed to fetch %s rows: %w", cfg.TableName, err)
	}

	out := make([]repositories.RawResultRow, len(rows))
	for i, row := range rows {
		out[i] = repositories.RawResultRow(row)
	}
	return out, filter, nil
}

func (r *ResultPostgreSQL) resolveFilter(ctx context.Context, cfg registry.TypeConfig, assignmentID string) repositories.ResolvedFilter {
	direct := repositories.ResolvedFilter{
		Column: "assignment_id",
		Keys:   []string{assignmentID},
		Via:    repositories.ResolvedDirectly,
	}

	if cfg.BridgeTable == "" {
		return direct
	}

	var instanceIDs []string
	err := r.db.WithContext(ctx).
		Table(cfg.BridgeTable).
		Select("id").
		Where("assignment_id = ?", assignmentID).
		Scan(&instanceIDs).Error
	if err != nil || len(instanceIDs) == 0 {
		if err != nil {
			r.logger.Warn("bridge lookup failed, falling back to direct filter",
				"bridge_table", cfg.BridgeTable,
				"assignment_id", assignmentID,
				"error", err)
		}
		return direct
	}

	return repositories.ResolvedFilter{
		Column: cfg.BridgeResultKey,
		Keys:   instanceIDs,
		Via:    repositories.ResolvedViaBridge,
	}
}
