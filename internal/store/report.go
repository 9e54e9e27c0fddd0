package store

import (
	"comunidad/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository serves the read models built on top of needs: the
// enriched response feed and per-category counts.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) Responses(ctx context.Context, filter types.ResponseFilter) ([]*types.Response, error) {
	query, args, err := responsesQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate responses query: %w", err)
	}

	responses := make([]*types.Response, 0)
	err = pgxscan.Select(ctx, r.pool, &responses, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}

	return responses, nil
}

func (r *ReportRepository) CategoryStats(ctx context.Context) ([]*types.CategoryStat, error) {
	query, args, err := categoryStatsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category stats query: %w", err)
	}

	stats := make([]*types.CategoryStat, 0)
	err = pgxscan.Select(ctx, r.pool, &stats, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category stats: %w", err)
	}

	return stats, nil
}

func responsesQuery(filter types.ResponseFilter) sq.SelectBuilder {
	limit := filter.Limit
	if limit == 0 || limit > types.MaxResponses {
		limit = types.MaxResponses
	}

	builder := psql().
		Select(
			"n.id",
			"n.question_id",
			"n.description",
			"n.created_at",
			"q.prompt AS question",
			"p.name AS participant_name",
			"p.email AS participant_email",
			"c.name AS category_name",
			"c.slug AS category_slug",
		).
		From(needTableName + " n").
		Join(participantTableName + " p ON p.id = n.participant_id").
		Join(questionTableName + " q ON q.id = n.question_id").
		LeftJoin(categoryTableName + " c ON c.id = n.category_id")

	if filter.QuestionID != nil {
		builder = builder.Where(sq.Eq{"n.question_id": *filter.QuestionID})
	}

	return builder.
		OrderBy("n.created_at DESC", "n.id DESC").
		Limit(limit)
}

// categoryStatsQuery counts needs per category. The left join keeps
// categories without needs in the result with a zero count.
func categoryStatsQuery() sq.SelectBuilder {
	return psql().
		Select("c.name", "c.slug", "COUNT(n.id)::int AS count").
		From(categoryTableName + " c").
		LeftJoin(needTableName + " n ON n.category_id = c.id").
		GroupBy("c.id", "c.name", "c.slug").
		OrderBy("count DESC", "c.name ASC")
}
