package store

import (
	"comunidad/internal/utils"
	"comunidad/pkg/types"
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const needTableName = "needs"

var needColumns = utils.StructTagValues(types.Need{})

type NeedRepository struct {
	pool *pgxpool.Pool
}

func NewNeedRepository(pool *pgxpool.Pool) *NeedRepository {
	return &NeedRepository{pool: pool}
}

func (r *NeedRepository) CreateNeed(ctx context.Context, need *types.Need) (*types.Need, error) {

	query, args, err := psql().
		Insert(needTableName).
		SetMap(utils.StructToMap(need, "id", "created_at")).
		Suffix(returning(needColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert need query: %w", err)
	}

	var created types.Need
	err = pgxscan.Get(ctx, r.pool, &created, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create need: %w", err)
	}

	return &created, nil

}

func (r *NeedRepository) LatestNeeds(ctx context.Context, limit uint64) ([]*types.Need, error) {

	query, args, err := psql().Select(needColumns...).From(needTableName).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate latest needs query: %w", err)
	}

	needs := make([]*types.Need, 0)
	err = pgxscan.Select(ctx, r.pool, &needs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest needs: %w", err)
	}

	return needs, nil

}
