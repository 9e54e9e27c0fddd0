package store

import (
	"comunidad/internal/utils"
	"comunidad/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryTableName = "categories"

var categoryColumns = utils.StructTagValues(types.Category{})

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Categories(ctx context.Context) ([]*types.Category, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate categories query: %w", err)
	}

	categories := make([]*types.Category, 0)
	err = pgxscan.Select(ctx, r.pool, &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) CategoryBySlug(ctx context.Context, slug string) (*types.Category, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category query: %w", err)
	}

	var category types.Category
	err = pgxscan.Get(ctx, r.pool, &category, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	return &category, nil
}

// UpsertCategory inserts the category or renames the one already holding
// its slug.
func (r *CategoryRepository) UpsertCategory(ctx context.Context, category *types.Category) error {
	query, args, err := psql().
		Insert(categoryTableName).
		SetMap(utils.StructToMap(category, "id")).
		Suffix("ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}

	return nil
}

// DeleteCategory removes a category by slug. Categories still referenced by
// a need are kept by the database and reported as types.ErrCategoryInUse.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, slug string) error {
	query, args, err := psql().
		Delete(categoryTableName).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete category %s: %w", slug, types.ErrCategoryInUse)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCategoryNotFound
	}

	return nil
}
