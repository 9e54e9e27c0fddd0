package store

import (
	"comunidad/internal/utils"
	"comunidad/pkg/types"
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const questionTableName = "questions"

var questionColumns = utils.StructTagValues(types.Question{})

type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) Questions(ctx context.Context) ([]*types.Question, error) {
	query, args, err := psql().
		Select(questionColumns...).
		From(questionTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions query: %w", err)
	}

	questions := make([]*types.Question, 0)
	err = pgxscan.Select(ctx, r.pool, &questions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	return questions, nil
}

// UpsertQuestion writes a question under a fixed id so the catalog keeps its
// numbering across re-seeds.
func (r *QuestionRepository) UpsertQuestion(ctx context.Context, question *types.Question) error {
	query, args, err := psql().
		Insert(questionTableName).
		Columns("id", "prompt").
		Values(question.ID, question.Prompt).
		Suffix("ON CONFLICT (id) DO UPDATE SET prompt = EXCLUDED.prompt").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert question query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert question")
}

// SyncSequence moves the id sequence past explicitly inserted ids.
func (r *QuestionRepository) SyncSequence(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('questions', 'id'), GREATEST((SELECT MAX(id) FROM questions), 1))`)
	return utils.ErrorWrapOrNil(err, "failed to sync question id sequence")
}
