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

const participantTableName = "participants"

var participantColumns = utils.StructTagValues(types.Participant{})

type ParticipantRepository struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

func (r *ParticipantRepository) ParticipantByEmail(ctx context.Context, email string) (*types.Participant, error) {
	query, args, err := psql().
		Select(participantColumns...).
		From(participantTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate participant query: %w", err)
	}

	var participant types.Participant
	err = pgxscan.Get(ctx, r.pool, &participant, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to fetch participant: %w", err)
	}

	return &participant, nil
}

// UpsertParticipant inserts the participant or, when the email is already
// registered, replaces every mutable column with the new values. Nil optional
// fields overwrite whatever was stored before.
func (r *ParticipantRepository) UpsertParticipant(ctx context.Context, participant *types.Participant) (*types.Participant, error) {
	query, args, err := upsertParticipantQuery(participant).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate upsert participant query: %w", err)
	}

	var saved types.Participant
	err = pgxscan.Get(ctx, r.pool, &saved, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participant: %w", err)
	}

	return &saved, nil
}

// DeleteParticipantByEmail removes a participant; their needs go with them
// through the cascading foreign key.
func (r *ParticipantRepository) DeleteParticipantByEmail(ctx context.Context, email string) error {
	query, args, err := psql().
		Delete(participantTableName).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete participant query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrParticipantNotFound
	}

	return nil
}

func upsertParticipantQuery(participant *types.Participant) sq.InsertBuilder {
	participantMap := utils.StructToMap(participant, "id", "created_at")

	updateMap := make(map[string]any, len(participantMap))
	for k, v := range participantMap {
		if k != "email" {
			updateMap[k] = v
		}
	}

	return psql().
		Insert(participantTableName).
		SetMap(participantMap).
		Suffix("ON CONFLICT (email) DO UPDATE SET " + buildUpdateClause(updateMap)).
		Suffix(returning(participantColumns))
}
