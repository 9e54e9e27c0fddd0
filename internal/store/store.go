package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgForeignKeyViolation is the SQLSTATE raised when a delete or insert
// breaks a REFERENCES constraint.
const pgForeignKeyViolation = "23503"

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// buildUpdateClause creates the SET clause for ON CONFLICT DO UPDATE
// e.g., "name = EXCLUDED.name, slug = EXCLUDED.slug, ..."
func buildUpdateClause(fields map[string]any) string {
	columns := make([]string, 0, len(fields))
	for field := range fields {
		columns = append(columns, field)
	}
	sort.Strings(columns)

	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	return strings.Join(parts, ", ")
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
