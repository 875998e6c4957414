package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Humanoid-1/Web-backend/internal/search"
	"github.com/Humanoid-1/Web-backend/pkg/database"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// table describes how one catalog entity maps onto its table. columns[0] is
// the primary key and the last two are created_at and updated_at.
type table[T any] struct {
	entity  string
	name    string
	columns []string
	kinds   map[string]search.Kind
	scan    func(row pgx.Row) (T, error)
	values  func(rec *T) []any
	id      func(rec *T) string
}

// CatalogStore is a generic postgres-backed catalog repository. Search
// predicates are compiled to parameterized SQL.
type CatalogStore[T any] struct {
	db database.DBTX
	t  table[T]
}

func (s *CatalogStore[T]) selectList() string {
	return strings.Join(s.t.columns, ", ")
}

// Find returns every record matching p in insertion order.
func (s *CatalogStore[T]) Find(ctx context.Context, p search.Predicate) (_ []T, err error) {
	where, err := compilePredicate(p, s.t.kinds)
	if err != nil {
		return nil, err
	}

	query := joinSQL("SELECT", s.selectList(), "FROM", s.t.name, where.SQL(), "ORDER BY created_at, id")
	return s.query(ctx, s.t.entity+".Find", query, where.args...)
}

// FindWindow returns one insertion-ordered window of the records matching p.
func (s *CatalogStore[T]) FindWindow(ctx context.Context, p search.Predicate, offset, limit int) ([]T, error) {
	where, err := compilePredicate(p, s.t.kinds)
	if err != nil {
		return nil, err
	}

	limitArg := where.bind(limit)
	offsetArg := where.bind(offset)
	query := joinSQL("SELECT", s.selectList(), "FROM", s.t.name, where.SQL(),
		"ORDER BY created_at, id LIMIT", limitArg, "OFFSET", offsetArg)
	return s.query(ctx, s.t.entity+".FindWindow", query, where.args...)
}

// Count returns the number of records matching p.
func (s *CatalogStore[T]) Count(ctx context.Context, p search.Predicate) (n int, err error) {
	where, err := compilePredicate(p, s.t.kinds)
	if err != nil {
		return 0, err
	}

	query := joinSQL("SELECT count(*) FROM", s.t.name, where.SQL())
	ctx, end := database.TraceQuery(ctx, s.t.entity+".Count", query)
	defer func() { end(err) }()

	if err := s.db.QueryRow(ctx, query, where.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.t.name, err)
	}
	return n, nil
}

func (s *CatalogStore[T]) query(ctx context.Context, op, query string, args ...any) (_ []T, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.t.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		rec, err := s.t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.t.entity, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", s.t.name, err)
	}
	return out, nil
}

// Create inserts rec.
func (s *CatalogStore[T]) Create(ctx context.Context, rec *T) (err error) {
	placeholders := make([]string, len(s.t.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.t.name, s.selectList(), strings.Join(placeholders, ", "))

	ctx, end := database.TraceQuery(ctx, s.t.entity+".Create", query)
	defer func() { end(err) }()

	if _, err := s.db.Exec(ctx, query, s.t.values(rec)...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists(s.t.entity, "id", s.t.id(rec))
		}
		return fmt.Errorf("insert %s: %w", s.t.entity, err)
	}
	return nil
}

// GetByID returns the record with id.
func (s *CatalogStore[T]) GetByID(ctx context.Context, id string) (_ *T, err error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.selectList(), s.t.name)
	ctx, end := database.TraceQuery(ctx, s.t.entity+".GetByID", query)
	defer func() { end(err) }()

	rec, err := s.t.scan(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(s.t.entity, id)
		}
		return nil, fmt.Errorf("get %s: %w", s.t.entity, err)
	}
	return &rec, nil
}

// Update overwrites every column of rec except id and created_at.
func (s *CatalogStore[T]) Update(ctx context.Context, rec *T) (err error) {
	values := s.t.values(rec)
	// columns: id, ..., created_at, updated_at
	last := len(s.t.columns) - 1
	sets := make([]string, 0, len(s.t.columns)-2)
	args := []any{values[0]}
	for i := 1; i < len(s.t.columns); i++ {
		if i == last-1 {
			continue
		}
		args = append(args, values[i])
		sets = append(sets, fmt.Sprintf("%s = $%d", s.t.columns[i], len(args)))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", s.t.name, strings.Join(sets, ", "))

	ctx, end := database.TraceQuery(ctx, s.t.entity+".Update", query)
	defer func() { end(err) }()

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", s.t.entity, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(s.t.entity, s.t.id(rec))
	}
	return nil
}

// Delete removes the record with id.
func (s *CatalogStore[T]) Delete(ctx context.Context, id string) (err error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.t.name)
	ctx, end := database.TraceQuery(ctx, s.t.entity+".Delete", query)
	defer func() { end(err) }()

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.t.entity, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(s.t.entity, id)
	}
	return nil
}

// Distinct returns the sorted, non-empty values of a scalar text column.
func (s *CatalogStore[T]) Distinct(ctx context.Context, field string) (_ []string, err error) {
	if s.t.kinds[field] != search.Scalar {
		return nil, fmt.Errorf("distinct %s: %q is not a scalar text column", s.t.name, field)
	}

	query := fmt.Sprintf("SELECT DISTINCT %[1]s FROM %[2]s WHERE %[1]s <> '' ORDER BY %[1]s", field, s.t.name)
	ctx, end := database.TraceQuery(ctx, s.t.entity+".Distinct", query)
	defer func() { end(err) }()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct %s.%s: %w", s.t.name, field, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect %s.%s: %w", s.t.name, field, err)
	}
	return values, nil
}
