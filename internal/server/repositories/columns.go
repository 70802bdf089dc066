// Package repositories holds helpers shared by the PostgreSQL table
// repositories: column whitelists and translation of models.Query into
// squirrel select builders.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/dbx"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

// Parser converts a filter value from its query-string form.
type Parser func(string) (any, error)

func Text(s string) (any, error) { return s, nil }

// UUID accepts a canonical or braced uuid and yields its canonical form.
func UUID(s string) (any, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return id.String(), nil
}

func Bool(s string) (any, error) { return strconv.ParseBool(s) }

func Int(s string) (any, error) { return strconv.Atoi(s) }

// Columns maps each column a caller may order by to the parser for its
// filter values. A nil parser marks an order-only column.
type Columns map[string]Parser

// ApplyQuery adds the filters, ordering and limit of q to b. Unknown columns
// and unparsable values yield an error wrapping models.ErrBadQuery. When q
// has no ordering, fallback is used.
func ApplyQuery(b sq.SelectBuilder, q models.Query, cols Columns, fallback ...string) (sq.SelectBuilder, error) {
	for _, f := range q.Filters {
		parse, ok := cols[f.Column]
		if !ok || parse == nil {
			return b, fmt.Errorf("%w: unknown column %q", models.ErrBadQuery, f.Column)
		}
		v, err := parse(f.Value)
		if err != nil {
			return b, fmt.Errorf("%w: %s=%q: %v", models.ErrBadQuery, f.Column, f.Value, err)
		}
		b = b.Where(sq.Eq{f.Column: v})
	}

	if len(q.Orders) == 0 {
		b = b.OrderBy(fallback...)
	}
	for _, o := range q.Orders {
		if _, ok := cols[o.Column]; !ok {
			return b, fmt.Errorf("%w: unknown column %q", models.ErrBadQuery, o.Column)
		}
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		b = b.OrderBy(o.Column + dir)
	}

	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	return b, nil
}

// NullString stores an empty string as NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ExecOne runs a statement expected to touch exactly one row. Zero rows
// means common.ErrorNotFound.
func ExecOne(ctx context.Context, db dbx.DBTX, b sq.Sqlizer) error {
	res, err := dbx.Exec(ctx, db, b)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
