package postgres

import (
	"fmt"
	"strings"

	"github.com/Humanoid-1/Web-backend/internal/search"
)

// likeEscaper escapes LIKE metacharacters; backslash is the default escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause is a parameterized SQL condition list.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) bind(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// SQL returns "" or "WHERE ...".
func (w *whereClause) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// compilePredicate translates p into SQL. Column names come only from
// columns; a clause naming anything else, or with a mismatched kind, is an
// error so no caller-supplied identifier reaches the query text.
func compilePredicate(p search.Predicate, columns map[string]search.Kind) (*whereClause, error) {
	w := &whereClause{}

	column := func(ref search.FieldRef, accept ...search.Kind) (string, search.Kind, error) {
		kind, ok := columns[ref.Name]
		if !ok {
			return "", 0, fmt.Errorf("compile predicate: unknown column %q", ref.Name)
		}
		for _, k := range accept {
			if kind == k {
				return ref.Name, kind, nil
			}
		}
		return "", 0, fmt.Errorf("compile predicate: column %q is %s", ref.Name, kind)
	}

	for _, c := range p.Clauses() {
		switch c.Op {
		case search.OpAnyOf:
			col, kind, err := column(c.Field, search.Scalar, search.List)
			if err != nil {
				return nil, err
			}
			values := w.bind(c.Values)
			if kind == search.List {
				w.conds = append(w.conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) AS v WHERE lower(v) = ANY(%s))", col, values))
			} else {
				w.conds = append(w.conds, fmt.Sprintf("lower(%s) = ANY(%s)", col, values))
			}

		case search.OpBetween:
			col, _, err := column(c.Field, search.Number)
			if err != nil {
				return nil, err
			}
			if c.Min != nil {
				w.conds = append(w.conds, fmt.Sprintf("%s >= %s", col, w.bind(*c.Min)))
			}
			if c.Max != nil {
				w.conds = append(w.conds, fmt.Sprintf("%s <= %s", col, w.bind(*c.Max)))
			}

		case search.OpContains:
			if len(c.Fields) == 0 || len(c.Values) == 0 {
				continue
			}
			patterns := make([]string, len(c.Values))
			for i, v := range c.Values {
				patterns[i] = "%" + likeEscaper.Replace(v) + "%"
			}
			arg := w.bind(patterns)

			ors := make([]string, 0, len(c.Fields))
			for _, ref := range c.Fields {
				col, kind, err := column(ref, search.Scalar, search.List)
				if err != nil {
					return nil, err
				}
				if kind == search.List {
					ors = append(ors, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) AS v WHERE v ILIKE ANY(%s))", col, arg))
				} else {
					ors = append(ors, fmt.Sprintf("%s ILIKE ANY(%s)", col, arg))
				}
			}
			w.conds = append(w.conds, "("+strings.Join(ors, " OR ")+")")

		case search.OpIs:
			col, _, err := column(c.Field, search.Flag)
			if err != nil {
				return nil, err
			}
			w.conds = append(w.conds, fmt.Sprintf("%s = %s", col, w.bind(c.Flag)))

		default:
			return nil, fmt.Errorf("compile predicate: unsupported op %d", c.Op)
		}
	}
	return w, nil
}

// joinSQL joins the non-empty fragments with single spaces.
func joinSQL(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func columnKinds(refs []search.FieldRef) map[string]search.Kind {
	out := make(map[string]search.Kind, len(refs))
	for _, r := range refs {
		out[r.Name] = r.Kind
	}
	return out
}
