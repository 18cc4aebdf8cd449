// Package database builds parameterized list queries with dynamic filters.
// Identifiers are sanitized with pgx; values always go through placeholders.
package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	GreaterThanOrEqual ConditionType = ">="
	LessThan           ConditionType = "<"
	ILike              ConditionType = "ILIKE"
)

type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// ListQueryOptions describes a SELECT over a single table with optional
// filters, ordering, and paging. Zero Limit/Offset are omitted from the SQL.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

// BuildListQuery renders the options into SQL with positional args.
func BuildListQuery(opts ListQueryOptions) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(opts.Conditions))

	sb.WriteString("SELECT ")
	if opts.CountOnly {
		sb.WriteString("COUNT(*)")
	} else if len(opts.Columns) == 0 {
		sb.WriteString("*")
	} else {
		cols := make([]string, len(opts.Columns))
		for i, c := range opts.Columns {
			cols[i] = sanitizeIdentifier(c)
		}
		sb.WriteString(strings.Join(cols, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(sanitizeIdentifier(opts.Table))

	if len(opts.Conditions) > 0 {
		sb.WriteString(" WHERE ")
		parts := make([]string, len(opts.Conditions))
		for i, cond := range opts.Conditions {
			args = append(args, cond.Value)
			parts[i] = fmt.Sprintf("%s %s $%d", sanitizeIdentifier(cond.Field), cond.Type, len(args))
		}
		sb.WriteString(strings.Join(parts, " AND "))
	}

	if !opts.CountOnly {
		if opts.OrderBy != "" {
			dir := "ASC"
			if strings.EqualFold(opts.OrderDir, "desc") {
				dir = "DESC"
			}
			sb.WriteString(" ORDER BY ")
			sb.WriteString(sanitizeIdentifier(opts.OrderBy))
			sb.WriteString(" ")
			sb.WriteString(dir)
		}
		if opts.Limit > 0 {
			args = append(args, opts.Limit)
			fmt.Fprintf(&sb, " LIMIT $%d", len(args))
		}
		if opts.Offset > 0 {
			args = append(args, opts.Offset)
			fmt.Fprintf(&sb, " OFFSET $%d", len(args))
		}
	}

	return sb.String(), args
}

func sanitizeIdentifier(ident string) string {
	parts := strings.Split(ident, ".")
	return pgx.Identifier(parts).Sanitize()
}
