package repo

import (
	"fmt"
	"strings"
)

// Join concatenates non-empty query fragments with single spaces.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(p))
	}
	return strings.Join(out, " ")
}

// JoinWhere renders a WHERE clause AND-ing the given conditions. Returns an
// empty string when there are none.
func JoinWhere(conditions ...string) string {
	filtered := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if strings.TrimSpace(c) == "" {
			continue
		}
		filtered = append(filtered, c)
	}
	if len(filtered) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(filtered, " AND ")
}

// Insert builds an INSERT statement with positional placeholders for the given
// columns. Extra returning columns are appended as a RETURNING clause.
func Insert(table string, fields []string, returning ...string) string {
	placeholders := make([]string, len(fields))
	for i := range fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
	)
	if len(returning) > 0 {
		q += " RETURNING " + strings.Join(returning, ", ")
	}
	return q
}

// Update builds an UPDATE statement assigning $1..$N to the given columns,
// followed by the provided WHERE conditions (which reference later
// placeholders).
func Update(table string, fields []string, conditions ...string) string {
	assignments := make([]string, len(fields))
	for i, f := range fields {
		assignments[i] = fmt.Sprintf("%s = $%d", f, i+1)
	}
	q := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(assignments, ", "))
	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}
	return q
}

// Exists wraps a query into a boolean EXISTS projection.
func Exists(query string) string {
	return fmt.Sprintf("SELECT EXISTS (%s)", query)
}

// FormatLimitOffset renders LIMIT/OFFSET fragments, omitting non-positive
// values.
func FormatLimitOffset(limit, offset int) string {
	if limit > 0 && offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	if limit > 0 {
		return fmt.Sprintf("LIMIT %d", limit)
	}
	if offset > 0 {
		return fmt.Sprintf("OFFSET %d", offset)
	}
	return ""
}

// BatchInsertQueryN appends the placeholder tuples for a multi-row insert to
// the given prefix (e.g. `INSERT INTO contact_tags (contact_id, tag_id) VALUES`)
// and flattens the row values into a single args slice.
func BatchInsertQueryN(prefix string, rows [][]interface{}) (string, []interface{}) {
	if len(rows) == 0 {
		return prefix, nil
	}
	width := len(rows[0])
	tuples := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*width)
	n := 1
	for _, row := range rows {
		placeholders := make([]string, len(row))
		for i, v := range row {
			placeholders[i] = fmt.Sprintf("$%d", n)
			args = append(args, v)
			n++
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}
	return prefix + " " + strings.Join(tuples, ", "), args
}
