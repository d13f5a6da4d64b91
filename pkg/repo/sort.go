package repo

import "strings"

type SortByField[T comparable] struct {
	Field     T
	Ascending bool
}

type SortBy[T comparable] struct {
	Fields []SortByField[T]
}

// ToSQL renders an ORDER BY clause, resolving fields through the given
// column mapping. Unknown fields are skipped rather than interpolated, so the
// clause can never carry unmapped input.
func (s SortBy[T]) ToSQL(mapping map[T]string) string {
	if len(s.Fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		column, ok := mapping[f.Field]
		if !ok {
			continue
		}
		if f.Ascending {
			parts = append(parts, column+" ASC")
		} else {
			parts = append(parts, column+" DESC")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}
