package mapping

import (
	"database/sql"
	"time"
)

// ValueToSQLNullString treats the empty string as SQL NULL.
func ValueToSQLNullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// ValueToSQLNullTime treats the zero time as SQL NULL.
func ValueToSQLNullTime(value time.Time) sql.NullTime {
	return sql.NullTime{Time: value, Valid: !value.IsZero()}
}

// PointerToSQLNullTime treats nil as SQL NULL.
func PointerToSQLNullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}

// MapViewModels converts a slice of entities into view models.
func MapViewModels[T, V any](entities []T, mapFunc func(T) V) []V {
	viewModels := make([]V, len(entities))
	for i, entity := range entities {
		viewModels[i] = mapFunc(entity)
	}
	return viewModels
}
