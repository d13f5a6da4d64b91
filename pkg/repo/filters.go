package repo

import (
	"fmt"
	"strings"
)

// Filter renders a single column predicate with positional placeholders
// starting at argIdx, exposing its bound values separately.
type Filter interface {
	String(column string, argIdx int) string
	Value() []interface{}
}

type eqFilter struct{ value interface{} }

func Eq(value interface{}) Filter { return eqFilter{value: value} }

func (f eqFilter) String(column string, argIdx int) string {
	return fmt.Sprintf("%s = $%d", column, argIdx)
}

func (f eqFilter) Value() []interface{} { return []interface{}{f.value} }

type inFilter struct{ values []interface{} }

func In(values ...interface{}) Filter { return inFilter{values: values} }

func (f inFilter) String(column string, argIdx int) string {
	placeholders := make([]string, len(f.values))
	for i := range f.values {
		placeholders[i] = fmt.Sprintf("$%d", argIdx+i)
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", "))
}

func (f inFilter) Value() []interface{} { return f.values }

type likeFilter struct{ value string }

// ILike matches case-insensitively; the caller supplies wildcards.
func ILike(value string) Filter { return likeFilter{value: value} }

func (f likeFilter) String(column string, argIdx int) string {
	return fmt.Sprintf("%s ILIKE $%d", column, argIdx)
}

func (f likeFilter) Value() []interface{} { return []interface{}{f.value} }
