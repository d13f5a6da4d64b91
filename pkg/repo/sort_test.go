package repo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/homewardhq/homeward/pkg/repo"
)

type sortField string

var sortMapping = map[sortField]string{
	"name":    "c.company_name",
	"created": "c.created_at",
}

func TestSortByToSQL(t *testing.T) {
	s := repo.SortBy[sortField]{
		Fields: []repo.SortByField[sortField]{
			{Field: "name", Ascending: true},
			{Field: "created", Ascending: false},
		},
	}
	require.Equal(t, "ORDER BY c.company_name ASC, c.created_at DESC", s.ToSQL(sortMapping))
}

func TestSortByToSQLEmpty(t *testing.T) {
	require.Equal(t, "", repo.SortBy[sortField]{}.ToSQL(sortMapping))
}

func TestSortByToSQLSkipsUnmappedFields(t *testing.T) {
	s := repo.SortBy[sortField]{
		Fields: []repo.SortByField[sortField]{
			{Field: "bogus; DROP TABLE contacts", Ascending: true},
			{Field: "name", Ascending: false},
		},
	}
	require.Equal(t, "ORDER BY c.company_name DESC", s.ToSQL(sortMapping))

	onlyUnmapped := repo.SortBy[sortField]{
		Fields: []repo.SortByField[sortField]{{Field: "bogus", Ascending: true}},
	}
	require.Equal(t, "", onlyUnmapped.ToSQL(sortMapping))
}
