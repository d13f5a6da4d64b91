package repo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/homewardhq/homeward/pkg/repo"
)

func TestJoin(t *testing.T) {
	require.Equal(t, "SELECT 1 FROM t WHERE x = $1", repo.Join("SELECT 1 FROM t", "", "WHERE x = $1"))
	require.Equal(t, "", repo.Join("", "  "))
}

func TestJoinWhere(t *testing.T) {
	require.Equal(t, "WHERE a = $1 AND b = $2", repo.JoinWhere("a = $1", "b = $2"))
	require.Equal(t, "", repo.JoinWhere())
	require.Equal(t, "WHERE a = $1", repo.JoinWhere("a = $1", ""))
}

func TestInsert(t *testing.T) {
	q := repo.Insert("contacts", []string{"tenant_id", "company_name"}, "id")
	require.Equal(t, "INSERT INTO contacts (tenant_id, company_name) VALUES ($1, $2) RETURNING id", q)

	q = repo.Insert("contact_tags", []string{"contact_id", "tag_id"})
	require.Equal(t, "INSERT INTO contact_tags (contact_id, tag_id) VALUES ($1, $2)", q)
}

func TestUpdate(t *testing.T) {
	q := repo.Update("contacts", []string{"company_name", "notes"}, "id = $3", "tenant_id = $4")
	require.Equal(t, "UPDATE contacts SET company_name = $1, notes = $2 WHERE id = $3 AND tenant_id = $4", q)
}

func TestExists(t *testing.T) {
	require.Equal(t, "SELECT EXISTS (SELECT 1 FROM t WHERE x = $1)", repo.Exists("SELECT 1 FROM t WHERE x = $1"))
}

func TestFormatLimitOffset(t *testing.T) {
	require.Equal(t, "LIMIT 10 OFFSET 20", repo.FormatLimitOffset(10, 20))
	require.Equal(t, "LIMIT 10", repo.FormatLimitOffset(10, 0))
	require.Equal(t, "OFFSET 20", repo.FormatLimitOffset(0, 20))
	require.Equal(t, "", repo.FormatLimitOffset(0, 0))
}

func TestBatchInsertQueryN(t *testing.T) {
	q, args := repo.BatchInsertQueryN(
		"INSERT INTO contact_tags (contact_id, tag_id) VALUES",
		[][]interface{}{{"c1", "t1"}, {"c1", "t2"}},
	)
	require.Equal(t, "INSERT INTO contact_tags (contact_id, tag_id) VALUES ($1, $2), ($3, $4)", q)
	require.Equal(t, []interface{}{"c1", "t1", "c1", "t2"}, args)

	q, args = repo.BatchInsertQueryN("INSERT INTO t (a) VALUES", nil)
	require.Equal(t, "INSERT INTO t (a) VALUES", q)
	require.Nil(t, args)
}
