package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQueryBare(t *testing.T) {
	query, args := BuildListQuery(ListQueryOptions{Table: "patients"})
	assert.Equal(t, `SELECT * FROM "patients"`, query)
	assert.Empty(t, args)
}

func TestBuildListQueryFull(t *testing.T) {
	query, args := BuildListQuery(ListQueryOptions{
		Table:   "patients",
		Columns: []string{"id", "name"},
		Conditions: []Condition{
			WhereCond("clinic_id", Equal, "c1"),
			WhereCond("name", ILike, "%jo%"),
		},
		OrderBy:  "created_at",
		OrderDir: "desc",
		Limit:    25,
		Offset:   50,
	})
	assert.Equal(t,
		`SELECT "id", "name" FROM "patients" WHERE "clinic_id" = $1 AND "name" ILIKE $2 ORDER BY "created_at" DESC LIMIT $3 OFFSET $4`,
		query)
	assert.Equal(t, []any{"c1", "%jo%", 25, 50}, args)
}

func TestBuildListQueryCountOnly(t *testing.T) {
	query, args := BuildListQuery(ListQueryOptions{
		Table:      "patients",
		CountOnly:  true,
		Conditions: []Condition{WhereCond("clinic_id", Equal, "c1")},
		OrderBy:    "created_at",
		Limit:      10,
	})
	assert.Equal(t, `SELECT COUNT(*) FROM "patients" WHERE "clinic_id" = $1`, query)
	assert.Equal(t, []any{"c1"}, args)
}

func TestBuildListQuerySanitizesIdentifiers(t *testing.T) {
	query, _ := BuildListQuery(ListQueryOptions{
		Table:   `patients"; DROP TABLE patients; --`,
		Columns: []string{"appointments.id"},
	})
	assert.Contains(t, query, `"patients""; DROP TABLE patients; --"`)
	assert.Contains(t, query, `"appointments"."id"`)
}
