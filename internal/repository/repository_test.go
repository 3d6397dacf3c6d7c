package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	fields := Fields{}.Set("name", "a").Set("age", 7)

	value, ok := fields.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, 7, value)

	_, ok = fields.Lookup("missing")
	assert.False(t, ok)
}

func TestBuildInsert(t *testing.T) {
	schema := Schema{Table: "projects", Columns: []string{"id", "name", "description"}}
	fields := Fields{}.Set("name", "Роман").Set("description", "черновик")

	query, args := buildInsert(schema, fields)

	assert.Equal(t,
		"INSERT INTO projects (name, description) VALUES ($1, $2) RETURNING id, name, description",
		query)
	assert.Equal(t, []any{"Роман", "черновик"}, args)
}

func TestBuildUpdate(t *testing.T) {
	t.Run("PlainColumnsOverwrite", func(t *testing.T) {
		schema := Schema{Table: "projects", Columns: []string{"id", "name", "description"}}
		fields := Fields{}.Set("name", "x").Set("description", "y")

		query, args := buildUpdate(schema, 42, fields)

		assert.Equal(t,
			"UPDATE projects SET name = $1, description = $2 WHERE id = $3 RETURNING id, name, description",
			query)
		assert.Equal(t, []any{"x", "y", int64(42)}, args)
	})

	t.Run("MergeableColumnsConcatenate", func(t *testing.T) {
		schema := Schema{
			Table:     "characters",
			Columns:   []string{"id", "name", "custom_fields"},
			Mergeable: map[string]bool{"custom_fields": true},
		}
		fields := Fields{}.Set("name", "x").Set("custom_fields", map[string]any{"eyes": "green"})

		query, _ := buildUpdate(schema, 7, fields)

		assert.Contains(t, query, "name = $1")
		assert.Contains(t, query, "custom_fields = COALESCE(custom_fields, '{}'::jsonb) || $2")
		assert.Contains(t, query, "WHERE id = $3")
	})

	t.Run("FieldOrderIsStable", func(t *testing.T) {
		schema := Schema{Table: "t", Columns: []string{"id", "a", "b"}}
		fields := Fields{}.Set("b", 2).Set("a", 1)

		query, args := buildUpdate(schema, 1, fields)

		assert.Contains(t, query, "b = $1, a = $2")
		assert.Equal(t, []any{2, 1, int64(1)}, args)
	})
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		name                string
		skip, limit         int
		wantSkip, wantLimit int
	}{
		{"Defaults", 0, 0, 0, 100},
		{"NegativeSkip", -5, 10, 0, 10},
		{"NegativeLimit", 3, -1, 3, 100},
		{"Passthrough", 20, 50, 20, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			skip, limit := clampPage(tc.skip, tc.limit)
			assert.Equal(t, tc.wantSkip, skip)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}
