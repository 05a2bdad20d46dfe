package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("provider_payloads").
		Columns("source", "page").
		Values("sportmonks", 1).
		Values("sportmonks", 2).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO provider_payloads (source, page) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING", query)
	assert.Equal(t, []any{"sportmonks", 1, "sportmonks", 2}, args)
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("provider_payloads").
		Columns("source", "page").
		Values("sportmonks").
		ToSQL()
	require.Error(t, err)
}

func TestInsertModels(t *testing.T) {
	type row struct {
		Source  string `db:"source"`
		Page    int    `db:"page"`
		Ignored string `db:"-"`
		hidden  string
	}

	query, args, err := InsertModels("provider_payloads", []row{
		{Source: "sportmonks", Page: 1, hidden: "x"},
		{Source: "the-odds-api", Page: 1},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO provider_payloads (source, page) VALUES ($1, $2), ($3, $4)", query)
	assert.Equal(t, []any{"sportmonks", 1, "the-odds-api", 1}, args)
}

func TestInsertModels_Empty(t *testing.T) {
	_, _, err := InsertModels[struct{}]("provider_payloads", nil, "")
	require.Error(t, err)
}
