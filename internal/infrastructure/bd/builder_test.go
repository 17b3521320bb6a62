package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remplr/pkg/types"
)

func TestApplyListParams(t *testing.T) {
	filter := types.Filter{
		Filter:         map[string]interface{}{"aisle": "Baking", "secret": "x"},
		Sort:           map[string]string{"name": "desc", "password": "asc"},
		Limit:          20,
		Offset:         40,
		WithPagination: true,
	}
	allowed := map[string]string{"aisle": "aisle", "name": "name"}

	query, args, err := ApplyListParams(
		sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("id").From("ingredients"),
		filter, allowed,
	).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM ingredients WHERE aisle = $1 ORDER BY name DESC LIMIT 20 OFFSET 40", query)
	assert.Equal(t, []interface{}{"Baking"}, args)
}

func TestApplyFilters_CommaListBecomesIn(t *testing.T) {
	filter := types.Filter{Filter: map[string]interface{}{"dishtype": "lunch,dinner"}}

	query, args, err := ApplyFilters(
		sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("id").From("recipes"),
		filter, map[string]string{"dishtype": "dishtype"},
	).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM recipes WHERE dishtype IN ($1,$2)", query)
	assert.Equal(t, []interface{}{"lunch", "dinner"}, args)
}

func TestApplySearch(t *testing.T) {
	base := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("id").From("recipes")

	query, _, err := ApplySearch(base, "   ", "title").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM recipes", query)

	query, args, err := ApplySearch(base, "soup", "title").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM recipes WHERE (title ILIKE $1)", query)
	assert.Equal(t, []interface{}{"%soup%"}, args)
}
