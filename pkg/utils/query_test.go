package utils

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery(t *testing.T) {
	values, _ := url.ParseQuery("search=soup&sort[title]=DESC&sort[servings]=sideways&filter[dishtype]=lunch&filter[dishtype]=dinner&limit=10&page=3")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "soup", f.Search)
	assert.Equal(t, map[string]string{"title": "desc"}, f.Sort)
	assert.Equal(t, "lunch,dinner", f.Filter["dishtype"])
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Offset)
	assert.True(t, f.WithPagination)
}

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"limit": {"100000"}, "withPagination": {"false"}})

	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.False(t, f.WithPagination)
	assert.Empty(t, f.Filter)
}

func TestParseFilterFromQuery_HugePageKeepsOffsetPositive(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"page": {strconv.Itoa(math.MaxInt)}, "limit": {"500"}})

	assert.Equal(t, MaxPage, f.Page)
	assert.Positive(t, f.Offset)
	assert.Equal(t, (MaxPage-1)*500, f.Offset)
}
