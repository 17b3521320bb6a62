package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"remplr/pkg/types"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
	// MaxPage держит (page-1)*limit в пределах int при любом допустимом limit.
	MaxPage = math.MaxInt / MaxLimit
)

// ParseFilterFromQuery читает search, sort[field], filter[field], limit, page,
// offset и withPagination. Повторные filter[field] склеиваются через запятую.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filterReq.Limit = min(l, MaxLimit)
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = min(p, MaxPage)
		}
	}

	filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	}

	filterReq.WithPagination = values.Get("withPagination") != "false"

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			for _, v := range vals {
				if existing, ok := filterReq.Filter[field]; ok {
					filterReq.Filter[field] = fmt.Sprintf("%v,%s", existing, v)
				} else {
					filterReq.Filter[field] = v
				}
			}
		}
	}

	return filterReq
}
