package sportmonks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const maxPages = 100

// pageEnvelope accepts both list shapes Sportmonks returns: v3 puts `pagination` next to
// `data`, v2 nests it under `meta`.
type pageEnvelope[T any] struct {
	Data       []T               `json:"data"`
	Pagination *v3Pagination     `json:"pagination"`
	Meta       *v2PaginationMeta `json:"meta"`
}

type v3Pagination struct {
	Count       int     `json:"count"`
	PerPage     int     `json:"per_page"`
	CurrentPage int     `json:"current_page"`
	NextPage    *string `json:"next_page"`
	HasMore     bool    `json:"has_more"`
}

type v2PaginationMeta struct {
	Pagination *v2Pagination `json:"pagination"`
}

type v2Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

func (e pageEnvelope[T]) hasMore() bool {
	if e.Pagination != nil {
		return e.Pagination.HasMore
	}
	if e.Meta != nil && e.Meta.Pagination != nil {
		return e.Meta.Pagination.CurrentPage < e.Meta.Pagination.TotalPages
	}
	return false
}

type pageOptions struct {
	firstPageOnly bool
}

// collectPages requests page 1, 2, … and concatenates `data` in request order until the
// provider reports no more pages. A missing token yields an empty result.
func collectPages[T any](ctx context.Context, c *Client, target api, endpoint, path string, query url.Values, opts pageOptions) ([]T, error) {
	if !target.configured() {
		c.logger.WarnContext(ctx, "sportmonks token not configured, returning empty result", "api", target.name, "endpoint", endpoint)
		return []T{}, nil
	}

	items := make([]T, 0, 64)
	for page := 1; page <= maxPages; page++ {
		values := url.Values{}
		for key, v := range query {
			values[key] = v
		}
		values.Set("page", strconv.Itoa(page))

		var envelope pageEnvelope[T]
		raw, err := c.doJSON(ctx, target, endpoint, path, values, &envelope)
		if err != nil {
			return nil, fmt.Errorf("fetch %s page=%d: %w", endpoint, page, err)
		}
		c.archive(ctx, endpoint, page, raw)
		items = append(items, envelope.Data...)

		if opts.firstPageOnly || !envelope.hasMore() {
			return items, nil
		}
	}

	c.logger.WarnContext(ctx, "sportmonks pagination stopped at page cap", "endpoint", endpoint, "max_pages", maxPages)
	return items, nil
}
