package webc

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/siftinv/sift/types/api"
)

// Find performs a flat file search with the given query arguments.
// The mtime filter of the query, if any, is applied on the client side
// because the server does not index modification age.
func (c *Client) Find(ctx context.Context, q *api.FindQuery) ([]api.FileEntry, error) {
	entries := []api.FileEntry{}
	if err := c.get(ctx, "/files", q.Values(), &entries); err != nil {
		return nil, err
	}

	if !q.IsMtime() {
		return entries, nil
	}

	// Apply mtime filter
	matched := entries[:0]
	for _, fe := range entries {
		if q.MatchMtime(fe.MTime) {
			matched = append(matched, fe)
		}
	}

	return matched, nil
}

// Directories returns directory-path autocomplete suggestions for query.
// The server requires at least two characters of the query, shorter
// queries produce an empty result without a round trip.
func (c *Client) Directories(ctx context.Context, query string, limit int) ([]api.DirSuggestion, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	dirs := []api.DirSuggestion{}
	if err := c.get(ctx, "/directories", params, &dirs); err != nil {
		return nil, err
	}

	return dirs, nil
}
