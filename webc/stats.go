package webc

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/siftinv/sift/types/api"
)

// StatsOverview returns aggregate inventory statistics, optionally narrowed
// to particular categories and hosts
func (c *Client) StatsOverview(ctx context.Context,
		minSize int64, categories, hosts []string) (*api.StatsOverview, error) {
	params := url.Values{}
	if minSize > 0 {
		params.Set("min_size", strconv.FormatInt(minSize, 10))
	}
	if len(categories) != 0 {
		params.Set("categories", strings.Join(categories, ","))
	}
	if len(hosts) != 0 {
		params.Set("hosts", strings.Join(hosts, ","))
	}

	overview := &api.StatsOverview{}
	if err := c.get(ctx, "/stats/overview", params, overview); err != nil {
		return nil, err
	}

	return overview, nil
}

// StatsDuplicates returns the largest duplicate sets ordered by wasted space
func (c *Client) StatsDuplicates(ctx context.Context, limit, offset, minCopies int) ([]api.DuplicateSet, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	if minCopies > 2 {
		params.Set("min_copies", strconv.Itoa(minCopies))
	}

	sets := []api.DuplicateSet{}
	if err := c.get(ctx, "/stats/duplicates", params, &sets); err != nil {
		return nil, err
	}

	return sets, nil
}

// ScanRuns returns recent scan-run records, optionally narrowed to one host
func (c *Client) ScanRuns(ctx context.Context, host string, limit int) ([]api.ScanRun, error) {
	params := url.Values{}
	if host != "" {
		params.Set("host", host)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	runs := []api.ScanRun{}
	if err := c.get(ctx, "/scan-runs", params, &runs); err != nil {
		return nil, err
	}

	return runs, nil
}
