package webc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"
)

// Default result cap of the subtree-duplicates endpoint
const defaultSubtreeLimit = 1000

var _ api.Client = (*Client)(nil)

// Ls returns the immediate children of path on host. Same-host duplicate
// counters of the returned entries are computed against minSize.
func (c *Client) Ls(ctx context.Context, host, path string, minSize int64) (types.ChildListing, error) {
	params := url.Values{}
	params.Set("host", host)
	params.Set("path", path)
	params.Set("depth", "1")
	if minSize > 0 {
		params.Set("min_size", strconv.FormatInt(minSize, 10))
	}

	listing := types.ChildListing{}
	if err := c.get(ctx, "/files/ls", params, &listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// DupHash returns some duplicated content hash found within the subtree of
// path on host. Empty string - subtree contains no duplicates.
func (c *Client) DupHash(ctx context.Context, host, path string, minSize int64) (string, error) {
	params := url.Values{}
	params.Set("host", host)
	params.Set("path", path)
	if minSize > 0 {
		params.Set("min_size", strconv.FormatInt(minSize, 10))
	}

	// The endpoint replies 404 when the subtree has no duplicates,
	// treat that as "not found" rather than a failure
	rv := struct {
		Hash string `json:"hash"`
	}{}
	err := c.get(ctx, "/files/ls/dup-hash", params, &rv)
	switch {
		case err == nil:
			return rv.Hash, nil
		case isNotFound(err):
			return "", nil
		default:
			return "", err
	}
}

// DuplicatesInSubtree returns all files under pathPrefix on host whose
// content hash occurs more than once on that host
func (c *Client) DuplicatesInSubtree(ctx context.Context,
		host, pathPrefix string, minSize int64, limit int) ([]api.FileEntry, error) {
	if limit <= 0 {
		limit = defaultSubtreeLimit
	}

	params := url.Values{}
	params.Set("host", host)
	params.Set("path_prefix", pathPrefix)
	params.Set("limit", strconv.Itoa(limit))
	if minSize > 0 {
		params.Set("min_size", strconv.FormatInt(minSize, 10))
	}

	entries := []api.FileEntry{}
	if err := c.get(ctx, "/files/duplicates-in-subtree", params, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// DupAncestorDirs returns every directory under pathPrefix on host that has
// duplicate files somewhere below it, intermediate ancestors included
func (c *Client) DupAncestorDirs(ctx context.Context, host, pathPrefix string, minSize int64) ([]string, error) {
	params := url.Values{}
	params.Set("host", host)
	params.Set("path_prefix", pathPrefix)
	if minSize > 0 {
		params.Set("min_size", strconv.FormatInt(minSize, 10))
	}

	rv := struct {
		Paths []string `json:"paths"`
	}{}
	if err := c.get(ctx, "/files/dup-ancestor-dirs", params, &rv); err != nil {
		return nil, err
	}

	return rv.Paths, nil
}
