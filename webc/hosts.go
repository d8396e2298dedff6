package webc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/siftinv/sift/types/api"
)

// Hosts returns all scanned machines known to the server
func (c *Client) Hosts(ctx context.Context) ([]api.HostEntry, error) {
	hosts := []api.HostEntry{}
	if err := c.get(ctx, "/hosts", nil, &hosts); err != nil {
		return nil, err
	}

	return hosts, nil
}

// Init performs the combined startup call: hosts, a root listing per host,
// and a best-guess name of the calling machine, all in one round trip.
// Older servers do not provide the endpoint, callers should fall back to
// Hosts + per-host Ls when the returned error is reported by IsUnsupported.
func (c *Client) Init(ctx context.Context, path string, minSize int64) (*api.InitData, error) {
	params := url.Values{}
	params.Set("path", path)
	if minSize > 0 {
		params.Set("min_size", strconv.FormatInt(minSize, 10))
	}

	data := &api.InitData{}
	if err := c.get(ctx, "/init", params, data); err != nil {
		return nil, err
	}

	return data, nil
}

// IsUnsupported reports whether err means the server does not provide the
// called endpoint
func IsUnsupported(err error) bool {
	return isNotFound(err)
}
