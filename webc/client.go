/*
Package webc implements the HTTP client of the sift inventory server. All
data is consumed through the server's read-only query endpoints, no direct
access to the server storage is ever made.
*/
package webc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default timeout of a single endpoint call
const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL	string
	httpc	*http.Client
	log		*zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:	strings.TrimRight(baseURL, "/"),
		httpc:		&http.Client{Timeout: defaultTimeout},
		log:		log.Named("webc"),
	}
}

type statusError struct {
	code	int
	msg		string
}

func (se *statusError) Error() string {
	return se.msg
}

// isNotFound reports whether err is an endpoint reply with status 404
func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

// get performs an endpoint call and decodes the JSON response into out
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := c.baseURL + endpoint
	if len(params) != 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("cannot create request to %q: %w", reqURL, err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("calling endpoint", zap.String("url", reqURL))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request to %q failed: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a piece of the body to make the error message more useful
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{
			code:	resp.StatusCode,
			msg:	fmt.Sprintf("request to %q returned status %q: %s",
						reqURL, resp.Status, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode response of %q: %w", reqURL, err)
	}

	// OK
	return nil
}
