// Package remote talks to the published copies of the dance catalog:
// fetching snapshots from mirror endpoints, computing field-level diffs
// against the local catalog, and uploading contributor snapshots.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/justalter/dancectl/internal/catalog"
)

// DefaultMirrors are the published catalog locations, tried in order.
var DefaultMirrors = []string{
	"https://maoxig.github.io/UnityDanceInfo/DanceInfo/dances.json",
	"https://unitydanceinfo.pages.dev/DanceInfo/dances.json",
}

const (
	defaultTimeout = 5 * time.Second
	defaultRetries = 2
)

// Client fetches catalog snapshots from an ordered list of mirrors.
type Client struct {
	mirrors []string
	retries int
	http    *http.Client
}

// NewClient creates a mirror client. Empty mirrors fall back to
// DefaultMirrors; retries and timeout fall back to conservative defaults
// when zero.
func NewClient(mirrors []string, retries int, timeout time.Duration) *Client {
	if len(mirrors) == 0 {
		mirrors = DefaultMirrors
	}
	if retries <= 0 {
		retries = defaultRetries
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		mirrors: mirrors,
		retries: retries,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch returns the first full catalog snapshot any mirror produces.
// Mirrors are tried in order with a bounded retry budget each; the first
// success short-circuits the rest. When every mirror is exhausted the
// error wraps ErrUnreachable with per-mirror detail.
func (c *Client) Fetch(ctx context.Context) (catalog.Catalog, error) {
	var failures []string
	for _, mirror := range c.mirrors {
		var lastErr error
		for attempt := 0; attempt < c.retries; attempt++ {
			snapshot, err := c.fetchOne(ctx, mirror)
			if err == nil {
				return snapshot, nil
			}
			lastErr = err
			if ctx.Err() != nil {
				break
			}
		}
		failures = append(failures, fmt.Sprintf("%s: %v", mirror, lastErr))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnreachable, strings.Join(failures, "; "))
}

func (c *Client) fetchOne(ctx context.Context, url string) (catalog.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// Unlike the local load path, a snapshot that does not parse is a
	// fetch failure: an empty catalog from a half-dead mirror must not
	// masquerade as "no remote entries".
	var snapshot catalog.Catalog
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("malformed catalog payload: %w", err)
	}
	if snapshot == nil {
		snapshot = catalog.New()
	}
	return snapshot, nil
}
