// internal/adapters/hostaway/client.go
package hostaway

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

	"golang.org/x/time/rate"

	"flex_reviews/internal/adapters/observability"
)

// Client talks to the Hostaway channel-manager API. One attempt per call,
// no retries: any failure makes the caller fall back to fixture data, so
// retrying here would only delay that. The request deadline comes from the
// caller's context.
type Client struct {
	base      string
	accountID string
	key       string
	hc        *http.Client
	rl        *rate.Limiter
}

func New(base, accountID, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		accountID: accountID,
		key:       key,
		hc:        &http.Client{},
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
	}
}

var (
	ErrBadStatus   = errors.New("hostaway: bad status")
	ErrBadEnvelope = errors.New("hostaway: unexpected envelope")
	ErrEmptyResult = errors.New("hostaway: empty result")
)

// envelope is Hostaway's response wrapper.
type envelope struct {
	Status string           `json:"status"`
	Result []map[string]any `json:"result"`
}

// GetReviews lists the account's reviews. Success requires a 2xx status, a
// "success" envelope, and a non-empty result; anything else is an error.
func (c *Client) GetReviews(ctx context.Context) ([]map[string]any, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/reviews?accountId=%s", c.base, url.QueryEscape(c.accountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", "flex-reviews/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("hostaway", "reviews", 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("hostaway", "reviews", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d %s", ErrBadStatus, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("%w: status=%q", ErrBadEnvelope, env.Status)
	}
	if len(env.Result) == 0 {
		return nil, ErrEmptyResult
	}
	return env.Result, nil
}
