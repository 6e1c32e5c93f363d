// Package fetch performs JSON GET requests with bounded retries. Rate-limited
// responses (429) are retried with exponential backoff, transport failures are
// retried immediately, and any other non-2xx status ends the request as "absent".
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultMaxRetries  = 2
	DefaultBackoffBase = 1000 * time.Millisecond
)

// Doer sends an HTTP request; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Fetcher issues GET requests and decodes JSON bodies.
type Fetcher struct {
	client      Doer
	maxRetries  int
	backoffBase time.Duration
	sleep       SleepFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxRetries sets the number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRetries = n
		}
	}
}

// WithBackoffBase sets the delay before the first retry of a 429; it doubles for
// every following attempt.
func WithBackoffBase(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.backoffBase = d
		}
	}
}

// WithSleep replaces the backoff wait, mainly for tests.
func WithSleep(sleep SleepFunc) Option {
	return func(f *Fetcher) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// NewFetcher returns a Fetcher using client. A nil client selects http.DefaultClient.
func NewFetcher(client Doer, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		client:      client,
		maxRetries:  DefaultMaxRetries,
		backoffBase: DefaultBackoffBase,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// MaxRetries returns the configured retry count.
func (f *Fetcher) MaxRetries() int {
	return f.maxRetries
}

// FetchJSON fetches url with the configured retry count and decodes the body into
// dst. It reports found=false without an error when the server answered with a
// non-2xx status other than 429.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, dst any) (bool, error) {
	return f.FetchJSONWithRetries(ctx, url, f.maxRetries, dst)
}

// FetchJSONWithRetries is FetchJSON with an explicit retry count.
func (f *Fetcher) FetchJSONWithRetries(ctx context.Context, url string, maxRetries int, dst any) (bool, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		last := i == maxRetries

		status, body, err := f.get(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			lastErr = err
			if last {
				return false, &NetworkError{URL: url, Attempts: i + 1, Err: lastErr}
			}
			continue
		}

		switch {
		case status == http.StatusTooManyRequests:
			if last {
				return false, &RateLimitError{URL: url, Attempts: i + 1}
			}
			if err := f.sleep(ctx, f.backoffBase<<i); err != nil {
				return false, err
			}
			continue
		case status < 200 || status > 299:
			return false, nil
		}

		if err := json.Unmarshal(body, dst); err != nil {
			lastErr = fmt.Errorf("decode body: %w", err)
			if last {
				return false, &NetworkError{URL: url, Attempts: i + 1, Err: lastErr}
			}
			continue
		}
		return true, nil
	}
	// unreachable: the last iteration always returns
	return false, &NetworkError{URL: url, Attempts: maxRetries + 1, Err: lastErr}
}

// get performs one attempt. The body is only read for 2xx answers.
func (f *Fetcher) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
