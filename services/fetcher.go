package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const maxJitter = 500 * time.Millisecond

// Fetcher performs HTTP GETs with a hard per-attempt timeout and exponential
// backoff on retryable failures (429, 5xx, transport errors). A timed-out
// attempt is terminal: the feed is slow, hammering it again within the same
// request only makes things worse.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	obs        Observer

	jitter func() time.Duration
}

func NewFetcher(timeout time.Duration, maxRetries int, baseDelay time.Duration, obs Observer) *Fetcher {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Fetcher{
		client:     &http.Client{},
		timeout:    timeout,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		obs:        obs,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxJitter)))
		},
	}
}

// Fetch GETs url, retrying up to maxRetries times. On exhaustion the returned
// error matches ErrDataUnavailable and wraps the last failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		f.obs.FetchAttempt(url, attempt)

		body, err := f.attempt(ctx, url)
		if err == nil {
			f.obs.FetchSucceeded(url, attempt+1, len(body))
			return body, nil
		}

		if !f.shouldRetry(err) || attempt >= f.maxRetries {
			f.obs.FetchFailed(url, attempt+1, err)
			return nil, &FetchError{URL: url, Attempts: attempt + 1, Err: err}
		}

		delay := f.baseDelay*(1<<uint(attempt)) + f.jitter()
		f.obs.FetchRetry(url, attempt, delay, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			f.obs.FetchFailed(url, attempt+1, ctx.Err())
			return nil, &FetchError{URL: url, Attempts: attempt + 1, Err: ctx.Err()}
		}
	}
}

// attempt performs a single GET bounded by the configured timeout.
func (f *Fetcher) attempt(ctx context.Context, url string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", ErrAttemptTimeout, f.timeout)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", ErrAttemptTimeout, f.timeout)
		}
		return nil, err
	}
	return body, nil
}

func (f *Fetcher) shouldRetry(err error) bool {
	if errors.Is(err, ErrAttemptTimeout) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return retryableStatus(httpErr.StatusCode)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Transport-level failure
	return true
}
