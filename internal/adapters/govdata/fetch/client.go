// Package fetch is the HTTP boundary shared by the government source adapters
// it owns retries, per attempt timeouts, rate limiting and body limits
package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perr "engagegov/internal/platform/errors"
	"engagegov/internal/platform/logger"
	"engagegov/internal/platform/metrics"

	"golang.org/x/time/rate"
)

const (
	defaultAttemptTimeout = 10 * time.Second
	defaultUA             = "engagegov/1.0 (+https://github.com/engagegov)"
	defaultAccept         = "application/json, application/xml;q=0.9, */*;q=0.5"
	defaultMaxBody        = 8 << 20
	defaultRate           = 5.0
	defaultBurst          = 10

	// unread bytes past this are not worth a kept alive connection
	maxDrain = 64 << 10
)

// Options configures a Client for one source
type Options struct {
	Source         string
	BaseURL        string
	UserAgent      string
	Accept         string
	AttemptTimeout time.Duration
	MaxBody        int64

	// RatePerSecond <= 0 uses the default; Burst <= 0 uses the default
	RatePerSecond float64
	Burst         int

	Retry RetryPolicy
}

// Response is a fully read upstream response
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	URL    string
}

// OK reports a 2xx status
func (r Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Client issues GET requests against one source
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	metrics *metrics.Metrics
	log     logger.Logger
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithMetrics records attempts on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithSleep replaces the backoff wait
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Client with defaults filled in
func New(o Options, opts ...Option) *Client {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Accept == "" {
		o.Accept = defaultAccept
	}
	if o.AttemptTimeout <= 0 {
		o.AttemptTimeout = defaultAttemptTimeout
	}
	if o.MaxBody <= 0 {
		o.MaxBody = defaultMaxBody
	}
	if o.RatePerSecond <= 0 {
		o.RatePerSecond = defaultRate
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	o.Retry = o.Retry.normalized()

	c := &Client{
		// per attempt deadlines come from the request context
		http:    &http.Client{},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(o.RatePerSecond), o.Burst),
		log:     logger.Named("govdata.fetch").With().Str("source", o.Source).Logger(),
		now:     time.Now,
		sleep:   sleepCtx,
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// Source returns the source label
func (c *Client) Source() string { return c.opts.Source }

// URL joins the base URL, path and query
func (c *Client) URL(path string, q url.Values) string {
	u := c.opts.BaseURL + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// Get fetches path with retries
//
// A 2xx returns the response and nil. Any other final outcome returns the last
// response (possibly zero) and a coded error. Caller cancellation returns ctx.Err()
// as is, so errors.Is(err, context.Canceled) holds.
func (c *Client) Get(ctx context.Context, path string, q url.Values) (Response, error) {
	target := c.URL(path, q)
	p := c.opts.Retry

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return Response{}, err
		}
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return Response{}, ctx.Err()
			}
			return Response{}, perr.Wrap(err, perr.ErrorCodeTooManyRequests, "local rate limit")
		}

		res, err := c.attempt(ctx, target)
		if ctx.Err() != nil {
			// the caller gave up; do not mistake it for a failed candidate
			return Response{}, ctx.Err()
		}
		if err == nil && res.OK() {
			return res, nil
		}

		if !p.ShouldRetry(attempt, res.Status, err) {
			return res, classify(target, res, err)
		}

		wait := p.Backoff(attempt)
		if ra := retryAfter(res.Header, c.now()); ra > 0 {
			wait = min(ra, p.Max)
		}
		c.log.Warn().
			Err(err).
			Int("status", res.Status).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Str("url", target).
			Msg("upstream transient failure retrying")
		if err := c.sleep(ctx, wait); err != nil {
			return Response{}, err
		}
	}
}

// attempt runs one bounded request and reads the body
func (c *Client) attempt(ctx context.Context, target string) (Response, error) {
	actx, cancel := context.WithTimeout(ctx, c.opts.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, http.MethodGet, target, nil)
	if err != nil {
		return Response{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "build request %s", target)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", c.opts.Accept)

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(c.opts.Source, outcome(0, err), c.now().Sub(start))
		return Response{}, err
	}
	defer func() {
		if cerr := drainAndClose(resp.Body); cerr != nil {
			c.log.Debug().Err(cerr).Str("url", target).Msg("close body failed")
		}
	}()

	out := Response{Status: resp.StatusCode, Header: resp.Header, URL: target}
	if out.OK() {
		out.Body, err = io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBody))
	} else {
		// a short tail is enough for diagnostics
		out.Body, _ = io.ReadAll(io.LimitReader(resp.Body, 2048))
	}
	lat := c.now().Sub(start)
	c.metrics.ObserveUpstream(c.opts.Source, outcome(out.Status, err), lat)

	c.log.Debug().
		Str("url", target).
		Int("status", out.Status).
		Int("bytes", len(out.Body)).
		Dur("latency", lat).
		Msg("upstream response")

	if err != nil {
		return out, err
	}
	return out, nil
}

// drainAndClose discards the unread rest of body so the connection can be reused
func drainAndClose(body io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrain))
	return body.Close()
}

func outcome(status int, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case err != nil:
		return "transport"
	case status >= 200 && status < 300:
		return "ok"
	default:
		return strconv.Itoa(status/100) + "xx"
	}
}

// retryAfter reads a Retry-After header in seconds or HTTP date form
func retryAfter(h http.Header, now time.Time) time.Duration {
	if h == nil {
		return 0
	}
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
