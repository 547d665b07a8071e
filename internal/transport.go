package internal

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"
)

// RateLimitConfig controls how requests are throttled before reaching Reddit.
type RateLimitConfig struct {
	// RequestsPerMinute caps steady-state throughput. Defaults to 60 if zero.
	RequestsPerMinute float64
	// Burst allows short spikes above the steady-state rate. Defaults to 10 if zero.
	Burst int
}

const (
	DefaultRequestsPerMinute = 60
	DefaultRateLimitBurst    = 10
	SecondsPerMinute         = 60.0
	ParseFloatBitSize        = 64
)

// Transport is the shared HTTP layer: it stamps the User-Agent, asks for and
// decodes gzip bodies, and throttles requests using both a local token bucket
// and Reddit's rate limit headers. It is safe for concurrent use.
type Transport struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger

	limiter        *rate.Limiter
	mu             sync.Mutex
	forceWaitUntil time.Time
}

// NewTransport returns a Transport. A nil httpClient means http.DefaultClient,
// a nil rateCfg means the defaults and a nil logger discards output.
func NewTransport(httpClient *http.Client, userAgent string, rateCfg *RateLimitConfig, logger *slog.Logger) *Transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if rateCfg == nil {
		rateCfg = &RateLimitConfig{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Transport{
		client:    httpClient,
		userAgent: userAgent,
		logger:    logger,
		limiter:   buildLimiter(*rateCfg),
	}
}

// Do sends req. The returned body is already gunzipped when the server
// compressed it. Errors are network level only; status codes are left to the caller.
func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	if err := t.waitForRateLimit(req.Context()); err != nil {
		return nil, err
	}

	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	t.applyRateHeaders(resp)

	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		resp.Body = &gzipBody{Reader: zr, raw: resp.Body}
		resp.Header.Del("Content-Encoding")
		resp.Header.Del("Content-Length")
		resp.ContentLength = -1
		resp.Uncompressed = true
	}

	return resp, nil
}

type gzipBody struct {
	*gzip.Reader
	raw io.ReadCloser
}

func (b *gzipBody) Close() error {
	b.Reader.Close()
	return b.raw.Close()
}

func buildLimiter(cfg RateLimitConfig) *rate.Limiter {
	requestsPerMinute := cfg.RequestsPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}

	limitPerSecond := rate.Limit(requestsPerMinute / SecondsPerMinute)
	if limitPerSecond <= 0 {
		limitPerSecond = rate.Limit(1)
	}

	return rate.NewLimiter(limitPerSecond, burst)
}

func (t *Transport) waitForRateLimit(ctx context.Context) error {
	if err := t.waitForForcedDelay(ctx); err != nil {
		return err
	}

	if t.limiter == nil {
		return nil
	}

	return t.limiter.Wait(ctx)
}

func (t *Transport) waitForForcedDelay(ctx context.Context) error {
	for {
		t.mu.Lock()
		waitUntil := t.forceWaitUntil
		t.mu.Unlock()

		if waitUntil.IsZero() {
			return nil
		}

		now := time.Now()
		if !now.Before(waitUntil) {
			t.clearForcedDelay(waitUntil)
			return nil
		}

		t.logger.Debug("delaying request for reddit rate limit", "wait", waitUntil.Sub(now))

		timer := time.NewTimer(waitUntil.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			t.clearForcedDelay(waitUntil)
		}
	}
}

func (t *Transport) clearForcedDelay(previous time.Time) {
	t.mu.Lock()
	if previous.Equal(t.forceWaitUntil) {
		t.forceWaitUntil = time.Time{}
	}
	t.mu.Unlock()
}

func (t *Transport) applyRateHeaders(resp *http.Response) {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.ParseFloat(retryAfter, ParseFloatBitSize); err == nil && seconds > 0 {
			t.deferRequests(time.Duration(seconds * float64(time.Second)))
		}
	}

	remainingHeader := resp.Header.Get("X-Ratelimit-Remaining")
	resetHeader := resp.Header.Get("X-Ratelimit-Reset")
	if remainingHeader == "" || resetHeader == "" {
		return
	}

	remaining, errRemaining := strconv.ParseFloat(remainingHeader, ParseFloatBitSize)
	resetSeconds, errReset := strconv.ParseFloat(resetHeader, ParseFloatBitSize)
	if errRemaining != nil || errReset != nil || resetSeconds <= 0 {
		return
	}

	if remaining <= 1 {
		t.deferRequests(time.Duration(resetSeconds * float64(time.Second)))
	}
}

func (t *Transport) deferRequests(d time.Duration) {
	if d <= 0 {
		return
	}

	until := time.Now().Add(d)

	t.mu.Lock()
	if until.After(t.forceWaitUntil) {
		t.forceWaitUntil = until
	}
	t.mu.Unlock()
}
