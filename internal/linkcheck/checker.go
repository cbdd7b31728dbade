package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pagelint/pagelint/internal/model"
	"golang.org/x/sync/errgroup"
)

// Checker probes URLs for HTTP status.
//
// Design decision: We hold a single http.Client rather than creating one
// per check because:
//  1. Connection pooling only works with a shared client
//  2. Timeout and redirect policy stay consistent across checks
//  3. Tests can inject a client with a mock transport
type Checker struct {
	client *http.Client

	// userAgent is sent with every probe. Some CDNs answer 403 to
	// requests without a browser-like User-Agent.
	userAgent string

	// timeout is the per-request timeout.
	timeout time.Duration

	// concurrency bounds simultaneous checks in CheckAll.
	concurrency int
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header for probes.
func WithUserAgent(ua string) Option {
	return func(c *Checker) {
		c.userAgent = ua
	}
}

// WithConcurrency bounds the number of simultaneous checks in CheckAll.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithClient replaces the HTTP client. Intended for tests.
func WithClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		userAgent:   "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		timeout:     5 * time.Second,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		}
	}
	return c
}

// Probeable reports whether a URL uses a scheme worth probing.
// mailto:, tel:, javascript:, and bare fragments are skipped.
func Probeable(rawURL string) bool {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	// Relative URLs have no scheme; they become probeable once resolved
	// against a base.
	return u.Scheme == "" || u.Scheme == "http" || u.Scheme == "https"
}

// Resolve resolves a possibly-relative href against a base page URL.
// Absolute URLs pass through unchanged.
func Resolve(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base %q: %w", base, err)
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parse href %q: %w", href, err)
	}
	return b.ResolveReference(h).String(), nil
}

// Check probes one URL and returns its classification. It never fails:
// transport errors are reported inside the LinkCheck as not_checked.
func (c *Checker) Check(ctx context.Context, rawURL string) model.LinkCheck {
	check := model.LinkCheck{URL: rawURL}

	if !Probeable(rawURL) {
		check.State = model.LinkStateSkipped
		check.Message = "non-HTTP link skipped"
		return check
	}

	status, err := c.probe(ctx, http.MethodHead, rawURL)
	// Some servers reject HEAD with 405 or close the connection; retry
	// those with GET before classifying.
	if err != nil || status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		getStatus, getErr := c.probe(ctx, http.MethodGet, rawURL)
		if getErr == nil {
			status, err = getStatus, nil
		} else if err == nil {
			status, err = getStatus, getErr
		}
	}

	if err != nil {
		check.StatusCode = 0
		check.State = model.LinkStateNotChecked
		check.Message = err.Error()
		return check
	}

	check.StatusCode = status
	check.State = model.ClassifyStatus(status)
	return check
}

// probe performs one request and returns the response status.
func (c *Checker) probe(ctx context.Context, method, rawURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
	_ = resp.Body.Close()

	return resp.StatusCode, nil
}

// CheckAll probes a set of URLs concurrently, bounded by the configured
// concurrency. Results preserve input order. Duplicate URLs are probed
// once and the result reused.
func (c *Checker) CheckAll(ctx context.Context, urls []string) []model.LinkCheck {
	results := make([]model.LinkCheck, len(urls))

	// Dedupe: first index wins, later duplicates copy its result.
	first := make(map[string]int, len(urls))
	var dupes [][2]int
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, u := range urls {
		if prev, seen := first[u]; seen {
			dupes = append(dupes, [2]int{i, prev})
			continue
		}
		first[u] = i

		g.Go(func() error {
			results[i] = c.Check(ctx, u)
			return nil
		})
	}

	// Workers only return nil; Wait is for synchronization.
	_ = g.Wait()

	for _, d := range dupes {
		results[d[0]] = results[d[1]]
		results[d[0]].URL = urls[d[0]]
	}
	return results
}
