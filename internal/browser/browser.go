package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session owns one browser instance and its context.
//
// Design decision: One context for the whole run rather than one per page.
// The probes are read-mostly and don't pollute state between pages, and a
// shared context keeps the HTTP cache warm across a batch run.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	logger  *slog.Logger
	opts    Options
}

// Options configures a browser session.
type Options struct {
	// Headless controls whether the browser runs without a window.
	Headless bool

	// ViewportWidth and ViewportHeight set the page viewport.
	ViewportWidth  int
	ViewportHeight int

	// NavigationTimeout applies to page loads, ActionTimeout to element
	// operations.
	NavigationTimeout time.Duration
	ActionTimeout     time.Duration

	// UserAgent overrides the browser default when non-empty.
	UserAgent string

	// Logger receives session lifecycle events. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultOptions returns options suitable for probing desktop layouts.
func DefaultOptions() Options {
	return Options{
		Headless:          true,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		NavigationTimeout: 60 * time.Second,
		ActionTimeout:     30 * time.Second,
	}
}

// NewSession starts playwright, launches Chromium, and creates a context.
// Close must be called to release the browser process.
func NewSession(opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	logger := opts.Logger.With("component", "browser")

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		AcceptDownloads: playwright.Bool(false),
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(opts.UserAgent)
	}

	context, err := browser.NewContext(contextOpts)
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	logger.Debug("browser session started",
		"headless", opts.Headless,
		"viewport_width", opts.ViewportWidth,
		"viewport_height", opts.ViewportHeight,
	)

	return &Session{
		pw:      pw,
		browser: browser,
		context: context,
		logger:  logger,
		opts:    opts,
	}, nil
}

// NewPage creates a page with the session's default timeouts applied.
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	page.SetDefaultTimeout(float64(s.opts.ActionTimeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(s.opts.NavigationTimeout.Milliseconds()))
	return page, nil
}

// Navigate loads a URL, retrying transient failures with a linear backoff.
// It waits for DOMContentLoaded rather than the load event: marketing
// pages keep loading third-party tags long after the components the
// probes care about are in the DOM.
func (s *Session) Navigate(page playwright.Page, url string, maxRetries int) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Info("retrying navigation", "url", url, "attempt", attempt+1)
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		})
		if err == nil {
			return nil
		}
		lastErr = err
		s.logger.Warn("navigation failed", "url", url, "attempt", attempt+1, "error", err)
	}
	return fmt.Errorf("navigate to %s after %d attempts: %w", url, maxRetries+1, lastErr)
}

// Close releases the context, browser, and playwright driver.
func (s *Session) Close() error {
	var errs []error
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}
