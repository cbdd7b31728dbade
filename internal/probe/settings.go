package probe

import (
	"log/slog"
	"time"

	"github.com/pagelint/pagelint/internal/config"
)

// Settings carries the tunables shared by every probe: site-specific
// selector overrides, the condition-wait budget, and the logger.
type Settings struct {
	// Site holds per-site selector overrides. Nil means built-in defaults.
	Site *config.SiteConfig

	// PollInterval and PollTimeout bound the condition-based waits used
	// after interactions (chevron clicks, dropdown selections).
	PollInterval time.Duration
	PollTimeout  time.Duration

	Logger *slog.Logger
}

// DefaultSettings returns probe settings with the standard wait budget.
func DefaultSettings() Settings {
	return Settings{
		PollInterval: config.DefaultPollInterval,
		PollTimeout:  config.DefaultPollTimeout,
	}
}

// selector resolves a component selector, preferring the site override.
func (s Settings) selector(component, fallback string) string {
	return s.Site.Selector(component, fallback)
}

func (s Settings) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s Settings) pollInterval() time.Duration {
	if s.PollInterval > 0 {
		return s.PollInterval
	}
	return config.DefaultPollInterval
}

func (s Settings) pollTimeout() time.Duration {
	if s.PollTimeout > 0 {
		return s.PollTimeout
	}
	return config.DefaultPollTimeout
}
