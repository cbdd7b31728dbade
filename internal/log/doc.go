// Package log provides the application's logging setup on top of the
// standard slog package.
//
// Page validation logs routinely carry page-derived values: element
// text, hrefs, selector lists, occasionally whole DOM fragments when a
// probe reports what it saw. The TruncateHandler caps every string
// attribute so one oversized value cannot turn a log line into a page
// dump, while keeping the head and tail visible for debugging.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Info("slide probed",
//	    "title", title, // truncated if the page supplied a monster
//	)
package log
