// Package browser manages the playwright browser session used by all probes.
//
// One Session owns the playwright driver, browser process, and browser
// context; probes receive pages created from it. The package also provides
// Poll, a condition-based wait used wherever the probes previously relied
// on fixed sleeps: instead of "click, sleep 500ms, read", probes click and
// poll a predicate with a bounded timeout, which is both faster on quick
// pages and less flaky on slow ones.
package browser
