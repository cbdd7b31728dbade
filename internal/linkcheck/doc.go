// Package linkcheck probes outbound links for HTTP status.
//
// The checker performs lightweight status probes (HEAD with a GET fallback
// for servers that reject HEAD) and classifies each URL into one of three
// buckets: valid (2xx/3xx), broken (4xx/5xx), or not checked (transport
// failure). Non-HTTP schemes are skipped outright.
//
// Design decision: Transport failures are never reported as broken links.
// A timeout or DNS hiccup says nothing about the target page, and folding
// it into "broken" makes every flaky run look like a regression.
package linkcheck
