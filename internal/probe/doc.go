// Package probe inspects live pages through a Playwright session and
// records what it finds as typed snapshots.
//
// Each component gets its own probe type (Navigation, Carousel, Hero, ...)
// holding the CSS selectors and tunables it needs. A probe never fails the
// run: element lookups that miss leave Found=false, and unexpected errors
// land in the snapshot's Error field so report writers can surface them.
//
// All element reads go through the helpers in element.go, which cap the
// wait on every read so a missing node costs milliseconds, not the page's
// full action timeout.
package probe
