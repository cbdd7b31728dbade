// Package database stores validation run history in SQLite.
//
// Every completed run can be saved with its full report JSON plus the
// summary columns reports are queried by (pass/fail, broken link count).
// The history powers the compare subcommand, which diffs the two most
// recent runs of a page to show what regressed.
//
// The driver is modernc.org/sqlite, a pure-Go SQLite build, so the
// binary stays cgo-free and cross-compiles cleanly.
package database
