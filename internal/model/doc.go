// Package model defines the typed result records produced by component probes.
//
// Every probe returns a snapshot struct describing what it observed on one
// page load: text content, computed styles, bounding boxes, link states.
// Snapshots are transient; they exist to be rendered into reports and have
// no identity beyond their position in a PageReport.
//
// Design decision: We use explicit structs with JSON tags instead of
// map[string]any result dictionaries because:
//  1. Report writers can rely on fields existing (zero values, not missing keys)
//  2. The compiler catches renames that would silently break a report
//  3. JSON/Excel serialization stays stable across refactors
package model
