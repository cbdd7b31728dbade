// Package style provides helpers for comparing browser computed-style values.
//
// Computed styles arrive as strings exactly as the browser resolves them:
// colors as "rgb(64, 64, 64)" or occasionally hex, lengths as "32.0001px".
// This package normalizes those representations so validators can compare
// observed values against expectations with sensible tolerances instead of
// exact string equality.
package style
