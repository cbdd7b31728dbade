// Package report renders page validation results in multiple formats.
//
// The package defines a Writer interface with implementations for plain
// text, JSON, Markdown, HTML, and Excel output. A MultiWriter fans one
// report out to several destinations, which is how a run writes a
// human-readable file next to a machine-readable one.
//
// Text output targets the terminal, JSON targets tool integration,
// Markdown and HTML target sharing, and the Excel workbook carries the
// per-component detail sheets review teams work from.
package report
