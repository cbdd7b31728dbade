// Package main provides the entry point for the pagelint CLI.
//
// pagelint validates marketing-site pages in a real browser: it probes
// UI components (navigation, carousels, hero banners, product lists),
// checks every link's HTTP status, and writes reports in text, JSON,
// Markdown, HTML, and Excel formats.
//
// Usage:
//
//	pagelint scan <url>
//	pagelint batch <targets-file>
//	pagelint datacenter --filters "2,2,1"
//
// See --help for all available options.
package main

// main is the entry point for pagelint.
func main() {
	Execute()
}
