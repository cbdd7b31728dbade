package report

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pagelint/pagelint/internal/model"
)

// Format identifies a report output format.
type Format string

// Supported report formats.
const (
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatExcel    Format = "xlsx"
)

// ParseFormats parses a comma-separated format list ("txt,json,xlsx").
// Unknown formats are an error naming the offender.
func ParseFormats(s string) ([]Format, error) {
	var formats []Format
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		switch f := Format(part); f {
		case FormatText, FormatJSON, FormatMarkdown, FormatHTML, FormatExcel:
			formats = append(formats, f)
		default:
			return nil, fmt.Errorf("unknown report format %q (supported: txt, json, md, html, xlsx)", part)
		}
	}
	return formats, nil
}

// FileName builds a report filename from the page URL, a timestamp, and
// the format extension: "www_example_com_products_20260828_153000.json".
func FileName(pageURL string, at time.Time, format Format) string {
	slug := "report"
	if u, err := url.Parse(pageURL); err == nil {
		raw := u.Host + strings.TrimSuffix(u.Path, ".html")
		cleaned := strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				return r
			default:
				return '_'
			}
		}, raw)
		cleaned = strings.Trim(cleaned, "_")
		if cleaned != "" {
			slug = cleaned
		}
	}
	return fmt.Sprintf("%s_%s.%s", slug, at.Format("20060102_150405"), format)
}

// WriteFiles renders the report in every requested format, one file per
// format under dir (created if needed). Returns the paths written.
func WriteFiles(report *model.PageReport, dir string, formats []Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	var paths []string
	for _, format := range formats {
		path := filepath.Join(dir, FileName(report.URL, report.DateScanned, format))
		if err := writeFile(report, path, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(report *model.PageReport, path string, format Format) error {
	f, err := os.Create(path) //nolint:gosec // path is built from our own report directory
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	var w Writer
	switch format {
	case FormatText:
		w = NewTextWriter(f, WithVerbose())
	case FormatJSON:
		w = NewJSONWriter(f, WithPrettyPrint())
	case FormatMarkdown:
		w = NewMarkdownWriter(f)
	case FormatHTML:
		w = NewHTMLWriter(f)
	case FormatExcel:
		w = NewExcelWriter(f)
	}

	_, werr := w.Write(report)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("write %s report: %w", format, werr)
	}
	return cerr
}
