package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Target is one entry from a target list file: a URL with an optional
// locale label.
type Target struct {
	// URL is the page to validate.
	URL string

	// Locale is the locale label ("US/EN"). Defaults to "US/EN" when the
	// line carries no suffix.
	Locale string

	// Line is the 1-based line number in the source file, for error
	// reporting.
	Line int
}

// DefaultTargetLocale is applied to target lines without a locale suffix.
const DefaultTargetLocale = "US/EN"

// ParseTargets reads a target list: one URL per line, an optional
// "| locale" suffix, and #-prefixed comment lines.
//
// Example:
//
//	# production pages
//	https://www.solidigm.com/ | US/EN
//	https://www.solidigm.com/products.html
func ParseTargets(r io.Reader) ([]Target, error) {
	var targets []Target

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		target := Target{Locale: DefaultTargetLocale, Line: lineNum}
		if url, locale, found := strings.Cut(line, "|"); found {
			target.URL = strings.TrimSpace(url)
			if l := strings.TrimSpace(locale); l != "" {
				target.Locale = l
			}
		} else {
			target.URL = line
		}

		if target.URL == "" {
			continue
		}
		if !strings.HasPrefix(target.URL, "http://") && !strings.HasPrefix(target.URL, "https://") {
			return nil, fmt.Errorf("line %d: %q is not an absolute HTTP(S) URL", lineNum, target.URL)
		}
		targets = append(targets, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}
	return targets, nil
}

// LoadTargets reads a target list file.
func LoadTargets(path string) ([]Target, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided target file is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()

	targets, err := ParseTargets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTarget)
	}
	return targets, nil
}

// ValidateLocale checks that a locale label's language half parses as a
// BCP 47 tag. Labels are "REGION/LANG" ("US/EN"); a bad label is worth
// flagging early because it ends up in every report header.
func ValidateLocale(locale string) error {
	parts := strings.Split(locale, "/")
	lang := parts[len(parts)-1]
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("locale %q: %w", locale, err)
	}
	return nil
}
