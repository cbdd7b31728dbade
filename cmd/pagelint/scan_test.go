package main

import (
	"strings"
	"testing"

	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/model"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan <url>" {
			t.Errorf("expected use 'scan <url>', got %q", cmd.Use)
		}
	})

	t.Run("has common flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"config", "locale", "headless", "formats", "output-dir",
			"timeout", "link-timeout", "retries", "skip-links", "save",
			"log-json",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})

	t.Run("formats defaults to txt and json", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("formats")
		if flag == nil {
			t.Fatal("expected formats flag")
		}
		if flag.DefValue != "txt,json" {
			t.Errorf("expected default 'txt,json', got %q", flag.DefValue)
		}
	})

	t.Run("components defaults to homepage probes", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("components")
		if flag == nil {
			t.Fatal("expected components flag")
		}
		if flag.DefValue != defaultScanComponents {
			t.Errorf("expected default %q, got %q", defaultScanComponents, flag.DefValue)
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, nil); err == nil {
			t.Error("expected error for missing URL argument")
		}
		if err := cmd.Args(cmd, []string{"https://example.com/", "extra"}); err == nil {
			t.Error("expected error for extra arguments")
		}
		if err := cmd.Args(cmd, []string{"https://example.com/"}); err != nil {
			t.Errorf("expected one argument to be accepted, got %v", err)
		}
	})
}

// TestComponentSteps tests the --components flag mapping.
func TestComponentSteps(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	const url = "https://www.solidigm.com/"

	t.Run("default set", func(t *testing.T) {
		t.Parallel()

		steps, err := componentSteps(defaultScanComponents, nil, cfg, url, 1, 0, false, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// navigate + chrome + six component probes
		if len(steps) != 8 {
			t.Errorf("expected 8 steps, got %d", len(steps))
		}
		if steps[0].Name() != "navigate" {
			t.Errorf("expected first step 'navigate', got %q", steps[0].Name())
		}
	})

	t.Run("selected components in order", func(t *testing.T) {
		t.Parallel()

		steps, err := componentSteps("seriescards, modellist, pdp", nil, cfg, url, 1, 0, false, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names := make([]string, 0, len(steps))
		for _, step := range steps {
			names = append(names, step.Name())
		}
		want := []string{"navigate", "chrome", "series_cards", "model_list", "pdp"}
		if len(names) != len(want) {
			t.Fatalf("expected %d steps, got %v", len(want), names)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("step %d: expected %q, got %q", i, want[i], names[i])
			}
		}
	})

	t.Run("unknown component", func(t *testing.T) {
		t.Parallel()

		_, err := componentSteps("nav,bogus", nil, cfg, url, 1, 0, false, nil)
		if err == nil {
			t.Fatal("expected error for unknown component")
		}
		if !strings.Contains(err.Error(), "bogus") {
			t.Errorf("expected error to name the component, got %v", err)
		}
	})

	t.Run("empty entries are skipped", func(t *testing.T) {
		t.Parallel()

		steps, err := componentSteps("nav,,hero", nil, cfg, url, 1, 0, false, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(steps) != 4 {
			t.Errorf("expected 4 steps, got %d", len(steps))
		}
	})
}

// TestBuildConfig tests flag-to-config mapping.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Locale != "US/EN" {
			t.Errorf("expected default locale US/EN, got %q", cfg.Locale)
		}
		if !cfg.Headless {
			t.Error("expected headless by default")
		}
		if cfg.Sites == nil {
			t.Error("expected non-nil site configuration")
		}
	})

	t.Run("locale flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("locale", "DE/DE"); err != nil {
			t.Fatal(err)
		}
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Locale != "DE/DE" {
			t.Errorf("expected locale DE/DE, got %q", cfg.Locale)
		}
	})

	t.Run("invalid locale rejected", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("locale", "not a locale"); err != nil {
			t.Fatal(err)
		}
		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for invalid locale")
		}
	})

	t.Run("explicit missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", "/nonexistent/path/.pagelint"); err != nil {
			t.Fatal(err)
		}
		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestValidationError tests the exit-code conversion for failed runs.
func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("passing reports", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport("https://example.com/", "US/EN")
		rep.PageLinks = []model.LinkCheck{
			{URL: "https://example.com/a", StatusCode: 200, State: model.LinkStateValid},
		}
		if err := validationError(rep); err != nil {
			t.Errorf("expected nil for passing report, got %v", err)
		}
	})

	t.Run("broken link fails", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport("https://example.com/", "US/EN")
		rep.PageLinks = []model.LinkCheck{
			{URL: "https://example.com/gone", StatusCode: 404, State: model.LinkStateBroken},
		}
		err := validationError(rep)
		if err == nil {
			t.Fatal("expected error for broken link")
		}
		if !strings.Contains(err.Error(), "1 broken link") {
			t.Errorf("expected broken-link count in error, got %v", err)
		}
	})

	t.Run("run error fails", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport("https://example.com/", "US/EN")
		rep.Error = "navigation failed"
		if err := validationError(rep); err == nil {
			t.Error("expected error for failed run")
		}
	})

	t.Run("mixed batch counts failures", func(t *testing.T) {
		t.Parallel()

		good := model.NewPageReport("https://example.com/a", "US/EN")
		bad := model.NewPageReport("https://example.com/b", "US/EN")
		bad.PageLinks = []model.LinkCheck{
			{URL: "https://example.com/gone", StatusCode: 500, State: model.LinkStateBroken},
		}
		err := validationError(good, bad)
		if err == nil {
			t.Fatal("expected error for failing batch")
		}
		if !strings.Contains(err.Error(), "1 of 2") {
			t.Errorf("expected '1 of 2' in error, got %v", err)
		}
	})
}
