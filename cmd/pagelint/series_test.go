package main

import (
	"strings"
	"testing"

	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/model"
)

// TestNewSeriesCmd tests the series command creation.
func TestNewSeriesCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSeriesCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "series [D3|D5|D7]" {
			t.Errorf("expected use 'series [D3|D5|D7]', got %q", cmd.Use)
		}
	})

	t.Run("has data flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("data") == nil {
			t.Error("expected data flag")
		}
	})
}

// TestCheckSeriesIdentity tests the hero series cross-check.
func TestCheckSeriesIdentity(t *testing.T) {
	t.Parallel()

	sp := config.SeriesPage{Series: "D7", URL: "https://www.solidigm.com/products/data-center/d7.html"}

	t.Run("matching series passes", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.Hero = &model.HeroSnapshot{Found: true, IdentifiedSeries: "D7"}
		checkSeriesIdentity(rep, sp)
		if rep.Hero.Error != "" {
			t.Errorf("expected no error, got %q", rep.Hero.Error)
		}
	})

	t.Run("unidentified series passes", func(t *testing.T) {
		t.Parallel()

		// A hero without a recognizable series name is a finding for the
		// hero probe, not an identity mismatch.
		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.Hero = &model.HeroSnapshot{Found: true}
		checkSeriesIdentity(rep, sp)
		if rep.Hero.Error != "" {
			t.Errorf("expected no error, got %q", rep.Hero.Error)
		}
	})

	t.Run("wrong series records error", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.Hero = &model.HeroSnapshot{Found: true, IdentifiedSeries: "D5"}
		checkSeriesIdentity(rep, sp)
		if !strings.Contains(rep.Hero.Error, "expected D7") {
			t.Errorf("expected identity mismatch error, got %q", rep.Hero.Error)
		}
	})

	t.Run("existing error is kept", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.Hero = &model.HeroSnapshot{Found: true, IdentifiedSeries: "D5", Error: "probe failed"}
		checkSeriesIdentity(rep, sp)
		if rep.Hero.Error != "probe failed" {
			t.Errorf("expected original error kept, got %q", rep.Hero.Error)
		}
	})
}

// TestCheckExpectedModels tests the expected-model cross-check.
func TestCheckExpectedModels(t *testing.T) {
	t.Parallel()

	sp := config.SeriesPage{
		Series:         "D7",
		URL:            "https://www.solidigm.com/products/data-center/d7.html",
		ExpectedModels: []string{"D7-PS1010", "D7-PS1030"},
	}

	cardsFor := func(titles ...string) []model.ProductCard {
		cards := make([]model.ProductCard, 0, len(titles))
		for i, title := range titles {
			cards = append(cards, model.ProductCard{
				Index: i + 1,
				Title: model.TextStyle{Found: true, Text: title},
			})
		}
		return cards
	}

	t.Run("all models present", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.ModelList = &model.ModelListSnapshot{
			Found:        true,
			DefaultCards: cardsFor("Solidigm D7-PS1010", "Solidigm D7-PS1030"),
		}
		checkExpectedModels(rep, sp)
		if rep.ModelList.Error != "" {
			t.Errorf("expected no error, got %q", rep.ModelList.Error)
		}
	})

	t.Run("missing model recorded", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.ModelList = &model.ModelListSnapshot{
			Found:        true,
			DefaultCards: cardsFor("Solidigm D7-PS1010"),
		}
		checkExpectedModels(rep, sp)
		if !strings.Contains(rep.ModelList.Error, "D7-PS1030") {
			t.Errorf("expected missing model named in error, got %q", rep.ModelList.Error)
		}
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.ModelList = &model.ModelListSnapshot{
			Found:        true,
			DefaultCards: cardsFor("solidigm d7-ps1010", "SOLIDIGM D7-PS1030"),
		}
		checkExpectedModels(rep, sp)
		if rep.ModelList.Error != "" {
			t.Errorf("expected no error, got %q", rep.ModelList.Error)
		}
	})

	t.Run("no expectations is a no-op", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPageReport(sp.URL, "US/EN")
		rep.ModelList = &model.ModelListSnapshot{Found: true}
		checkExpectedModels(rep, config.SeriesPage{Series: "D7"})
		if rep.ModelList.Error != "" {
			t.Errorf("expected no error, got %q", rep.ModelList.Error)
		}
	})
}
