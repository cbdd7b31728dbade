package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/browser"
	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/model"
)

// Carousel probes every carousel on the page: slide content, chevron
// navigation, and progress indicators.
//
// Design decision: a chevron click is verified by watching the active
// slide index change, not by sleeping a fixed interval and hoping the
// animation finished. The wait is bounded by PollTimeout; a click whose
// index never changes is recorded as unsuccessful, not as a probe error.
type Carousel struct {
	Settings

	// ClicksPerDirection is how many times each chevron is clicked.
	// Zero means config.DefaultChevronClicks.
	ClicksPerDirection int

	// TestButtons enables click-testing slide CTA buttons, which
	// navigates away and back and so costs a page load per button.
	TestButtons bool
}

// Name identifies the probe in report output.
func (c *Carousel) Name() string { return "carousel" }

func (c *Carousel) clicks() int {
	if c.ClicksPerDirection > 0 {
		return c.ClicksPerDirection
	}
	return config.DefaultChevronClicks
}

// Probe inspects every carousel on the page.
func (c *Carousel) Probe(ctx context.Context, page playwright.Page) *model.CarouselSnapshot {
	snap := &model.CarouselSnapshot{}

	containers, err := page.Locator(c.selector("carousel", defaultCarouselSelector)).All()
	if err != nil {
		snap.Error = fmt.Sprintf("list carousels: %v", err)
		return snap
	}
	if len(containers) == 0 {
		return snap
	}
	snap.Found = true

	for i, container := range containers {
		if err := ctx.Err(); err != nil {
			snap.Error = err.Error()
			return snap
		}
		snap.Carousels = append(snap.Carousels, c.probeOne(ctx, page, container, i+1))
	}

	c.logger().Debug("carousels probed", "count", len(snap.Carousels))
	return snap
}

func (c *Carousel) probeOne(ctx context.Context, page playwright.Page, container playwright.Locator, index int) model.Carousel {
	car := model.Carousel{Index: index}

	scrollTo(container)
	car.Container = box(container)

	slides, err := container.Locator(c.selector("slide", defaultSlideSelector)).All()
	if err != nil {
		car.Error = fmt.Sprintf("list slides: %v", err)
		return car
	}
	car.SlideCount = len(slides)

	for i, slide := range slides {
		car.Slides = append(car.Slides, c.probeSlide(slide, i+1))
	}

	car.Chevrons = c.probeChevrons(ctx, container, len(slides))
	car.Progress = c.probeProgress(container)

	if c.TestButtons {
		c.testSlideButtons(ctx, page, container, &car)
	}

	title := container.Locator(".cmp-carousel-title, h2, h3").First()
	if exists(title) {
		car.FontStyles = append(car.FontStyles, fontStyleOf(title, "title"))
	}
	return car
}

func (c *Carousel) probeSlide(slide playwright.Locator, index int) model.Slide {
	s := model.Slide{Index: index}

	s.Title = trimmedText(slide.Locator("h2, h3, .cmp-teaser__title, .slide-title").First())
	s.Description = trimmedText(slide.Locator("p, .cmp-teaser__description, .slide-description").First())
	s.BackgroundImage = backgroundImageURL(slide)

	img := slide.Locator("img").First()
	if exists(img) {
		s.Image = imageInfoOf(img)
	}

	buttons, err := slide.Locator("a.cmp-button, button, .cta a").All()
	if err == nil {
		s.ButtonCount = len(buttons)
		for _, b := range buttons {
			s.Buttons = append(s.Buttons, model.ButtonProbe{
				Text:    trimmedText(b),
				Visible: visible(b),
				Enabled: enabled(b),
			})
		}
	}

	anchors, err := slide.Locator("a[href]").All()
	if err == nil {
		for _, a := range anchors {
			href := attribute(a, "href")
			if href == "" || strings.HasPrefix(href, "#") {
				continue
			}
			s.Links = append(s.Links, model.LinkCheck{
				URL:     href,
				Text:    trimmedText(a),
				Visible: visible(a),
			})
		}
	}
	return s
}

// testSlideButtons click-tests the first CTA button of each slide: click,
// wait for the URL to change, then navigate back. Only visible, enabled
// buttons are clicked, and a click that never navigates is a finding,
// not an error.
func (c *Carousel) testSlideButtons(ctx context.Context, page playwright.Page, container playwright.Locator, car *model.Carousel) {
	for si := range car.Slides {
		slide := container.Locator(c.selector("slide", defaultSlideSelector)).Nth(si)
		for bi := range car.Slides[si].Buttons {
			probe := &car.Slides[si].Buttons[bi]
			if !probe.Visible || !probe.Enabled {
				continue
			}

			button := slide.Locator("a.cmp-button, button, .cta a").Nth(bi)
			probe.FromURL = page.URL()
			probe.ClickTested = true

			if err := safeClick(button); err != nil {
				probe.Error = err.Error()
				continue
			}
			landed, err := browser.PollValue(ctx, c.pollInterval(), c.pollTimeout(), probe.FromURL, func() (string, error) {
				return page.URL(), nil
			})
			if err != nil && ctx.Err() != nil {
				probe.Error = ctx.Err().Error()
				return
			}
			probe.ToURL = landed
			probe.Navigated = landed != probe.FromURL

			if probe.Navigated {
				if _, err := page.GoBack(playwright.PageGoBackOptions{
					WaitUntil: playwright.WaitUntilStateDomcontentloaded,
				}); err != nil {
					probe.Error = fmt.Sprintf("navigate back: %v", err)
					return
				}
			}
			// One button per slide keeps the probe's page loads bounded.
			break
		}
	}
}

// probeChevrons clicks each direction's chevron and records whether the
// active slide moved. Next is tested before prev so the prev clicks have
// somewhere to go back to.
func (c *Carousel) probeChevrons(ctx context.Context, container playwright.Locator, slideCount int) model.ChevronProbe {
	probe := model.ChevronProbe{}

	next := container.Locator(c.selector("chevron_next", ".splide__arrow--next, .cmp-carousel__action--next, button[aria-label*=ext]")).First()
	prev := container.Locator(c.selector("chevron_prev", ".splide__arrow--prev, .cmp-carousel__action--previous, button[aria-label*=rev]")).First()

	probe.HasNext = exists(next)
	probe.HasPrev = exists(prev)
	probe.NextVisible = probe.HasNext && visible(next)
	probe.PrevVisible = probe.HasPrev && visible(prev)

	// A single slide has nowhere to move; skip the clicks rather than
	// record guaranteed failures.
	if slideCount < 2 {
		return probe
	}

	for _, dir := range []struct {
		direction model.ChevronDirection
		chevron   playwright.Locator
		present   bool
	}{
		{model.ChevronNext, next, probe.HasNext},
		{model.ChevronPrev, prev, probe.HasPrev},
	} {
		if !dir.present {
			continue
		}
		for attempt := 1; attempt <= c.clicks(); attempt++ {
			click, err := c.clickChevron(ctx, container, dir.chevron, dir.direction, attempt)
			if err != nil {
				probe.Error = err.Error()
				return probe
			}
			probe.Clicks = append(probe.Clicks, click)
		}
	}
	return probe
}

// clickChevron performs one click and waits for the active slide index to
// move off its pre-click value. Timing out is a finding (Changed=false),
// not an error; only a failed click or a cancelled context is an error.
func (c *Carousel) clickChevron(ctx context.Context, container, chevron playwright.Locator, dir model.ChevronDirection, attempt int) (model.ChevronClick, error) {
	click := model.ChevronClick{Direction: dir, Attempt: attempt}

	click.Before = c.activeSlide(container)
	if err := safeClick(chevron); err != nil {
		return click, fmt.Errorf("click %s chevron: %w", dir, err)
	}

	after, err := browser.PollValue(ctx, c.pollInterval(), c.pollTimeout(), click.Before, func() (int, error) {
		return c.activeSlide(container), nil
	})
	if err != nil && ctx.Err() != nil {
		return click, ctx.Err()
	}

	click.After = after
	click.Changed = after != click.Before
	return click, nil
}

// activeSlide returns the 1-based index of the carousel's active slide,
// or 0 when none can be determined. Detection falls back in order: an
// is-active/active slide class, the active pagination dot, then the first
// slide with a rendered bounding box.
func (c *Carousel) activeSlide(container playwright.Locator) int {
	slides, err := container.Locator(c.selector("slide", defaultSlideSelector)).All()
	if err != nil || len(slides) == 0 {
		return 0
	}

	for i, slide := range slides {
		class := attribute(slide, "class")
		if strings.Contains(class, "is-active") || strings.Contains(class, "active") {
			return i + 1
		}
	}

	dots, err := container.Locator(".splide__pagination__page, .cmp-carousel__indicator, .dot").All()
	if err == nil {
		for i, dot := range dots {
			class := attribute(dot, "class")
			if strings.Contains(class, "is-active") || strings.Contains(class, "active") ||
				attribute(dot, "aria-selected") == "true" {
				return i + 1
			}
		}
	}

	for i, slide := range slides {
		if box(slide).Rendered() {
			return i + 1
		}
	}
	return 0
}

func (c *Carousel) probeProgress(container playwright.Locator) model.ProgressBar {
	sel := c.selector("progress", ".splide__progress, .carousel-progress, .cmp-carousel__indicators")
	loc := container.Locator(sel).First()
	if !exists(loc) {
		return model.ProgressBar{}
	}
	return model.ProgressBar{
		Exists:         true,
		Visible:        visible(loc),
		IndicatorCount: elementCount(loc.Locator("li, button, .dot")),
	}
}
