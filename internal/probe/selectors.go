package probe

// Built-in CSS selectors, written against the AEM core-component class
// names the target site uses. Every one can be overridden per site in
// the configuration file; see config.SiteConfig.Selectors.
const (
	defaultNavigationSelector = "nav.cmp-navigation, header nav, .cmp-header__nav"
	defaultMenuItemSelector   = ".cmp-navigation__item--level-0, nav > ul > li"

	defaultCarouselSelector = ".cmp-carousel, .carousel, .splide"
	defaultSlideSelector    = ".cmp-carousel__item, .splide__slide, .carousel-item"

	defaultHeroSelector       = ".cmp-hero, .hero, .cmp-teaser--hero"
	defaultBreadcrumbSelector = ".cmp-breadcrumb__item, .breadcrumb li"

	defaultArticleListSelector = ".cmp-article-list, .related-articles"
	defaultArticleCardSelector = ".cmp-article-list__article"

	defaultBladeSelector = ".cmp-blade, .blade"

	defaultFeaturedSelector    = ".cmp-product-cards, .featured-products"
	defaultProductCardSelector = ".cmp-product-card, .product-card"

	defaultModelListSelector = ".modellist, .model-list"
	defaultDropdownSelector  = ".cmp-custom-select"

	defaultSeriesCardsSelector = ".series-list, .cmp-tilelist"
	defaultSeriesCardSelector  = ".series-list__serie, .cmp-tilelist__item"

	defaultHeaderSelector = "header, .cmp-experiencefragment--header"
	defaultFooterSelector = "footer, .cmp-experiencefragment--footer"

	defaultPDPSelector = ".cmp-product-detail, .product-detail, main"
)
