// Package config holds runtime configuration for pagelint.
//
// Configuration comes from three layers, later layers overriding earlier:
//  1. Compiled-in defaults (viewport, timeouts, tolerances, selectors)
//  2. An optional .pagelint YAML file with per-site settings
//  3. Environment variables loaded via godotenv (.env) for local overrides
//
// CLI flags are applied on top by the cmd layer. The Config struct is
// passed through the application by dependency injection; there is no
// global configuration state.
package config
