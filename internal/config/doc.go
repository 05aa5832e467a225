// Package config loads service configuration from environment variables
// with sensible defaults, validating the size tiers the router depends on.
package config
