// Package driven defines the outbound port interfaces the core depends on.
// Adapters under internal/adapters/driven implement these interfaces.
package driven
