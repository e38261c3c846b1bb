// Package file provides a file-based implementation of the ConfigStore
// port. Configuration is persisted as TOML in the queryspan config
// directory; source credentials may also arrive via environment
// variables, which take precedence over file values.
package file
