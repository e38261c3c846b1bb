// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Queryspan. It lets AI assistants search the configured data sources and
// manage user records.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
