// Package domain contains the core business entities for Queryspan.
// These types have no dependencies on adapters or external libraries.
package domain
