// Package common contains shared constants and sentinel errors used across
// PantryKeeper components.
package common

// DefaultCategory is assigned to inventory items created without a category.
const DefaultCategory = "Pantry"

// TokenType is reported to clients alongside every issued access token.
const TokenType = "bearer"

// AuthorizationHeaderName carries the bearer token on inbound requests.
const AuthorizationHeaderName = "Authorization"
