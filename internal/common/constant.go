// Package common contains shared constants and helpers used across
// storefront client components.
package common

// Header names and values attached to outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerScheme            = "Bearer"
	JSONContentType         = "application/json"
)

// Fixed keys under which session state is persisted, whatever the backend.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	UserSnapshotKey = "user"
)
