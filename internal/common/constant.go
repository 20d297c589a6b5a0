package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on protected requests.
	AuthorizationHeaderName = "Authorization"

	// AuthenticateHeaderName is the challenge header sent with 401 responses.
	AuthenticateHeaderName = "WWW-Authenticate"

	// BearerScheme is the only supported authorization scheme.
	BearerScheme = "Bearer"

	// RequestIDHeaderName echoes the per-request id assigned by the server.
	RequestIDHeaderName = "X-Request-ID"
)
