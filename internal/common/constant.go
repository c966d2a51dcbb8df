package common

// AuthorizationHeaderName is the gRPC metadata key (and HTTP header) that
// carries the bearer session token.
const AuthorizationHeaderName = "authorization"

// BearerScheme prefixes the session token in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "x-request-id"
