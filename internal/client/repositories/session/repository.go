// Package session persists the CLI login session (token and username)
// in the local SQLite database.
package session

import "context"

const (
	KeyAccessToken = "access_token"
	KeyUsername    = "username"
)

// Repository is a small key/value store. Get returns "" with a nil error
// for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
