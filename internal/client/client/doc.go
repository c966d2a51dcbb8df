// Package client contains client-side building blocks for featurevote.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     registration, login, the feature catalogue and voting.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the bearer session token via an interceptor and
//     maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     CLI session database, backed by SQLite and embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrAlreadyExists and ErrInvalidArgument.
package client
