// Package services contains application services for the featurevote CLI.
// This file defines the authentication service: register, login with a
// locally cached session, session restore on start and logout.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/client/client"
	"github.com/dmitrijs2005/featurevote/internal/client/repositories/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session token.
//   - Restore: reuse a cached session; a rejected token is discarded.
//   - Logout: forget the session locally.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*api.User, error)
	Login(ctx context.Context, username, password string) error
	Restore(ctx context.Context) (string, error)
	Me(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session session.Repository
}

func NewAuthService(c client.Client, s session.Repository) AuthService {
	return &authService{client: c, session: s}
}

func (a *authService) Register(ctx context.Context, username, email, password string) (*api.User, error) {
	return a.client.Register(ctx, username, email, password)
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := a.session.Set(ctx, session.KeyAccessToken, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := a.session.Set(ctx, session.KeyUsername, username); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Restore loads a cached token and checks it with the server. It returns
// the session username, or "" when there is no usable session. When the
// server is unreachable the cached session is kept and ErrUnavailable is
// returned alongside the username.
func (a *authService) Restore(ctx context.Context) (string, error) {
	token, err := a.session.Get(ctx, session.KeyAccessToken)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", nil
	}

	username, err := a.session.Get(ctx, session.KeyUsername)
	if err != nil {
		return "", err
	}

	a.client.SetAccessToken(token)

	user, err := a.client.Me(ctx)
	switch {
	case err == nil:
		return user.Username, nil
	case errors.Is(err, client.ErrUnauthorized):
		return "", a.Logout(ctx)
	case errors.Is(err, client.ErrUnavailable):
		return username, err
	default:
		return "", err
	}
}

func (a *authService) Me(ctx context.Context) (*api.User, error) {
	return a.client.Me(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
