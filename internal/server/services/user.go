// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and resolving the
// identity behind an access token.
package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/server/auth"
	"github.com/dmitrijs2005/featurevote/internal/server/config"
	"github.com/dmitrijs2005/featurevote/internal/server/credentials"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password digest
// - Authenticate: verify credentials and mint an access token
// - ResolveIdentity / CurrentUser: map a bearer token back to a user
type UserService struct {
	store                       dbx.Store
	repomanager                 repomanager.RepositoryManager
	hasher                      *credentials.Hasher
	tokens                      *auth.TokenService
	accessTokenValidityDuration time.Duration

	dummyOnce   sync.Once
	dummyDigest string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(store dbx.Store, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		store:                       store,
		repomanager:                 m,
		hasher:                      credentials.NewHasher(cfg.BcryptCost),
		tokens:                      auth.NewTokenService([]byte(cfg.SecretKey)),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register hashes the password and stores a new user. A taken username or
// email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.store)
	u, err := repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, classify(fmt.Errorf("error creating user: %w", err))
	}
	return u, nil
}

// Authenticate checks the password and returns a fresh access token.
// Unknown users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.store)
	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the response time of unknown users close to a real check
			s.hasher.Verify(password, s.dummy())
			return "", common.ErrorUnauthorized
		}
		return "", classify(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.UserName, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// ResolveIdentity returns the username a valid token was issued for.
func (s *UserService) ResolveIdentity(token string) (string, error) {
	username, err := s.tokens.Validate(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return username, nil
}

// CurrentUser resolves the token and loads its user. A token naming a user
// that no longer exists is unauthorized.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	username, err := s.ResolveIdentity(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.store).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, classify(err)
	}
	return user, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		d, err := s.hasher.Hash(hex.EncodeToString(common.GenerateRandByteArray(16)))
		if err == nil {
			s.dummyDigest = d
		}
	})
	return s.dummyDigest
}
