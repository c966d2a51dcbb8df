package client

import (
	"context"

	"github.com/dmitrijs2005/featurevote/internal/api"
)

type Client interface {
	Close() error
	SetAccessToken(token string)
	Register(ctx context.Context, username, email, password string) (*api.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*api.User, error)
	CreateFeature(ctx context.Context, title, description string) (*api.Feature, error)
	ListFeatures(ctx context.Context, sortBy string, skip, limit int) ([]api.Feature, error)
	GetFeature(ctx context.Context, id int64) (*api.Feature, error)
	ToggleVote(ctx context.Context, featureID int64) (*api.ToggleVoteResponse, error)
	DeleteFeature(ctx context.Context, id int64) (string, error)
	Ping(ctx context.Context) error
}
