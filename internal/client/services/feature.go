package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/client/client"
)

const (
	SortVotes   = "votes"
	SortRecency = "recency"
)

// FeatureService wraps the feature catalogue calls used by the CLI.
type FeatureService interface {
	Create(ctx context.Context, title, description string) (*api.Feature, error)
	List(ctx context.Context, sortBy string, skip, limit int) ([]api.Feature, error)
	Get(ctx context.Context, id int64) (*api.Feature, error)
	ToggleVote(ctx context.Context, id int64) (*api.ToggleVoteResponse, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type featureService struct {
	client client.Client
}

func NewFeatureService(c client.Client) FeatureService {
	return &featureService{client: c}
}

func (s *featureService) Create(ctx context.Context, title, description string) (*api.Feature, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", client.ErrInvalidArgument)
	}
	return s.client.CreateFeature(ctx, title, strings.TrimSpace(description))
}

// List accepts "votes" (or "") and "recency"; any other key is rejected
// locally rather than silently falling back on the server.
func (s *featureService) List(ctx context.Context, sortBy string, skip, limit int) ([]api.Feature, error) {
	switch sortBy {
	case "":
		sortBy = SortVotes
	case SortVotes, SortRecency:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", client.ErrInvalidArgument, sortBy)
	}
	return s.client.ListFeatures(ctx, sortBy, skip, limit)
}

func (s *featureService) Get(ctx context.Context, id int64) (*api.Feature, error) {
	return s.client.GetFeature(ctx, id)
}

func (s *featureService) ToggleVote(ctx context.Context, id int64) (*api.ToggleVoteResponse, error) {
	return s.client.ToggleVote(ctx, id)
}

func (s *featureService) Delete(ctx context.Context, id int64) (string, error) {
	return s.client.DeleteFeature(ctx, id)
}
