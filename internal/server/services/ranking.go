package services

import (
	"context"

	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/repomanager"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

type RankingService struct {
	store       dbx.Store
	repomanager repomanager.RepositoryManager
}

func NewRankingService(store dbx.Store, m repomanager.RepositoryManager) *RankingService {
	return &RankingService{store: store, repomanager: m}
}

// List returns one page of feature summaries. Counts and the caller's
// voted flag come from a single query, so they describe the same snapshot.
func (s *RankingService) List(ctx context.Context, q models.ListQuery) ([]*models.FeatureSummary, error) {
	list, err := s.repomanager.Features(s.store).List(ctx, normalize(q))
	if err != nil {
		return nil, classify(err)
	}
	return list, nil
}

func normalize(q models.ListQuery) models.ListQuery {
	if q.Sort == "" {
		q.Sort = models.SortByVotes
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}
