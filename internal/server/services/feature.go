package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/repomanager"
)

type FeatureService struct {
	store       dbx.Store
	repomanager repomanager.RepositoryManager
}

func NewFeatureService(store dbx.Store, m repomanager.RepositoryManager) *FeatureService {
	return &FeatureService{store: store, repomanager: m}
}

// Create stores a feature owned by userID and returns it as a summary
// with zero votes.
func (s *FeatureService) Create(ctx context.Context, userID int64, title, description string) (*models.FeatureSummary, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	repo := s.repomanager.Features(s.store)
	f, err := repo.Create(ctx, &models.Feature{UserID: userID, Title: title, Description: description})
	if err != nil {
		return nil, classify(err)
	}

	summary, err := repo.GetSummary(ctx, f.ID, &userID)
	if err != nil {
		return nil, classify(err)
	}
	return summary, nil
}

func (s *FeatureService) Get(ctx context.Context, featureID int64, callerID *int64) (*models.FeatureSummary, error) {
	summary, err := s.repomanager.Features(s.store).GetSummary(ctx, featureID, callerID)
	if err != nil {
		return nil, classify(err)
	}
	return summary, nil
}

// Delete removes a feature and all of its votes in one transaction. Only
// the owner may delete.
func (s *FeatureService) Delete(ctx context.Context, userID, featureID int64) error {
	err := s.store.WithTx(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		features := s.repomanager.Features(tx)

		owner, err := features.OwnerForUpdate(ctx, featureID)
		if err != nil {
			return err
		}
		if owner != userID {
			return common.ErrorForbidden
		}

		if _, err := s.repomanager.Votes(tx).DeleteByFeature(ctx, featureID); err != nil {
			return err
		}
		return features.Delete(ctx, featureID)
	})
	return classify(err)
}
