// Package features stores feature proposals and reads them back as
// ranked summaries with a vote count derived from the votes table.
package features

import (
	"context"

	"github.com/dmitrijs2005/featurevote/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.Feature) (*models.Feature, error)
	// GetSummary returns common.ErrorNotFound for an unknown id.
	GetSummary(ctx context.Context, id int64, callerID *int64) (*models.FeatureSummary, error)
	// List expects an already normalized query.
	List(ctx context.Context, q models.ListQuery) ([]*models.FeatureSummary, error)
	// LockForShare takes a share lock on the feature row for the rest of
	// the transaction, or returns common.ErrorNotFound.
	LockForShare(ctx context.Context, id int64) error
	// OwnerForUpdate locks the feature row and returns its owner.
	OwnerForUpdate(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
