package services

import (
	"context"

	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/repomanager"
)

// VoteLedger owns the vote rows. For every (user, feature) pair the vote
// state flips exactly once per successful Toggle, regardless of how many
// toggles of the same pair run concurrently.
type VoteLedger struct {
	store       dbx.Store
	repomanager repomanager.RepositoryManager
}

func NewVoteLedger(store dbx.Store, m repomanager.RepositoryManager) *VoteLedger {
	return &VoteLedger{store: store, repomanager: m}
}

// Toggle removes the caller's vote if present, otherwise records it.
// A missing feature, including one deleted while the toggle waits, yields
// common.ErrorNotFound and leaves no vote behind.
func (l *VoteLedger) Toggle(ctx context.Context, userID, featureID int64) (models.ToggleResult, error) {
	var result models.ToggleResult

	err := l.store.WithTx(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := l.repomanager.Features(tx).LockForShare(ctx, featureID); err != nil {
			return err
		}

		votes := l.repomanager.Votes(tx)
		if err := votes.LockPair(ctx, userID, featureID); err != nil {
			return err
		}

		removed, err := votes.Delete(ctx, userID, featureID)
		if err != nil {
			return err
		}
		if removed {
			result.Voted = false
			return nil
		}

		// a conflicting row means the vote is already present, which is
		// the state this toggle wants
		if _, err := votes.Insert(ctx, userID, featureID); err != nil {
			return err
		}
		result.Voted = true
		return nil
	})
	if err != nil {
		return models.ToggleResult{}, classify(err)
	}
	return result, nil
}

// HasVoted reports whether the vote row exists. A missing feature is
// not an error here and simply reports false.
func (l *VoteLedger) HasVoted(ctx context.Context, userID, featureID int64) (bool, error) {
	ok, err := l.repomanager.Votes(l.store).Exists(ctx, userID, featureID)
	return ok, classify(err)
}

// CountFor returns the number of vote rows for the feature.
func (l *VoteLedger) CountFor(ctx context.Context, featureID int64) (int64, error) {
	n, err := l.repomanager.Votes(l.store).CountFor(ctx, featureID)
	return n, classify(err)
}
