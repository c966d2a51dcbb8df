// Package votes persists the vote ledger: one row per (user, feature) pair.
package votes

import "context"

type Repository interface {
	// LockPair serializes toggles of the same (user, feature) pair until
	// the surrounding transaction ends.
	LockPair(ctx context.Context, userID, featureID int64) error
	// Delete reports whether a vote row was removed.
	Delete(ctx context.Context, userID, featureID int64) (bool, error)
	// Insert reports whether a row was inserted; an existing row is left
	// as is and yields false without error.
	Insert(ctx context.Context, userID, featureID int64) (bool, error)
	Exists(ctx context.Context, userID, featureID int64) (bool, error)
	// CountFor returns common.ErrorNotFound for an unknown feature.
	CountFor(ctx context.Context, featureID int64) (int64, error)
	DeleteByFeature(ctx context.Context, featureID int64) (int64, error)
}
