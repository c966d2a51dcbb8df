package models

import "time"

// Vote records that UserID voted for FeatureID. The pair is unique.
type Vote struct {
	UserID    int64
	FeatureID int64
	CreatedAt time.Time
}

// ToggleResult is the vote state after a toggle.
type ToggleResult struct {
	Voted bool
}
