package models

import "time"

// FeatureStatusOpen is the status every new feature starts in.
const FeatureStatusOpen = "open"

// Feature is a proposal owned by a user. It carries no vote counter: the
// count is derived from vote rows whenever a FeatureSummary is read.
type Feature struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FeatureSummary is a feature as shown in listings.
type FeatureSummary struct {
	Feature
	UserName  string
	VoteCount int64
	// UserVoted is relative to the caller of the listing; always false
	// when the caller is anonymous.
	UserVoted bool
}

// SortKey selects the ordering of a feature listing.
type SortKey string

const (
	// SortByVotes orders by derived vote count descending, then id ascending.
	SortByVotes SortKey = "votes"
	// SortByRecency orders by creation time descending, then id descending.
	SortByRecency SortKey = "recency"
)

// ParseSortKey maps a client-supplied sort_by value onto a SortKey:
// "votes" (or nothing) means SortByVotes, anything else SortByRecency.
func ParseSortKey(s string) SortKey {
	switch s {
	case "", "votes", "by_votes":
		return SortByVotes
	default:
		return SortByRecency
	}
}

// ListQuery describes one page of a feature listing.
type ListQuery struct {
	Sort   SortKey
	Offset int
	Limit  int
	// CallerID is the resolved identity of the viewer, nil if anonymous.
	CallerID *int64
}
