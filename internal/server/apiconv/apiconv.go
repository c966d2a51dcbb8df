// Package apiconv converts server models into wire messages shared by the
// gRPC and HTTP transports.
package apiconv

import (
	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
)

func User(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Username:  u.UserName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func Feature(s *models.FeatureSummary) *api.Feature {
	return &api.Feature{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		UserID:      s.UserID,
		Username:    s.UserName,
		VoteCount:   s.VoteCount,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UserVoted:   s.UserVoted,
	}
}

// Features never returns nil, so an empty page encodes as [].
func Features(list []*models.FeatureSummary) []api.Feature {
	out := make([]api.Feature, 0, len(list))
	for _, s := range list {
		out = append(out, *Feature(s))
	}
	return out
}

func ToggleMessage(r models.ToggleResult) *api.ToggleVoteResponse {
	if r.Voted {
		return &api.ToggleVoteResponse{Message: api.MessageVoteAdded, Voted: true}
	}
	return &api.ToggleVoteResponse{Message: api.MessageVoteRemoved, Voted: false}
}

// ListQuery maps client paging parameters onto a ListQuery. Clamping is
// left to the ranking service.
func ListQuery(req *api.ListFeaturesRequest, callerID *int64) models.ListQuery {
	return models.ListQuery{
		Sort:     models.ParseSortKey(req.SortBy),
		Offset:   req.Skip,
		Limit:    req.Limit,
		CallerID: callerID,
	}
}
