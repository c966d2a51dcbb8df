// Package api holds the wire contract shared by the featurevote server and
// its clients: request/response messages, the JSON gRPC codec and the
// FeatureVoteService descriptor.
package api

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Token is returned by a successful login. TokenType is always "bearer".
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MeRequest struct{}

type CreateFeatureRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type Feature struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	VoteCount   int64     `json:"vote_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UserVoted   bool      `json:"user_voted"`
}

type ListFeaturesRequest struct {
	Skip   int    `json:"skip" query:"skip"`
	Limit  int    `json:"limit" query:"limit"`
	SortBy string `json:"sort_by" query:"sort_by"`
}

type ListFeaturesResponse struct {
	Features []Feature `json:"features"`
}

type GetFeatureRequest struct {
	ID int64 `json:"id"`
}

type ToggleVoteRequest struct {
	FeatureID int64 `json:"feature_id"`
}

type ToggleVoteResponse struct {
	Message string `json:"message"`
	Voted   bool   `json:"voted"`
}

type DeleteFeatureRequest struct {
	ID int64 `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

const (
	TokenTypeBearer = "bearer"

	MessageVoteAdded      = "Vote added"
	MessageVoteRemoved    = "Vote removed"
	MessageFeatureDeleted = "Feature deleted successfully"
)
