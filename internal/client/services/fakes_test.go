package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/client/client"
	"github.com/dmitrijs2005/featurevote/internal/client/repositories/session"
	"github.com/stretchr/testify/require"
)

func setupSession(t *testing.T) *session.SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteRepository(db)
}

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	token string

	loginToken string
	loginErr   error
	meUser     *api.User
	meErr      error
	pingErr    error
	closed     bool

	lastRegister []string
	lastList     []any
	lastCreate   []string
	lastID       int64
}

func (f *fakeClient) Close() error                { f.closed = true; return nil }
func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) Register(_ context.Context, username, email, password string) (*api.User, error) {
	f.lastRegister = []string{username, email, password}
	return &api.User{ID: 1, Username: username, Email: email}, nil
}

func (f *fakeClient) Login(_ context.Context, username, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.token = f.loginToken
	return f.loginToken, nil
}

func (f *fakeClient) Me(context.Context) (*api.User, error) { return f.meUser, f.meErr }

func (f *fakeClient) CreateFeature(_ context.Context, title, description string) (*api.Feature, error) {
	f.lastCreate = []string{title, description}
	return &api.Feature{ID: 1, Title: title, Description: description}, nil
}

func (f *fakeClient) ListFeatures(_ context.Context, sortBy string, skip, limit int) ([]api.Feature, error) {
	f.lastList = []any{sortBy, skip, limit}
	return []api.Feature{{ID: 1}}, nil
}

func (f *fakeClient) GetFeature(_ context.Context, id int64) (*api.Feature, error) {
	f.lastID = id
	return &api.Feature{ID: id}, nil
}

func (f *fakeClient) ToggleVote(_ context.Context, id int64) (*api.ToggleVoteResponse, error) {
	f.lastID = id
	return &api.ToggleVoteResponse{Message: api.MessageVoteAdded, Voted: true}, nil
}

func (f *fakeClient) DeleteFeature(_ context.Context, id int64) (string, error) {
	f.lastID = id
	return api.MessageFeatureDeleted, nil
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
