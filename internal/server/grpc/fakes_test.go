package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/logging"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
)

type fakeUsers struct {
	regErr   error
	loginErr error
	token    string

	// users maps accepted tokens to their owner
	users   map[string]*models.User
	currErr error

	gotRegister []string
}

func (f *fakeUsers) Register(_ context.Context, username, email, password string) (*models.User, error) {
	f.gotRegister = []string{username, email, password}
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: 1, UserName: username, Email: email, CreatedAt: time.Unix(0, 0).UTC()}, nil
}

func (f *fakeUsers) Authenticate(context.Context, string, string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeUsers) CurrentUser(_ context.Context, token string) (*models.User, error) {
	if f.currErr != nil {
		return nil, f.currErr
	}
	u, ok := f.users[token]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

type fakeFeatures struct {
	err        error
	gotCaller  *int64
	gotOwner   int64
	gotID      int64
	gotTitle   string
	deleteCall int
}

func (f *fakeFeatures) Create(_ context.Context, userID int64, title, description string) (*models.FeatureSummary, error) {
	f.gotOwner, f.gotTitle = userID, title
	if f.err != nil {
		return nil, f.err
	}
	return &models.FeatureSummary{
		Feature:  models.Feature{ID: 10, UserID: userID, Title: title, Description: description, Status: models.FeatureStatusOpen},
		UserName: "alice",
	}, nil
}

func (f *fakeFeatures) Get(_ context.Context, featureID int64, callerID *int64) (*models.FeatureSummary, error) {
	f.gotID, f.gotCaller = featureID, callerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.FeatureSummary{Feature: models.Feature{ID: featureID}, UserVoted: callerID != nil}, nil
}

func (f *fakeFeatures) Delete(_ context.Context, userID, featureID int64) error {
	f.deleteCall++
	f.gotOwner, f.gotID = userID, featureID
	return f.err
}

type fakeLedger struct {
	voted bool
	err   error
	calls int
}

func (f *fakeLedger) Toggle(context.Context, int64, int64) (models.ToggleResult, error) {
	f.calls++
	if f.err != nil {
		return models.ToggleResult{}, f.err
	}
	f.voted = !f.voted
	return models.ToggleResult{Voted: f.voted}, nil
}

type fakeRanking struct {
	got  models.ListQuery
	list []*models.FeatureSummary
	err  error
}

func (f *fakeRanking) List(_ context.Context, q models.ListQuery) ([]*models.FeatureSummary, error) {
	f.got = q
	return f.list, f.err
}

type testDeps struct {
	users    *fakeUsers
	features *fakeFeatures
	ledger   *fakeLedger
	ranking  *fakeRanking
}

var alice = &models.User{ID: 7, UserName: "alice", Email: "alice@example.com"}

func newTestServer() (*GRPCServer, *testDeps) {
	d := &testDeps{
		users:    &fakeUsers{token: "tok", users: map[string]*models.User{"good": alice}},
		features: &fakeFeatures{},
		ledger:   &fakeLedger{},
		ranking:  &fakeRanking{},
	}
	s := NewGRPCServer("127.0.0.1:0", logging.Nop{}, d.users, d.features, d.ledger, d.ranking, time.Second)
	return s, d
}
