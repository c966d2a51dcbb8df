package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/logging"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
)

var (
	alice   = &models.User{ID: 7, UserName: "alice", Email: "alice@example.com", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	bobUser = &models.User{ID: 8, UserName: "bob", Email: "bob@example.com"}
)

type fakeUsers struct {
	regErr   error
	loginErr error
	currErr  error
	tokens   map[string]*models.User

	gotLogin []string
}

func (f *fakeUsers) Register(_ context.Context, username, email, _ string) (*models.User, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: 1, UserName: username, Email: email}, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (string, error) {
	f.gotLogin = []string{username, password}
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "tok-" + username, nil
}

func (f *fakeUsers) CurrentUser(_ context.Context, token string) (*models.User, error) {
	if f.currErr != nil {
		return nil, f.currErr
	}
	if u, ok := f.tokens[token]; ok {
		return u, nil
	}
	return nil, common.ErrorUnauthorized
}

// fakeFeatures keeps features in a map keyed by id; votes live in the ledger.
type fakeFeatures struct {
	items     map[int64]*models.Feature
	ledger    *fakeLedger
	err       error
	gotCaller *int64
}

func (f *fakeFeatures) summary(feat *models.Feature, caller *int64) *models.FeatureSummary {
	s := &models.FeatureSummary{Feature: *feat, UserName: "alice", VoteCount: f.ledger.count(feat.ID)}
	if caller != nil {
		s.UserVoted = f.ledger.votes[[2]int64{*caller, feat.ID}]
	}
	return s
}

func (f *fakeFeatures) Create(_ context.Context, userID int64, title, description string) (*models.FeatureSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := int64(len(f.items) + 1)
	f.items[id] = &models.Feature{ID: id, UserID: userID, Title: title, Description: description, Status: models.FeatureStatusOpen}
	return f.summary(f.items[id], &userID), nil
}

func (f *fakeFeatures) Get(_ context.Context, featureID int64, callerID *int64) (*models.FeatureSummary, error) {
	f.gotCaller = callerID
	if f.err != nil {
		return nil, f.err
	}
	feat, ok := f.items[featureID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.summary(feat, callerID), nil
}

func (f *fakeFeatures) Delete(_ context.Context, userID, featureID int64) error {
	feat, ok := f.items[featureID]
	if !ok {
		return common.ErrorNotFound
	}
	if feat.UserID != userID {
		return common.ErrorForbidden
	}
	delete(f.items, featureID)
	for k := range f.ledger.votes {
		if k[1] == featureID {
			delete(f.ledger.votes, k)
		}
	}
	return nil
}

type fakeLedger struct {
	features *fakeFeatures
	votes    map[[2]int64]bool
	err      error
}

func (l *fakeLedger) count(featureID int64) int64 {
	var n int64
	for k := range l.votes {
		if k[1] == featureID {
			n++
		}
	}
	return n
}

func (l *fakeLedger) Toggle(_ context.Context, userID, featureID int64) (models.ToggleResult, error) {
	if l.err != nil {
		return models.ToggleResult{}, l.err
	}
	if _, ok := l.features.items[featureID]; !ok {
		return models.ToggleResult{}, common.ErrorNotFound
	}
	k := [2]int64{userID, featureID}
	if l.votes[k] {
		delete(l.votes, k)
		return models.ToggleResult{Voted: false}, nil
	}
	l.votes[k] = true
	return models.ToggleResult{Voted: true}, nil
}

type fakeRanking struct {
	features *fakeFeatures
	got      models.ListQuery
	err      error
}

func (r *fakeRanking) List(_ context.Context, q models.ListQuery) ([]*models.FeatureSummary, error) {
	r.got = q
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.FeatureSummary
	for id := int64(1); id <= int64(len(r.features.items))+1; id++ {
		if feat, ok := r.features.items[id]; ok {
			out = append(out, r.features.summary(feat, q.CallerID))
		}
	}
	return out, nil
}

type testDeps struct {
	users    *fakeUsers
	features *fakeFeatures
	ledger   *fakeLedger
	ranking  *fakeRanking
}

func newTestServer() (*HTTPServer, *testDeps) {
	users := &fakeUsers{tokens: map[string]*models.User{"alice-token": alice, "bob-token": bobUser}}
	features := &fakeFeatures{items: map[int64]*models.Feature{}}
	ledger := &fakeLedger{features: features, votes: map[[2]int64]bool{}}
	features.ledger = ledger
	ranking := &fakeRanking{features: features}

	s := NewHTTPServer("127.0.0.1:0", logging.Nop{}, users, features, ledger, ranking, time.Second)
	return s, &testDeps{users: users, features: features, ledger: ledger, ranking: ranking}
}
