package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	featuresrepo "github.com/dmitrijs2005/featurevote/internal/server/repositories/features"
	usersrepo "github.com/dmitrijs2005/featurevote/internal/server/repositories/users"
	votesrepo "github.com/dmitrijs2005/featurevote/internal/server/repositories/votes"
)

var errFakeDB = errors.New("fake store has no SQL")

// fakeStore runs transactions concurrently. Only fakeVotes.LockPair
// serializes them, per (user, feature) pair, until the transaction ends.
type fakeStore struct {
	mu      sync.Mutex
	txCalls int
}

func (s *fakeStore) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errFakeDB
}
func (s *fakeStore) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errFakeDB
}
func (s *fakeStore) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }

func (s *fakeStore) WithTx(ctx context.Context, _ *sql.TxOptions, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	s.mu.Lock()
	s.txCalls++
	s.mu.Unlock()

	tx := &fakeTx{fakeStore: s}
	defer tx.release()
	return fn(ctx, tx)
}

// fakeTx collects the pair locks taken inside one transaction.
type fakeTx struct {
	*fakeStore
	held []*sync.Mutex
}

func (t *fakeTx) release() {
	for _, l := range t.held {
		l.Unlock()
	}
	t.held = nil
}

type pair struct{ user, feature int64 }

// memState is the shared in-memory database behind the fake repositories.
type memState struct {
	mu sync.Mutex

	users      map[string]*models.User
	nextUserID int64

	features      map[int64]*models.Feature
	nextFeatureID int64
	clock         time.Time

	votes     map[pair]bool
	pairLocks map[pair]*sync.Mutex

	usersErr     error
	lockShareErr error
	// absorb makes Delete report nothing removed and Insert report a
	// conflict, as when a concurrent toggle of the same pair already
	// inserted the row.
	absorb bool
}

func newMemState() *memState {
	return &memState{
		users:     map[string]*models.User{},
		features:  map[int64]*models.Feature{},
		votes:     map[pair]bool{},
		pairLocks: map[pair]*sync.Mutex{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memState) addUser(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	m.users[name] = &models.User{ID: m.nextUserID, UserName: name, Email: name + "@example.com"}
	return m.nextUserID
}

func (m *memState) addFeature(owner int64, title string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertFeatureLocked(&models.Feature{UserID: owner, Title: title}).ID
}

func (m *memState) insertFeatureLocked(f *models.Feature) *models.Feature {
	m.nextFeatureID++
	m.clock = m.clock.Add(time.Minute)
	f.ID = m.nextFeatureID
	f.Status = models.FeatureStatusOpen
	f.CreatedAt = m.clock
	f.UpdatedAt = m.clock
	m.features[f.ID] = f
	return f
}

func (m *memState) voteCount(featureID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countLocked(featureID)
}

func (m *memState) countLocked(featureID int64) int64 {
	var n int64
	for p := range m.votes {
		if p.feature == featureID {
			n++
		}
	}
	return n
}

func (m *memState) userNameLocked(id int64) string {
	for _, u := range m.users {
		if u.ID == id {
			return u.UserName
		}
	}
	return ""
}

func (m *memState) summaryLocked(f *models.Feature, callerID *int64) *models.FeatureSummary {
	s := &models.FeatureSummary{
		Feature:   *f,
		UserName:  m.userNameLocked(f.UserID),
		VoteCount: m.countLocked(f.ID),
	}
	if callerID != nil {
		s.UserVoted = m.votes[pair{*callerID, f.ID}]
	}
	return s
}

type fakeRepoManager struct{ state *memState }

func (r *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (r *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return &fakeUsers{r.state} }

func (r *fakeRepoManager) Features(dbx.DBTX) featuresrepo.Repository {
	return &fakeFeatures{r.state}
}

func (r *fakeRepoManager) Votes(db dbx.DBTX) votesrepo.Repository {
	tx, _ := db.(*fakeTx)
	return &fakeVotes{m: r.state, tx: tx}
}

type fakeUsers struct{ m *memState }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.usersErr != nil {
		return nil, f.m.usersErr
	}
	for _, existing := range f.m.users {
		if existing.UserName == u.UserName || existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.m.nextUserID++
	u.ID = f.m.nextUserID
	f.m.users[u.UserName] = u
	return u, nil
}

func (f *fakeUsers) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.usersErr != nil {
		return nil, f.m.usersErr
	}
	u, ok := f.m.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeFeatures struct{ m *memState }

func (f *fakeFeatures) Create(_ context.Context, feat *models.Feature) (*models.Feature, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.m.insertFeatureLocked(feat), nil
}

func (f *fakeFeatures) GetSummary(_ context.Context, id int64, callerID *int64) (*models.FeatureSummary, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	feat, ok := f.m.features[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.m.summaryLocked(feat, callerID), nil
}

func (f *fakeFeatures) List(_ context.Context, q models.ListQuery) ([]*models.FeatureSummary, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	all := make([]*models.FeatureSummary, 0, len(f.m.features))
	for _, feat := range f.m.features {
		all = append(all, f.m.summaryLocked(feat, q.CallerID))
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if q.Sort == models.SortByVotes {
			if a.VoteCount != b.VoteCount {
				return a.VoteCount > b.VoteCount
			}
			return a.ID < b.ID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	if q.Offset >= len(all) {
		return []*models.FeatureSummary{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[q.Offset:end], nil
}

func (f *fakeFeatures) LockForShare(_ context.Context, id int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.lockShareErr != nil {
		return f.m.lockShareErr
	}
	if _, ok := f.m.features[id]; !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeFeatures) OwnerForUpdate(_ context.Context, id int64) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	feat, ok := f.m.features[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return feat.UserID, nil
}

func (f *fakeFeatures) Delete(_ context.Context, id int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.features[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.m.features, id)
	return nil
}

type fakeVotes struct {
	m  *memState
	tx *fakeTx
}

// LockPair blocks while another transaction holds the same pair.
func (f *fakeVotes) LockPair(_ context.Context, userID, featureID int64) error {
	if f.tx == nil {
		return errors.New("LockPair outside a transaction")
	}
	p := pair{userID, featureID}
	f.m.mu.Lock()
	l, ok := f.m.pairLocks[p]
	if !ok {
		l = &sync.Mutex{}
		f.m.pairLocks[p] = l
	}
	f.m.mu.Unlock()

	l.Lock()
	f.tx.held = append(f.tx.held, l)
	return nil
}

func (f *fakeVotes) Delete(_ context.Context, userID, featureID int64) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.absorb {
		return false, nil
	}
	p := pair{userID, featureID}
	if !f.m.votes[p] {
		return false, nil
	}
	delete(f.m.votes, p)
	return true, nil
}

func (f *fakeVotes) Insert(_ context.Context, userID, featureID int64) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	p := pair{userID, featureID}
	if f.m.absorb || f.m.votes[p] {
		f.m.votes[p] = true
		return false, nil
	}
	f.m.votes[p] = true
	return true, nil
}

func (f *fakeVotes) Exists(_ context.Context, userID, featureID int64) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.m.votes[pair{userID, featureID}], nil
}

func (f *fakeVotes) CountFor(_ context.Context, featureID int64) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.features[featureID]; !ok {
		return 0, common.ErrorNotFound
	}
	return f.m.countLocked(featureID), nil
}

func (f *fakeVotes) DeleteByFeature(_ context.Context, featureID int64) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var n int64
	for p := range f.m.votes {
		if p.feature == featureID {
			delete(f.m.votes, p)
			n++
		}
	}
	return n, nil
}
