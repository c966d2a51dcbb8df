package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/featurevote/internal/api"
)

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func stubInputs(t *testing.T, texts []string, password string, multiline string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return multiline, nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}

type fakeAuth struct {
	mu sync.Mutex

	regArgs   []string
	regErr    error
	loginArgs []string
	loginErr  error
	restore   string
	restErr   error
	me        *api.User
	meErr     error
	logoutErr error
	loggedOut bool
	pingErr   error
	pings     int
	closed    bool
}

func (f *fakeAuth) Register(_ context.Context, username, email, password string) (*api.User, error) {
	f.regArgs = []string{username, email, password}
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &api.User{ID: 9, Username: username, Email: email}, nil
}

func (f *fakeAuth) Login(_ context.Context, username, password string) error {
	f.loginArgs = []string{username, password}
	return f.loginErr
}

func (f *fakeAuth) Restore(context.Context) (string, error) { return f.restore, f.restErr }
func (f *fakeAuth) Me(context.Context) (*api.User, error)   { return f.me, f.meErr }
func (f *fakeAuth) Logout(context.Context) error            { f.loggedOut = true; return f.logoutErr }
func (f *fakeAuth) Close(context.Context) error             { f.closed = true; return nil }

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

type fakeFeatures struct {
	list      []api.Feature
	listArgs  []any
	feature   *api.Feature
	toggle    *api.ToggleVoteResponse
	deleteMsg string
	err       error
	lastID    int64
	created   []string
}

func (f *fakeFeatures) Create(_ context.Context, title, description string) (*api.Feature, error) {
	f.created = []string{title, description}
	if f.err != nil {
		return nil, f.err
	}
	return &api.Feature{ID: 42, Title: title}, nil
}

func (f *fakeFeatures) List(_ context.Context, sortBy string, skip, limit int) ([]api.Feature, error) {
	f.listArgs = []any{sortBy, skip, limit}
	return f.list, f.err
}

func (f *fakeFeatures) Get(_ context.Context, id int64) (*api.Feature, error) {
	f.lastID = id
	return f.feature, f.err
}

func (f *fakeFeatures) ToggleVote(_ context.Context, id int64) (*api.ToggleVoteResponse, error) {
	f.lastID = id
	return f.toggle, f.err
}

func (f *fakeFeatures) Delete(_ context.Context, id int64) (string, error) {
	f.lastID = id
	return f.deleteMsg, f.err
}

func newTestApp(auth *fakeAuth, features *fakeFeatures) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		authService:    auth,
		featureService: features,
		reader:         bufio.NewReader(strings.NewReader("")),
		out:            out,
	}, out
}
