package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/client/client"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restoreSession picks up a session cached by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	name, err := a.authService.Restore(ctx)
	switch {
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		if name != "" {
			fmt.Fprintf(a.out, "Server unavailable, keeping cached session for %s\n", name)
		}
	case err != nil:
		log.Printf("session restore failed: %s", err.Error())
		return
	default:
		a.setMode(ModeOnline)
		if name != "" {
			fmt.Fprintf(a.out, "Welcome back, %s\n", name)
		}
	}
	a.userName = name
}

// Root runs the REPL until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to featurevote CLI (type 'help' for commands)")

	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
