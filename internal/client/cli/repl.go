package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
// The real App satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Vote(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: register, login, (l)ist [votes|recency] [skip] [limit], show <id>, exit"
	helpMember = "Available commands: (l)ist [votes|recency] [skip] [limit], show <id>, add, vote <id>, delete <id>, me, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or on "exit"/"quit". Handler errors are printed and the
// loop carries on.
//
//	Anyone:
//	  - help, register, login, list, show, exit | quit
//
//	Logged in:
//	  - add, vote, delete, me, logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fv %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "add", "vote", "delete", "me", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				break
			}
			switch cmd {
			case "add":
				cmdErr = a.Add(ctx)
			case "vote":
				cmdErr = a.Vote(ctx, args)
			case "delete":
				cmdErr = a.Delete(ctx, args)
			case "me":
				cmdErr = a.Me(ctx)
			case "logout":
				cmdErr = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
	}
}
