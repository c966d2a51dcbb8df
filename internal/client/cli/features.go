package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/client/services"
)

const defaultListLimit = 20

func parseID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <id>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid feature id %q", args[0])
	}
	return id, nil
}

// parseListArgs reads [votes|recency] [skip] [limit].
func parseListArgs(args []string) (sortBy string, skip, limit int, err error) {
	sortBy, limit = services.SortVotes, defaultListLimit
	if len(args) > 3 {
		return "", 0, 0, fmt.Errorf("usage: list [votes|recency] [skip] [limit]")
	}
	if len(args) > 0 {
		sortBy = args[0]
	}
	if len(args) > 1 {
		if skip, err = strconv.Atoi(args[1]); err != nil || skip < 0 {
			return "", 0, 0, fmt.Errorf("invalid skip %q", args[1])
		}
	}
	if len(args) > 2 {
		if limit, err = strconv.Atoi(args[2]); err != nil || limit <= 0 {
			return "", 0, 0, fmt.Errorf("invalid limit %q", args[2])
		}
	}
	return sortBy, skip, limit, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	sortBy, skip, limit, err := parseListArgs(args)
	if err != nil {
		return err
	}

	features, err := a.featureService.List(ctx, sortBy, skip, limit)
	if err != nil {
		return err
	}

	if len(features) == 0 {
		fmt.Fprintln(a.out, "No features yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVOTES\t\tTITLE\tAUTHOR")
	for _, f := range features {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", f.ID, f.VoteCount, votedMark(f), f.Title, f.Username)
	}
	return tw.Flush()
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID("show", args)
	if err != nil {
		return err
	}

	f, err := a.featureService.Get(ctx, id)
	if err != nil {
		return err
	}

	printFeature(a, f)
	return nil
}

// Add prompts for a title and a multi-line description.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	description, err := getMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	f, err := a.featureService.Create(ctx, title, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created feature #%d\n", f.ID)
	return nil
}

func (a *App) Vote(ctx context.Context, args []string) error {
	id, err := parseID("vote", args)
	if err != nil {
		return err
	}

	resp, err := a.featureService.ToggleVote(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}

	msg, err := a.featureService.Delete(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func votedMark(f api.Feature) string {
	if f.UserVoted {
		return "*"
	}
	return ""
}

func printFeature(a *App, f *api.Feature) {
	fmt.Fprintf(a.out, "#%d %s\n", f.ID, f.Title)
	fmt.Fprintf(a.out, "by %s on %s, status %s\n", f.Username, f.CreatedAt.Format("2006-01-02 15:04"), f.Status)
	fmt.Fprintf(a.out, "votes: %d", f.VoteCount)
	if f.UserVoted {
		fmt.Fprint(a.out, " (you voted)")
	}
	fmt.Fprintln(a.out)
	if f.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", f.Description)
	}
}
