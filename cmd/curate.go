package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/curatecli/curate/internal/models"
	"github.com/curatecli/curate/internal/shared"
	"github.com/curatecli/curate/internal/tasks"
)

// Curate runs the full curation pipeline: export the source catalog, ask the
// model for suggestions, match them back to catalog IDs, then create and fill
// the destination playlist.
func (r *Runner) Curate(ctx context.Context, cmd *cli.Command) error {
	criteria := models.Criteria{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Genres:      cmd.String("genres"),
		Artists:     cmd.String("artists"),
		Moods:       cmd.String("moods"),
		Keywords:    cmd.String("keywords"),
	}

	suggester, err := r.buildSuggester()
	if err != nil {
		return err
	}
	engine := r.newEngine(suggester)

	opts := tasks.CurateOpts{
		SourcePlaylistID: cmd.String("source"),
		Criteria:         criteria,
		FetchDetails:     cmd.Bool("details"),
		DryRun:           cmd.Bool("dry-run"),
	}
	if !opts.DryRun && !cmd.Bool("yes") {
		opts.Confirm = func(matched int) bool {
			return r.confirm(fmt.Sprintf("Create %q and add %d matched tracks?", criteria.Title, matched))
		}
	}

	r.logger.Info("starting curation",
		"source", opts.SourcePlaylistID, "title", criteria.Title, "dry_run", opts.DryRun)

	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("[%s] %s\n", update.Phase, update.Message)
		}
	}()

	result, err := engine.Curate(ctx, progress, opts)
	close(progress)
	wg.Wait()

	if err != nil {
		if errors.Is(err, shared.ErrNothingToDo) {
			return err
		}
		return fmt.Errorf("curation failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.printCurateResult(result, opts.DryRun)
	return nil
}

func (r *Runner) printCurateResult(result *tasks.CurateResult, dryRun bool) {
	r.writePlainHeader(fmt.Sprintf("Curation run %s", result.RunID))
	r.writePlain("Source:      %s (%d tracks)\n", result.SourcePlaylist.Name, result.CatalogSize)
	r.writePlain("Suggestions: %d\n", len(result.Suggestions))
	r.writePlain("Matched:     %d\n", len(result.MatchedIDs))

	for _, m := range result.Matches {
		switch {
		case m.Entry == nil:
			r.writePlain("  x     %q (no match)\n", m.Suggestion)
		case m.Duplicate:
			r.writePlain("  ~ %-3d %q -> %s by %s (duplicate)\n",
				m.Score, m.Suggestion, m.Entry.Title, m.Entry.Artist)
		default:
			r.writePlain("    %-3d %q -> %s by %s\n",
				m.Score, m.Suggestion, m.Entry.Title, m.Entry.Artist)
		}
	}

	switch {
	case dryRun:
		r.writePlain("\nDry run: no playlist was created.\n")
	case result.Aborted:
		r.writePlain("\nAborted: no playlist was created.\n")
	default:
		r.writePlain("\nPlaylist:    %s\n", result.PlaylistURL)
		r.writePlain("Confirmed:   %d of %d attempted\n",
			len(result.Report.Confirmed), result.Report.Attempted)
		if len(result.Report.Unconfirmed) > 0 {
			r.writePlain("Unconfirmed: %v\n", result.Report.Unconfirmed)
		}
	}
}
