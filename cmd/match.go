package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/curatecli/curate/internal/llm"
	"github.com/curatecli/curate/internal/match"
	"github.com/curatecli/curate/internal/shared"
)

// Match runs the fuzzy matcher offline: suggestion lines come from a file or
// stdin instead of the model, and nothing is created or mutated.
func (r *Runner) Match(ctx context.Context, cmd *cli.Command) error {
	var raw []byte
	var err error
	if path := cmd.String("file"); path != "" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
	} else {
		raw, err = io.ReadAll(r.input)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
	}

	suggestions := llm.SplitSuggestions(string(raw))
	if len(suggestions) == 0 {
		return fmt.Errorf("%w: no suggestion lines to match", shared.ErrInvalidInput)
	}

	engine := r.newEngine(nil)
	_, catalog, err := engine.BuildCatalog(ctx, nil, cmd.String("source"), false)
	if err != nil {
		return err
	}

	threshold := r.config.Curator.MatchThreshold
	if t := cmd.Int("threshold"); t > 0 {
		threshold = t
	}

	matcher := match.NewMatcher(match.MatcherOpts{
		Index:     match.NewIndex(catalog),
		Threshold: threshold,
		Logger:    r.logger,
	})
	results, ids := matcher.Match(suggestions)

	r.writePlainHeader(fmt.Sprintf("Matched %d of %d suggestions (threshold %d)",
		len(ids), len(suggestions), threshold))
	for _, m := range results {
		switch {
		case m.Entry == nil:
			r.writePlain("x     %q (no match)\n", m.Suggestion)
		case m.Duplicate:
			r.writePlain("~ %-3d %q -> %s by %s [%s] (duplicate)\n",
				m.Score, m.Suggestion, m.Entry.Title, m.Entry.Artist, m.Entry.ID)
		default:
			r.writePlain("  %-3d %q -> %s by %s [%s]\n",
				m.Score, m.Suggestion, m.Entry.Title, m.Entry.Artist, m.Entry.ID)
		}
	}

	return nil
}
