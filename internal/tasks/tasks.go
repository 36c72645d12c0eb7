// package tasks implements the curation pipeline over a remote music service.
//
// The core abstraction is CuratorEngine, which orchestrates catalog fetch,
// model suggestion, fuzzy matching, and the batched playlist mutation.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/curatecli/curate/internal/batch"
	"github.com/curatecli/curate/internal/match"
	"github.com/curatecli/curate/internal/models"
	"github.com/curatecli/curate/internal/services"
	"github.com/curatecli/curate/internal/shared"
)

// Remote playlist descriptions are capped server-side.
const playlistDescriptionLimit = 5000

// Suggester selects tracks matching the criteria: catalog in,
// newline-split "Title by Artist" suggestion strings out.
type Suggester interface {
	Suggest(ctx context.Context, criteria models.Criteria, entries []models.CatalogEntry) ([]string, error)
}

// CuratorEngine orchestrates a full curation run.
type CuratorEngine struct {
	music     services.Service
	suggester Suggester
	cfg       shared.CuratorConfig
	pacing    shared.PacingConfig
	pacer     *shared.Pacer
	sleep     func(time.Duration)
	logger    *log.Logger
}

// EngineOpts configures a CuratorEngine. Sleep defaults to [time.Sleep] and
// is injectable so tests run without real waits; Pacer is derived from the
// pacing config when not provided.
type EngineOpts struct {
	Music     services.Service
	Suggester Suggester
	Curator   shared.CuratorConfig
	Pacing    shared.PacingConfig
	Pacer     *shared.Pacer
	Sleep     func(time.Duration)
	Logger    *log.Logger
}

// NewCuratorEngine creates a CuratorEngine with the provided dependencies.
func NewCuratorEngine(opts EngineOpts) *CuratorEngine {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Pacer == nil {
		opts.Pacer = shared.NewTestPacer(opts.Pacing, opts.Sleep)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &CuratorEngine{
		music:     opts.Music,
		suggester: opts.Suggester,
		cfg:       opts.Curator,
		pacing:    opts.Pacing,
		pacer:     opts.Pacer,
		sleep:     opts.Sleep,
		logger:    opts.Logger,
	}
}

// CurateOpts describes one curation run.
type CurateOpts struct {
	SourcePlaylistID string
	Criteria         models.Criteria
	FetchDetails     bool // fetch per-track descriptions for the model
	DryRun           bool // stop after matching, mutate nothing

	// Confirm, when set, is consulted after matching and before any remote
	// mutation. Returning false aborts the run cleanly.
	Confirm func(matched int) bool
}

// CurateResult contains all data from a curation run.
type CurateResult struct {
	RunID          string
	SourcePlaylist models.Playlist
	CatalogSize    int
	Suggestions    []string
	Matches        []match.Result
	MatchedIDs     []string
	Aborted        bool // user declined at the confirm step
	PlaylistID     string
	PlaylistURL    string
	Report         *batch.Report
}

// sendProgress sends a progress update through the channel without blocking.
func (e *CuratorEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full or closed, skip this update
	}
}

// BuildCatalog fetches the source playlist and converts its tracks to
// catalog entries. Stubs without an ID were already dropped by the service
// layer. When fetchDetails is set, each track's description is fetched at a
// paced rate; an individual fetch failure is logged and the track keeps an
// empty description.
func (e *CuratorEngine) BuildCatalog(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, fetchDetails bool) (*models.Playlist, []models.CatalogEntry, error) {
	if e.music == nil {
		return nil, nil, fmt.Errorf("%w: music service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchCatalogUpdate(playlistID))

	export, err := e.music.ExportPlaylist(ctx, playlistID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to export playlist: %v", shared.ErrAPIRequest, err)
	}
	if len(export.Tracks) == 0 {
		return nil, nil, shared.ErrEmptyPlaylist
	}

	entries := make([]models.CatalogEntry, 0, len(export.Tracks))
	var limiter *rate.Limiter
	if fetchDetails {
		perSecond := e.pacing.DetailFetchPerSecond
		if perSecond <= 0 {
			perSecond = 0.5
		}
		limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}

	for i, track := range export.Tracks {
		entry := models.CatalogEntry{
			ID:     track.ID,
			Title:  track.Title,
			Artist: track.Artist,
			Album:  track.Album,
		}

		if fetchDetails {
			e.sendProgress(progress, fetchDetailsUpdate(i+1, len(export.Tracks), &export.Tracks[i]))
			if err := limiter.Wait(ctx); err != nil {
				return nil, nil, fmt.Errorf("detail fetch interrupted: %w", err)
			}

			description, err := e.music.GetTrackDescription(ctx, track.ID)
			if err != nil {
				// One failed detail fetch must not abort the run.
				e.logger.Warn("could not fetch track details",
					"id", track.ID, "title", track.Title, "err", err)
			} else {
				entry.Description = e.trimDescription(description)
			}
		}

		entries = append(entries, entry)
	}

	e.logger.Info("catalog built", "playlist", export.Playlist.Name, "tracks", len(entries))
	return &export.Playlist, entries, nil
}

// trimDescription keeps the first line of a remote description, normalized
// and capped at the configured length.
func (e *CuratorEngine) trimDescription(description string) string {
	firstLine, _, _ := strings.Cut(description, "\n")
	normalized := match.Normalize(strings.TrimSpace(firstLine))

	maxLen := e.cfg.DescriptionMaxLength
	if maxLen <= 0 {
		maxLen = 250
	}
	if runes := []rune(normalized); len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return normalized
}

// Curate runs the full pipeline: catalog, suggestions, matching, playlist
// creation, and the batched add. Empty catalogs, empty suggestion lists, and
// zero matches abort before any mutation with an error in the
// [shared.ErrNothingToDo] class.
func (e *CuratorEngine) Curate(ctx context.Context, progress chan<- ProgressUpdate, opts CurateOpts) (*CurateResult, error) {
	if e.suggester == nil {
		return nil, fmt.Errorf("%w: suggester not initialized", shared.ErrServiceUnavailable)
	}

	runID := shared.GenerateRunID()
	logger := e.logger.With("run_id", runID)
	result := &CurateResult{RunID: runID}

	playlist, catalog, err := e.BuildCatalog(ctx, progress, opts.SourcePlaylistID, opts.FetchDetails)
	if err != nil {
		return nil, err
	}
	result.SourcePlaylist = *playlist
	result.CatalogSize = len(catalog)

	e.pacer.General()
	e.sendProgress(progress, suggestUpdate(len(catalog)))

	suggestions, err := e.suggester.Suggest(ctx, opts.Criteria, catalog)
	if err != nil {
		return nil, fmt.Errorf("%w: suggestion request failed: %v", shared.ErrAPIRequest, err)
	}
	if len(suggestions) == 0 {
		return nil, shared.ErrNoSuggestions
	}
	result.Suggestions = suggestions

	e.sendProgress(progress, matchUpdate(len(suggestions)))

	matcher := match.NewMatcher(match.MatcherOpts{
		Index:     match.NewIndex(catalog),
		Threshold: e.cfg.MatchThreshold,
		Logger:    logger,
	})
	result.Matches, result.MatchedIDs = matcher.Match(suggestions)
	if len(result.MatchedIDs) == 0 {
		return nil, shared.ErrNoMatches
	}
	logger.Info("matched suggestions to catalog",
		"suggestions", len(suggestions), "matched", len(result.MatchedIDs))

	if opts.DryRun {
		return result, nil
	}

	if opts.Confirm != nil && !opts.Confirm(len(result.MatchedIDs)) {
		result.Aborted = true
		return result, nil
	}

	e.sendProgress(progress, createPlaylistUpdate(opts.Criteria.Title))
	e.pacer.General()

	playlistID, err := e.music.CreatePlaylist(ctx, opts.Criteria.Title, e.playlistDescription(opts.Criteria, playlist.Name))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create playlist: %v", shared.ErrAPIRequest, err)
	}
	result.PlaylistID = playlistID
	result.PlaylistURL = fmt.Sprintf("https://music.youtube.com/playlist?list=%s", playlistID)
	logger.Info("playlist created", "id", playlistID, "title", opts.Criteria.Title)

	// Give the remote side a moment to sync the new playlist before adds.
	e.pacer.PostCreate()

	e.sendProgress(progress, addTracksUpdate(len(result.MatchedIDs)))

	mutator := batch.NewMutator(batch.MutatorOpts{
		Add: e.music.AddPlaylistItems,
		Config: batch.Config{
			BatchSize:            e.cfg.BatchSize,
			MaxRetries:           e.cfg.MaxRetries,
			InitialRetryDelay:    e.cfg.InitialRetryDelay(),
			RetryDelayMultiplier: e.cfg.RetryDelayMultiplier,
		},
		Sleep:          e.sleep,
		BetweenBatches: e.pacer.BetweenBatches,
		Logger:         logger,
	})

	result.Report = mutator.AddAll(ctx, playlistID, result.MatchedIDs)
	e.sendProgress(progress, reportUpdate(len(result.Report.Confirmed), len(result.Report.Unconfirmed)))
	logger.Info("curation finished",
		"attempted", result.Report.Attempted,
		"confirmed", len(result.Report.Confirmed),
		"unconfirmed", len(result.Report.Unconfirmed))

	return result, nil
}

// playlistDescription assembles the destination playlist's description from
// the criteria, capped at the remote limit.
func (e *CuratorEngine) playlistDescription(criteria models.Criteria, sourceName string) string {
	parts := []string{fmt.Sprintf("AI-curated: %q from %q.", criteria.Title, sourceName)}
	if desc := criteria.Description; desc != "" {
		if runes := []rune(desc); len(runes) > 200 {
			desc = string(runes[:200]) + "..."
		}
		parts = append(parts, fmt.Sprintf("User defined as: %q", desc))
	}
	if criteria.Genres != "" {
		parts = append(parts, fmt.Sprintf("Genres: %s.", criteria.Genres))
	}
	if criteria.Moods != "" {
		parts = append(parts, fmt.Sprintf("Moods: %s.", criteria.Moods))
	}

	full := strings.Join(parts, " ")
	if runes := []rune(full); len(runes) > playlistDescriptionLimit {
		return string(runes[:playlistDescriptionLimit])
	}
	return full
}
