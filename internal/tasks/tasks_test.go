package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/curatecli/curate/internal/models"
	"github.com/curatecli/curate/internal/shared"
	mocks "github.com/curatecli/curate/internal/testing"
)

func testExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{ID: "PL_src", Name: "Source Mix", TrackCount: 3},
		Tracks: []models.Track{
			{ID: "vid1", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera"},
			{ID: "vid2", Title: "Starman", Artist: "David Bowie"},
			{ID: "vid3", Title: "Take On Me", Artist: "a-ha"},
		},
	}
}

func newTestEngine(music *mocks.MockService, suggester *mocks.MockSuggester) *CuratorEngine {
	return NewCuratorEngine(EngineOpts{
		Music:     music,
		Suggester: suggester,
		Curator: shared.CuratorConfig{
			BatchSize:                25,
			MaxRetries:               3,
			InitialRetryDelaySeconds: 10,
			RetryDelayMultiplier:     2,
			MatchThreshold:           65,
			DescriptionMaxLength:     250,
		},
		// High detail-fetch rate so tests never wait on the limiter.
		Pacing: shared.PacingConfig{DetailFetchPerSecond: 1000},
		Sleep:  func(time.Duration) {},
		Logger: log.New(io.Discard),
	})
}

func TestBuildCatalog(t *testing.T) {
	t.Run("without details", func(t *testing.T) {
		music := &mocks.MockService{Exports: map[string]*models.PlaylistExport{"PL_src": testExport()}}
		engine := newTestEngine(music, nil)

		playlist, entries, err := engine.BuildCatalog(context.Background(), nil, "PL_src", false)
		if err != nil {
			t.Fatalf("BuildCatalog() error = %v", err)
		}
		if playlist.Name != "Source Mix" {
			t.Errorf("playlist.Name = %q", playlist.Name)
		}
		if len(entries) != 3 {
			t.Fatalf("got %d entries, want 3", len(entries))
		}
		if entries[0].Album != "A Night at the Opera" {
			t.Errorf("entries[0].Album = %q", entries[0].Album)
		}
		if entries[0].Description != "" {
			t.Errorf("entries[0].Description = %q, want empty without detail fetch", entries[0].Description)
		}
	})

	t.Run("with details", func(t *testing.T) {
		music := &mocks.MockService{
			Exports: map[string]*models.PlaylistExport{"PL_src": testExport()},
			Descriptions: map[string]string{
				"vid1": "Operatic Rock Classic!\nSecond line is dropped.",
				"vid2": strings.Repeat("x", 300),
			},
		}
		engine := newTestEngine(music, nil)

		_, entries, err := engine.BuildCatalog(context.Background(), nil, "PL_src", true)
		if err != nil {
			t.Fatalf("BuildCatalog() error = %v", err)
		}
		if entries[0].Description != "operatic rock classic" {
			t.Errorf("Description = %q, want the normalized first line", entries[0].Description)
		}
		if got := len([]rune(entries[1].Description)); got != 250 {
			t.Errorf("Description length = %d, want capped at 250", got)
		}
	})

	t.Run("detail failure keeps the track", func(t *testing.T) {
		music := &mocks.MockService{
			Exports:        map[string]*models.PlaylistExport{"PL_src": testExport()},
			DescriptionErr: errors.New("rate limited"),
		}
		engine := newTestEngine(music, nil)

		_, entries, err := engine.BuildCatalog(context.Background(), nil, "PL_src", true)
		if err != nil {
			t.Fatalf("BuildCatalog() error = %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("got %d entries, want all 3 despite failed detail fetches", len(entries))
		}
	})

	t.Run("empty playlist", func(t *testing.T) {
		music := &mocks.MockService{Exports: map[string]*models.PlaylistExport{
			"PL_empty": {Playlist: models.Playlist{ID: "PL_empty"}},
		}}
		engine := newTestEngine(music, nil)

		_, _, err := engine.BuildCatalog(context.Background(), nil, "PL_empty", false)
		if !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("error = %v, want ErrEmptyPlaylist", err)
		}
	})
}

func TestCurate(t *testing.T) {
	suggestions := []string{
		"Starman by David Bowie",
		"Take On Me by a-ha",
	}

	t.Run("happy path", func(t *testing.T) {
		music := &mocks.MockService{
			Exports:      map[string]*models.PlaylistExport{"PL_src": testExport()},
			CreatedID:    "PL_new",
			AddResponses: []json.RawMessage{json.RawMessage(`{"status": "SUCCEEDED"}`)},
		}
		suggester := &mocks.MockSuggester{Suggestions: suggestions}
		engine := newTestEngine(music, suggester)

		result, err := engine.Curate(context.Background(), nil, CurateOpts{
			SourcePlaylistID: "PL_src",
			Criteria:         models.Criteria{Title: "Space Pop"},
		})
		if err != nil {
			t.Fatalf("Curate() error = %v", err)
		}

		if result.RunID == "" {
			t.Error("missing run id")
		}
		if !reflect.DeepEqual(result.MatchedIDs, []string{"vid2", "vid3"}) {
			t.Errorf("MatchedIDs = %v", result.MatchedIDs)
		}
		if result.PlaylistID != "PL_new" {
			t.Errorf("PlaylistID = %q", result.PlaylistID)
		}
		if !strings.Contains(result.PlaylistURL, "PL_new") {
			t.Errorf("PlaylistURL = %q", result.PlaylistURL)
		}
		if len(music.AddCalls) != 1 || !reflect.DeepEqual(music.AddCalls[0], []string{"vid2", "vid3"}) {
			t.Errorf("AddCalls = %v", music.AddCalls)
		}
		if result.Report == nil || len(result.Report.Confirmed) != 2 || len(result.Report.Unconfirmed) != 0 {
			t.Errorf("Report = %+v", result.Report)
		}
		if suggester.LastPrompt.Title != "Space Pop" {
			t.Errorf("suggester saw criteria %+v", suggester.LastPrompt)
		}
	})

	t.Run("suggester failure", func(t *testing.T) {
		music := &mocks.MockService{Exports: map[string]*models.PlaylistExport{"PL_src": testExport()}}
		engine := newTestEngine(music, &mocks.MockSuggester{Err: errors.New("quota exceeded")})

		_, err := engine.Curate(context.Background(), nil, CurateOpts{
			SourcePlaylistID: "PL_src",
			Criteria:         models.Criteria{Title: "Space Pop"},
		})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("error = %v, want ErrAPIRequest", err)
		}
	})

	t.Run("no suggestions", func(t *testing.T) {
		music := &mocks.MockService{Exports: map[string]*models.PlaylistExport{"PL_src": testExport()}}
		engine := newTestEngine(music, &mocks.MockSuggester{})

		_, err := engine.Curate(context.Background(), nil, CurateOpts{
			SourcePlaylistID: "PL_src",
			Criteria:         models.Criteria{Title: "Space Pop"},
		})
		if !errors.Is(err, shared.ErrNoSuggestions) {
			t.Errorf("error = %v, want ErrNoSuggestions", err)
		}
		if len(music.AddCalls) != 0 {
			t.Error("nothing may be mutated when there are no suggestions")
		}
	})

	t.Run("no matches", func(t *testing.T) {
		music := &mocks.MockService{Exports: map[string]*models.PlaylistExport{"PL_src": testExport()}}
		suggester := &mocks.MockSuggester{Suggestions: []string{"Completely Unrelated Thing by Nobody At All"}}
		engine := newTestEngine(music, suggester)

		_, err := engine.Curate(context.Background(), nil, CurateOpts{
			SourcePlaylistID: "PL_src",
			Criteria:         models.Criteria{Title: "Space Pop"},
		})
		if !errors.Is(err, shared.ErrNoMatches) {
			t.Errorf("error = %v, want ErrNoMatches", err)
		}
	})

	t.Run("dry run stops before mutation", func(t *testing.T) {
		music := &mocks.MockService{Exports: map[string]*models.PlaylistExport{"PL_src": testExport()}}
		engine := newTestEngine(music, &mocks.MockSuggester{Suggestions: suggestions})

		result, err := engine.Curate(context.Background(), nil, CurateOpts{
			SourcePlaylistID: "PL_src",
			Criteria:         models.Criteria{Title: "Space Pop"},
			DryRun:           true,
		})
		if err != nil {
			t.Fatalf("Curate() error = %v", err)
		}
		if result.PlaylistID != "" || result.Report != nil {
			t.Errorf("dry run produced mutation artifacts: %+v", result)
		}
		if len(result.MatchedIDs) != 2 {
			t.Errorf("MatchedIDs = %v, want matching to still run", result.MatchedIDs)
		}
		if len(music.AddCalls) != 0 {
			t.Error("dry run must not call the add endpoint")
		}
	})

	t.Run("declined confirmation aborts", func(t *testing.T) {
		music := &mocks.MockService{Exports: map[string]*models.PlaylistExport{"PL_src": testExport()}}
		engine := newTestEngine(music, &mocks.MockSuggester{Suggestions: suggestions})

		result, err := engine.Curate(context.Background(), nil, CurateOpts{
			SourcePlaylistID: "PL_src",
			Criteria:         models.Criteria{Title: "Space Pop"},
			Confirm:          func(int) bool { return false },
		})
		if err != nil {
			t.Fatalf("Curate() error = %v", err)
		}
		if !result.Aborted {
			t.Error("expected the result to be marked aborted")
		}
		if len(music.AddCalls) != 0 {
			t.Error("declined confirmation must not mutate anything")
		}
	})

	t.Run("progress updates arrive", func(t *testing.T) {
		music := &mocks.MockService{
			Exports:      map[string]*models.PlaylistExport{"PL_src": testExport()},
			AddResponses: []json.RawMessage{json.RawMessage(`{"status": "SUCCEEDED"}`)},
		}
		engine := newTestEngine(music, &mocks.MockSuggester{Suggestions: suggestions})

		progress := make(chan ProgressUpdate, 32)
		_, err := engine.Curate(context.Background(), progress, CurateOpts{
			SourcePlaylistID: "PL_src",
			Criteria:         models.Criteria{Title: "Space Pop"},
		})
		if err != nil {
			t.Fatalf("Curate() error = %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		for _, want := range []Phase{FetchCatalog, Suggest, Match, CreatePlaylist, AddTracks, Report} {
			found := false
			for _, p := range phases {
				if p == want {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no progress update for phase %v", want)
			}
		}
	})
}

func TestPlaylistDescription(t *testing.T) {
	engine := newTestEngine(&mocks.MockService{}, nil)

	t.Run("includes criteria", func(t *testing.T) {
		got := engine.playlistDescription(models.Criteria{
			Title:       "Space Pop",
			Description: "songs about the void",
			Genres:      "glam rock",
			Moods:       "cosmic",
		}, "Source Mix")

		for _, want := range []string{`"Space Pop"`, `"Source Mix"`, "songs about the void", "Genres: glam rock.", "Moods: cosmic."} {
			if !strings.Contains(got, want) {
				t.Errorf("description %q missing %q", got, want)
			}
		}
	})

	t.Run("caps long user descriptions", func(t *testing.T) {
		got := engine.playlistDescription(models.Criteria{
			Title:       "T",
			Description: strings.Repeat("y", 400),
		}, "Source")
		if !strings.Contains(got, strings.Repeat("y", 200)+"...") {
			t.Error("user description not truncated with an ellipsis")
		}
		if strings.Contains(got, strings.Repeat("y", 201)) {
			t.Error("user description exceeds the 200 rune cap")
		}
	})
}

func TestTrimDescription(t *testing.T) {
	engine := newTestEngine(&mocks.MockService{}, nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"first line only", "First Line!\nSecond line", "first line"},
		{"normalized", "LOUD (Official Video) text", "loud text"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.trimDescription(tt.input); got != tt.want {
				t.Errorf("trimDescription(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
