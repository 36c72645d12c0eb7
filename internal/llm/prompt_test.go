package llm

import (
	"reflect"
	"strings"
	"testing"

	"github.com/curatecli/curate/internal/models"
)

func TestRenderEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry models.CatalogEntry
		want  string
	}{
		{
			name:  "title and artist only",
			entry: models.CatalogEntry{Title: "Starman", Artist: "David Bowie"},
			want:  "Title: Starman\nArtist: David Bowie",
		},
		{
			name:  "with album",
			entry: models.CatalogEntry{Title: "Starman", Artist: "David Bowie", Album: "Ziggy Stardust"},
			want:  "Title: Starman\nArtist: David Bowie\nAlbum: Ziggy Stardust",
		},
		{
			name: "with album and description",
			entry: models.CatalogEntry{
				Title: "Starman", Artist: "David Bowie",
				Album: "Ziggy Stardust", Description: "glam rock classic",
			},
			want: "Title: Starman\nArtist: David Bowie\nAlbum: Ziggy Stardust\nDescription: glam rock classic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderEntry(tt.entry); got != tt.want {
				t.Errorf("RenderEntry() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	criteria := models.Criteria{
		Title:  "Late Night Drive",
		Genres: "synthwave",
		Moods:  "nocturnal",
	}

	t.Run("bare catalog mentions only title and artist", func(t *testing.T) {
		prompt := BuildPrompt(criteria, []models.CatalogEntry{
			{Title: "Nightcall", Artist: "Kavinsky"},
		})
		if !strings.Contains(prompt, "Each song entry includes Title and Artist.") {
			t.Error("expected the field list to name only Title and Artist")
		}
		if strings.Contains(prompt, "and Album") || strings.Contains(prompt, "and Description") {
			t.Error("prompt mentions fields the catalog does not carry")
		}
	})

	t.Run("enriched catalog mentions all fields", func(t *testing.T) {
		prompt := BuildPrompt(criteria, []models.CatalogEntry{
			{Title: "Nightcall", Artist: "Kavinsky", Album: "OutRun", Description: "retro synth"},
		})
		if !strings.Contains(prompt, "Title, Artist, Album and Description") {
			t.Error("expected the field list to include Album and Description")
		}
	})

	t.Run("includes provided criteria and omits absent ones", func(t *testing.T) {
		prompt := BuildPrompt(criteria, []models.CatalogEntry{{Title: "A", Artist: "B"}})
		if !strings.Contains(prompt, `titled: "Late Night Drive"`) {
			t.Error("missing playlist title")
		}
		if !strings.Contains(prompt, "Desired Genre(s): synthwave") {
			t.Error("missing genres line")
		}
		if strings.Contains(prompt, "Preferred Artist(s)") {
			t.Error("artists line present despite empty criteria")
		}
	})

	t.Run("catalog entries separated by delimiter", func(t *testing.T) {
		prompt := BuildPrompt(criteria, []models.CatalogEntry{
			{Title: "A", Artist: "B"},
			{Title: "C", Artist: "D"},
		})
		if !strings.Contains(prompt, "Title: A\nArtist: B\n---\nTitle: C\nArtist: D") {
			t.Error("catalog entries not delimited as expected")
		}
	})
}

func TestSplitSuggestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "plain lines",
			raw:  "Song A by Artist A\nSong B by Artist B",
			want: []string{"Song A by Artist A", "Song B by Artist B"},
		},
		{
			name: "blank lines and padding dropped",
			raw:  "\n  Song A by Artist A  \n\n\nSong B by Artist B\n",
			want: []string{"Song A by Artist A", "Song B by Artist B"},
		},
		{
			name: "empty answer",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			raw:  "  \n\t\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitSuggestions(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSuggestions(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHumanJoin(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{nil, ""},
		{[]string{"Title"}, "Title"},
		{[]string{"Title", "Artist"}, "Title and Artist"},
		{[]string{"Title", "Artist", "Album"}, "Title, Artist and Album"},
	}
	for _, tt := range tests {
		if got := humanJoin(tt.items); got != tt.want {
			t.Errorf("humanJoin(%v) = %q, want %q", tt.items, got, tt.want)
		}
	}
}
