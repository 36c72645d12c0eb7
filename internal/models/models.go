package models

import "fmt"

// Playlist represents a playlist's metadata from the music service.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}

// PlaylistExport represents a playlist with its full track listing.
type PlaylistExport struct {
	Playlist Playlist
	Tracks   []Track
}

// Track represents one raw track stub as fetched from the service.
// Artist holds all contributing artists already joined with " & ".
type Track struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Duration int // Duration in seconds
}

// CatalogEntry is one immutable source-playlist track as presented to the
// model and matched against its answer. Description, when present, is the
// normalized, length-capped first line of the track's remote description.
type CatalogEntry struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	Description string
}

// MatchIdentifier returns the "Title by Artist" string used as the
// comparison key between the catalog and model output.
func (e CatalogEntry) MatchIdentifier() string {
	return fmt.Sprintf("%s by %s", e.Title, e.Artist)
}

// Criteria captures the user's description of the playlist to curate.
// Only Title is required.
type Criteria struct {
	Title       string
	Description string
	Genres      string
	Artists     string
	Moods       string
	Keywords    string
}
