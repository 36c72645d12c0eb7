// package services defines interface Service for interacting with the
// YouTube Music HTTP API (via ytmusicapi proxy)
package services

import (
	"context"
	"encoding/json"

	"github.com/curatecli/curate/internal/models"
)

// Service defines the interface for the remote music service the curator
// reads catalogs from and mutates playlists on.
type Service interface {
	// Authenticate stores credentials for subsequent requests.
	// Returns an error if required credentials are missing.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves all playlists in the authenticated user's library.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a specific playlist's metadata by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// ExportPlaylist retrieves a playlist with all its tracks.
	ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error)

	// GetTrackDescription fetches the free-text description for a single track.
	GetTrackDescription(ctx context.Context, trackID string) (string, error)

	// CreatePlaylist creates an empty playlist and returns its ID.
	CreatePlaylist(ctx context.Context, title, description string) (string, error)

	// AddPlaylistItems submits track IDs to a playlist and returns the raw
	// response body. The endpoint reports success in several incompatible
	// shapes, so interpretation is left to the caller.
	AddPlaylistItems(ctx context.Context, playlistID string, trackIDs []string) (json.RawMessage, error)

	// Name returns the name of the service (e.g., "YouTube Music")
	Name() string
}
