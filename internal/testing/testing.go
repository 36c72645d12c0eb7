// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/curatecli/curate/internal/models"
)

// MockService is a configurable test double for [services.Service].
type MockService struct {
	Playlists       []models.Playlist
	Exports         map[string]*models.PlaylistExport
	Descriptions    map[string]string
	CreatedID       string
	AddResponses    []json.RawMessage // consumed in order; last one repeats
	AddErrs         []error           // aligned with AddResponses
	AddCalls        [][]string        // recorded payloads, one per call
	AuthenticateErr error
	ExportErr       error
	DescriptionErr  error
	CreateErr       error
}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.AuthenticateErr
}

func (m *MockService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return m.Playlists, nil
}

func (m *MockService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if export, ok := m.Exports[playlistID]; ok {
		return &export.Playlist, nil
	}
	return nil, errors.New("playlist not found")
}

func (m *MockService) ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	if m.ExportErr != nil {
		return nil, m.ExportErr
	}
	if export, ok := m.Exports[playlistID]; ok {
		return export, nil
	}
	return nil, errors.New("playlist not found")
}

func (m *MockService) GetTrackDescription(ctx context.Context, trackID string) (string, error) {
	if m.DescriptionErr != nil {
		return "", m.DescriptionErr
	}
	return m.Descriptions[trackID], nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, title, description string) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if m.CreatedID != "" {
		return m.CreatedID, nil
	}
	return "PL_new", nil
}

func (m *MockService) AddPlaylistItems(ctx context.Context, playlistID string, trackIDs []string) (json.RawMessage, error) {
	call := append([]string(nil), trackIDs...)
	m.AddCalls = append(m.AddCalls, call)

	idx := len(m.AddCalls) - 1
	if len(m.AddResponses) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if idx >= len(m.AddResponses) {
		idx = len(m.AddResponses) - 1
	}
	var err error
	if idx < len(m.AddErrs) {
		err = m.AddErrs[idx]
	}
	return m.AddResponses[idx], err
}

// MockSuggester returns canned suggestions for [tasks.Suggester].
type MockSuggester struct {
	Suggestions []string
	Err         error
	LastPrompt  models.Criteria
}

func (m *MockSuggester) Suggest(ctx context.Context, criteria models.Criteria, entries []models.CatalogEntry) ([]string, error) {
	m.LastPrompt = criteria
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Suggestions, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}
func (f *FCloser) Close() error {
	return nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// NopCloser wraps a reader so it can stand in for a response body.
func NopCloser(r io.Reader) io.ReadCloser { return io.NopCloser(r) }
