package tasks

import (
	"fmt"

	"github.com/curatecli/curate/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	FetchDetails
	Suggest
	Match
	CreatePlaylist
	AddTracks
	Report
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case FetchDetails:
		return "fetch_details"
	case Suggest:
		return "suggest"
	case Match:
		return "match"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	case Report:
		return "report"
	default:
		return ""
	}
}

func fetchCatalogUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching songs from playlist %q...", name),
	}
}

func fetchDetailsUpdate(step, total int, track *models.Track) ProgressUpdate {
	update := ProgressUpdate{
		Phase: FetchDetails,
		Step:  step,
		Total: total,
	}
	if track != nil {
		update.Message = fmt.Sprintf("Fetching details for %q (%d/%d)...", track.Title, step, total)
		update.Data = track
	}
	return update
}

func suggestUpdate(catalogSize int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Suggest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Asking the model to select from %d songs...", catalogSize),
	}
}

func matchUpdate(suggestionCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Match,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Matching %d suggestions against the catalog...", suggestionCount),
	}
}

func createPlaylistUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q...", title),
	}
}

func addTracksUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Adding %d songs in batches...", count),
	}
}

func reportUpdate(confirmed, unconfirmed int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Report,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Done: %d confirmed, %d unconfirmed", confirmed, unconfirmed),
	}
}
