package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/curatecli/curate/internal/formatter"
	"github.com/curatecli/curate/internal/shared"
)

// Playlists lists the library's playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	if r.music == nil {
		return fmt.Errorf("%w: music service not initialized", shared.ErrServiceUnavailable)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("fetching library playlists")

	playlists, err := r.music.GetPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	if len(playlists) == 0 {
		r.writePlain("No playlists found in your library.\n")
		return nil
	}

	r.writePlain("Your Playlists:\n\n")
	for i, pl := range playlists {
		r.writePlain("%d. %s (%d tracks) [%s]\n", i+1, pl.Name, pl.TrackCount, pl.ID)
	}

	return nil
}

// Export dumps a playlist's catalog in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if r.music == nil {
		return fmt.Errorf("%w: music service not initialized", shared.ErrServiceUnavailable)
	}

	playlistID := cmd.String("id")
	format := strings.ToLower(cmd.String("format"))
	outputPath := cmd.String("output")

	r.logger.Info("exporting playlist", "id", playlistID, "format", format)

	export, err := r.music.ExportPlaylist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaylistNotFound, err)
	}

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(export)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(export)
	case "txt", "text":
		data, err = formatter.ExportToTXT(export)
	case "json":
		return r.writeJSON(export, true)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = r.output.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	r.writePlain("Exported %d tracks to %s\n", len(export.Tracks), outputPath)
	return nil
}
