// package formatter provides functions to export playlist catalogs to
// various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/curatecli/curate/internal/models"
)

// ExportToCSV converts a PlaylistExport to CSV format with columns: ID, Title, Artist, Album, Duration
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range export.Tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlaylistExport to a Markdown track table.
func ExportToMarkdown(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Playlist.Name))
	if export.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", export.Playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("%d tracks\n\n", len(export.Tracks)))

	buf.WriteString("| # | Title | Artist | Album | Duration |\n")
	buf.WriteString("|---|-------|--------|-------|----------|\n")
	for i, track := range export.Tracks {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1,
			escapeMarkdown(track.Title),
			escapeMarkdown(track.Artist),
			escapeMarkdown(track.Album),
			formatDuration(track.Duration)))
	}

	return buf.Bytes(), nil
}

// ExportToTXT converts a PlaylistExport to plain "Title by Artist" lines,
// the same identifiers the curator presents to the model.
func ExportToTXT(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	for _, track := range export.Tracks {
		buf.WriteString(fmt.Sprintf("%s by %s\n", track.Title, track.Artist))
	}

	return buf.Bytes(), nil
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
