package llm

import (
	"fmt"
	"strings"

	"github.com/curatecli/curate/internal/models"
)

// entrySeparator delimits catalog entries inside the prompt; the model is
// told never to echo it back.
const entrySeparator = "\n---\n"

// RenderEntry formats one catalog entry the way the model sees it.
func RenderEntry(entry models.CatalogEntry) string {
	parts := []string{
		fmt.Sprintf("Title: %s", entry.Title),
		fmt.Sprintf("Artist: %s", entry.Artist),
	}
	if entry.Album != "" {
		parts = append(parts, fmt.Sprintf("Album: %s", entry.Album))
	}
	if entry.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", entry.Description))
	}
	return strings.Join(parts, "\n")
}

// BuildPrompt assembles the curator prompt: the user's criteria, selection
// guidance, the strict output-format contract, and the catalog itself.
//
// The phrasing adapts to what the catalog actually carries - Album and
// Description are only mentioned when at least one entry has them - so the
// model is never told to weigh fields it cannot see.
func BuildPrompt(criteria models.Criteria, entries []models.CatalogEntry) string {
	hasAlbum, hasDescription := false, false
	rendered := make([]string, len(entries))
	for i, entry := range entries {
		rendered[i] = RenderEntry(entry)
		if entry.Album != "" {
			hasAlbum = true
		}
		if entry.Description != "" {
			hasDescription = true
		}
	}

	fields := []string{"Title", "Artist"}
	if hasAlbum {
		fields = append(fields, "Album")
	}
	if hasDescription {
		fields = append(fields, "Description")
	}
	fieldList := humanJoin(fields)

	var b strings.Builder

	b.WriteString("You are an expert music curator AI.\n")
	b.WriteString(criteriaSummary(criteria))
	b.WriteString("\n\n")

	b.WriteString(`Your task is to carefully review the "Available songs" list below. Each song entry is separated by "---".` + "\n")
	fmt.Fprintf(&b, "Each song entry includes %s. Use ALL available information for each song in the list to make your choices.\n\n", fieldList)

	b.WriteString("Critically evaluate how well each song aligns with the user's detailed playlist criteria. Consider:\n")
	b.WriteString("- Does the song's Artist typically align with the requested genres or preferred artists? If preferred artists are listed, prioritize their songs when they fit the overall theme.\n")
	extra := ""
	if hasAlbum {
		extra += " and Album"
	}
	if hasDescription {
		extra += " and Description"
	}
	fmt.Fprintf(&b, "- Does the song's Title%s evoke the requested mood, theme, or keywords?\n", extra)
	b.WriteString("- Even if an artist is preferred, ensure the specific song fits the overall request.\n\n")

	b.WriteString(`Select ONLY the songs from the "Available songs" list that genuinely and strongly fit the user's request.` + "\n")
	fmt.Fprintf(&b, "If a song is a weak match, ambiguous, or you cannot confidently determine its fit from its %s against the criteria, DO NOT include it.\n", fieldList)
	b.WriteString("It is better to be conservative and select fewer, highly relevant songs.\n")
	b.WriteString(`Do NOT use any external knowledge about songs beyond what is provided in the "Available songs" list.` + "\n\n")

	b.WriteString("CRITICAL INSTRUCTIONS FOR OUTPUT FORMAT:\n")
	b.WriteString("1. Output ONLY the selected songs.\n")
	b.WriteString("2. For EACH selected song, output its \"Title by Artist\" string on a new line.\n")
	b.WriteString("   For example: \"Song Title by Artist Name\"\n")
	b.WriteString("3. The \"Title by Artist\" string MUST EXACTLY MATCH the title and artist as they were provided in the input for that song.\n")
	b.WriteString("4. Do NOT include \"Description:\", \"Album:\", \"---\", numbering, bullet points, introductory text, concluding text, or ANY other commentary.\n\n")

	b.WriteString("Available songs:\n")
	b.WriteString(strings.Join(rendered, entrySeparator))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Selected songs for %q based on the detailed criteria:\n", criteria.Title)

	return b.String()
}

// criteriaSummary renders only the criteria the user actually provided.
func criteriaSummary(criteria models.Criteria) string {
	lines := []string{fmt.Sprintf("The user wants to create a new playlist titled: %q.", criteria.Title)}
	if criteria.Description != "" {
		lines = append(lines, fmt.Sprintf("Playlist Description: %s", criteria.Description))
	}
	if criteria.Genres != "" {
		lines = append(lines, fmt.Sprintf("Desired Genre(s): %s", criteria.Genres))
	}
	if criteria.Artists != "" {
		lines = append(lines, fmt.Sprintf("Preferred Artist(s) (consider these strongly if their songs appear in the list): %s", criteria.Artists))
	}
	if criteria.Moods != "" {
		lines = append(lines, fmt.Sprintf("Desired Mood(s)/Vibe(s): %s", criteria.Moods))
	}
	if criteria.Keywords != "" {
		lines = append(lines, fmt.Sprintf("Other Keywords: %s", criteria.Keywords))
	}
	return strings.Join(lines, "\n")
}

// humanJoin renders ["a","b","c"] as "a, b and c".
func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// SplitSuggestions splits the model's raw answer into non-blank trimmed
// lines, one suggestion per line. No structural validation beyond non-blank.
func SplitSuggestions(raw string) []string {
	var suggestions []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			suggestions = append(suggestions, line)
		}
	}
	return suggestions
}
