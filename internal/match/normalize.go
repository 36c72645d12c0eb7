// Package match implements the text-normalization and fuzzy-matching engine
// that maps the model's loosely formatted song references back to canonical
// catalog entries.
package match

import (
	"regexp"
	"strings"
)

// noisePatterns are the decorations commonly appended to song titles that
// must not affect matching. Each is deleted case-insensitively, all
// occurrences, before character filtering.
var noisePatterns = []string{
	`\(official music video\)`, `\(official video\)`, `\(lyric video\)`, `\(lyrics\)`,
	`\[lyrics\]`, `\(audio\)`, `\[audio\]`, `\(hd\)`, `\[hd\]`, `\(hq\)`, `\[hq\]`,
	`\(4k\)`, `\(visualizer\)`, `\(official visualizer\)`, `\(remix\)`, `\(edit\)`,
	`\(radio edit\)`, `\(live\)`, `\[live\]`, `\(acoustic\)`, `\(unplugged\)`,
	`feat\.`, `ft\.`, ` explicit`, ` clean`,
}

var (
	noiseMarkers = compileNoiseMarkers()
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s'-]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
)

func compileNoiseMarkers() []*regexp.Regexp {
	markers := make([]*regexp.Regexp, len(noisePatterns))
	for i, pattern := range noisePatterns {
		markers[i] = regexp.MustCompile(`(?i)` + pattern)
	}
	return markers
}

// Normalize canonicalizes a free-text song identifier for comparison.
//
// It is total and deterministic: empty input yields an empty string, and
// Normalize(Normalize(s)) == Normalize(s) for all s. The catalog may itself
// contain decorated titles, and the model may echo decorated variants back,
// so "Song (Official Music Video)" and "Song" must collapse to the same key.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	for _, marker := range noiseMarkers {
		text = marker.ReplaceAllString(text, "")
	}

	// Keep Unicode letters/digits, underscore, whitespace, apostrophes and hyphens.
	text = nonWordRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = spaceRunRe.ReplaceAllString(text, " ")

	return text
}
