package playlist

import (
	"regexp"
	"strings"
)

var (
	reBracketed   = regexp.MustCompile(`\s*[\(\[][^\)\]]*?[\)\]]\s*`)
	reNonAlphaNum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Normalize maps a display title or artist to the lowercase alphanumeric key
// used for deduplication. The empty string maps to the empty key, and
// Normalize(Normalize(s)) == Normalize(s) for every s.
//
// Cast-album and soundtrack artifacts, a leading "the", conjunctions and any
// bracketed aside are folded away before punctuation is dropped, so
// "The Beach Boys" and "beach boys" share a key.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(text)
	s = strings.TrimSuffix(s, " cast")
	s = strings.TrimPrefix(s, "the ")

	// Order matters: "&" folds to "and" before "and" folds to a space.
	s = strings.ReplaceAll(s, " the", "")
	s = strings.ReplaceAll(s, " & ", " and ")
	s = strings.ReplaceAll(s, " and ", " ")

	s = strings.ReplaceAll(s, " cast ", "")
	s = strings.ReplaceAll(s, " original soundtrack", " ")
	s = strings.ReplaceAll(s, " soundtrack", " ")

	s = reBracketed.ReplaceAllString(s, " ")
	return reNonAlphaNum.ReplaceAllString(s, "")
}

// NormalizeKey returns the (title, artist) key pair for a track.
func NormalizeKey(title, artist string) (string, string) {
	return Normalize(title), Normalize(artist)
}
