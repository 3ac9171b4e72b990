package playlist

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ISODate is the layout of resolved air dates.
const ISODate = "2006-01-02"

// dateRepair is one heuristic correction applied to a raw date phrase before
// it reaches the date parser. Repairs run in table order.
type dateRepair struct {
	Name  string
	Apply func(string) string
}

var (
	reLeadingWeekday = regexp.MustCompile(`(?i)^(?:mon|tues|wednes|thurs|fri|satur|sun)day,?\s+`)
	reSeptAbbrev     = regexp.MustCompile(`\bSept\s`)
	reDayFirst       = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+\.?),?\s+(\d{4})`)
)

var dateRepairs = []dateRepair{
	{Name: "uncertain-marker", Apply: func(s string) string {
		return strings.ReplaceAll(s, "(?)", "")
	}},
	{Name: "ocr-1971", Apply: func(s string) string {
		return strings.ReplaceAll(s, "197l", "1971")
	}},
	{Name: "rocktober", Apply: func(s string) string {
		s = strings.ReplaceAll(s, "Rocktober ", "October ")
		return strings.ReplaceAll(s, "?", "")
	}},
	{Name: "leading-weekday", Apply: func(s string) string {
		return reLeadingWeekday.ReplaceAllString(strings.TrimSpace(s), "")
	}},
	// "5 January, 1980" reads as month-first for the date parser.
	{Name: "day-first", Apply: func(s string) string {
		return reDayFirst.ReplaceAllString(s, "$2 $1, $3")
	}},
	{Name: "sept", Apply: func(s string) string {
		return reSeptAbbrev.ReplaceAllString(s, "Sep ")
	}},
	{Name: "inline-annotation", Apply: func(s string) string {
		if !strings.Contains(s, " (") {
			return s
		}
		atoms := strings.Fields(s)
		if len(atoms) > 3 {
			atoms = atoms[:3]
		}
		return strings.Join(atoms, " ")
	}},
}

// looksLikeDate is the gate for parsing: only phrases shaped like
// "Month Day, Year" are attempted.
func looksLikeDate(raw string) bool {
	return strings.Contains(raw, ", ")
}

// RepairDate applies the repair table to a raw date phrase and reports
// whether anything is left worth parsing. A phrase starting with the garbled
// "ring" fragment carries no recoverable date.
func RepairDate(raw string) (string, bool) {
	s := raw
	for _, r := range dateRepairs {
		s = r.Apply(s)
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "ring") {
		return s, false
	}
	return s, true
}

// resolveAirDate turns a cleaned raw date phrase into an ISO date. Phrases
// that do not look like full dates resolve to "" without error.
func resolveAirDate(raw string) (string, error) {
	if raw == "" || !looksLikeDate(raw) {
		return "", nil
	}

	repaired, ok := RepairDate(raw)
	if !ok {
		return "", nil
	}

	t, err := dateparse.ParseIn(repaired, time.UTC)
	if err != nil {
		return "", &DateParseError{Raw: raw, Repaired: repaired, Cause: err}
	}
	return t.Format(ISODate), nil
}
