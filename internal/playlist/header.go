package playlist

import (
	"regexp"
	"strings"
)

// headerRule pairs a compiled pattern with the extraction for one header
// layout. Rules are tried in order by ParseHeader; first match wins.
type headerRule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(m []string) ShowHeader
}

// Pattern fragments shared by the rules. A separator hyphen must touch
// whitespace on at least one side; a hyphen glued between token characters
// is part of "#XM-01" or "X-Mas", not a separator.
const (
	numberToken = `#[A-Za-z0-9-]+`
	asideToken  = `(?:\s*\([^)]*\))?`
	separator   = `(?:\s+-\s*|\s*-\s+)`
)

var headerRules = []headerRule{
	{
		Name:    "title-number-date",
		Pattern: regexp.MustCompile(`^(.+?)(?:\s+(` + numberToken + `)` + asideToken + `)?` + separator + `(.+)`),
		Extract: func(m []string) ShowHeader {
			return ShowHeader{Title: m[1], Number: m[2], RawDate: m[3]}
		},
	},
	{
		Name:    "title-number",
		Pattern: regexp.MustCompile(`^(.+?)\s+(` + numberToken + `)` + asideToken + `\s*$`),
		Extract: func(m []string) ShowHeader {
			return ShowHeader{Title: m[1], Number: m[2]}
		},
	},
	{
		Name:    "title-date",
		Pattern: regexp.MustCompile(`^(.+?)` + separator + `(.+)`),
		Extract: func(m []string) ShowHeader {
			return ShowHeader{Title: m[1], RawDate: m[2]}
		},
	},
}

var reHeaderTag = regexp.MustCompile(`(?i)</?h2[^>]*>`)

// ParseHeader recovers the show title, episode number and air date from a
// header line such as
//
//	<H2>Dr. Demento Show #123-45 - January 5, 1980</H2>
//
// Missing parts are left empty. The only error is a *DateParseError for a
// date phrase the repair table cannot rescue.
func ParseHeader(line string) (ShowHeader, error) {
	s := cleanHeaderLine(line)

	h := ShowHeader{Title: s}
	for _, rule := range headerRules {
		m := rule.Pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		h = rule.Extract(m)
		break
	}

	h.Title = strings.TrimSpace(h.Title)
	h.Number = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(h.Number), "#"))
	h.RawDate = cleanPosted(h.RawDate)

	airDate, err := resolveAirDate(h.RawDate)
	if err != nil {
		return h, err
	}
	h.AirDate = airDate
	return h, nil
}

// cleanHeaderLine removes the markup around a header and the split
// "#XM 01" channel prefix.
func cleanHeaderLine(line string) string {
	s := strings.ReplaceAll(line, "#XM ", "#XM")
	s = reHeaderTag.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// cleanPosted strips the "posted" marker used by web-only episodes.
func cleanPosted(raw string) string {
	s := strings.ReplaceAll(raw, " posted", "")
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "posted ") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "posted "))
	}
	return s
}

// MatchHeaderRule reports which header layout a line resolves through.
func MatchHeaderRule(line string) string {
	s := cleanHeaderLine(line)
	for _, rule := range headerRules {
		if rule.Pattern.MatchString(s) {
			return rule.Name
		}
	}
	return "title-only"
}
