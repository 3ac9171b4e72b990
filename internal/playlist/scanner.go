package playlist

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	reHeaderMarker = regexp.MustCompile(`(?i)<h2`)
	reStrongOpen   = regexp.MustCompile(`(?i)<strong[^>]*>`)
	reStrongAny    = regexp.MustCompile(`(?i)<strong`)
	reLineBreak    = regexp.MustCompile(`(?i)<br\s*/?>`)
	reParagraph    = regexp.MustCompile(`(?i)</?p>`)
	reSpecialTopic = regexp.MustCompile(`^Special Topic:\s*(.+)`)

	// reTrack captures title, optional parenthesized note ("excerpt #1") and
	// optional artist after a hyphen.
	reTrack = regexp.MustCompile(`(?i)^<strong>(.+?)</strong>(?:\s*\(([^)]+)\))?(?:\s*-\s*(.+))?`)
)

const commentMarker = "<!--"

// markupCleanups run in order over every line that survives the header,
// comment and override checks.
var markupCleanups = []func(string) string{
	func(s string) string { return reLineBreak.ReplaceAllString(s, "") },
	func(s string) string { return reParagraph.ReplaceAllString(s, "") },
	func(s string) string { return strings.ReplaceAll(s, "&amp;", "&") },
	func(s string) string { return strings.ReplaceAll(s, "&quot;", " ") },
	func(s string) string { return strings.ReplaceAll(s, `"`, " ") },
	func(s string) string { return strings.ReplaceAll(s, "[online version only]", "") },
}

// Scanner walks the lines of one show file and folds its tracks into a
// catalog contribution.
type Scanner struct {
	Overrides []Override
	Logger    *slog.Logger
}

// DefaultScanner returns a scanner with the built-in overrides and the
// default slog logger.
func DefaultScanner() *Scanner {
	return &Scanner{Overrides: DefaultOverrides()}
}

// ScanShow scans lines with DefaultScanner.
func ScanShow(lines []string) (*ShowScan, error) {
	return DefaultScanner().ScanShow(lines)
}

// scanState is the context carried from line to line within one file.
type scanState struct {
	header *ShowHeader
	result *ShowScan
}

func (st *scanState) airDate() string {
	if st.header == nil {
		return ""
	}
	return st.header.AirDate
}

// ScanShow processes the ordered lines of one show file. Header lines replace
// the current show context; track lines are folded into the returned
// catalog under the current air date. Lines with a track marker that do not
// parse are collected in Unmatched and logged. The only error is an
// unparseable header date, wrapped in a *LineError.
func (s *Scanner) ScanShow(lines []string) (*ShowScan, error) {
	st := &scanState{
		result: &ShowScan{
			Tracks:  []TrackLine{},
			Catalog: NewCatalog(),
		},
	}

	for i, line := range lines {
		if err := s.scanLine(st, i+1, line); err != nil {
			return st.result, err
		}
	}

	st.result.Header = st.header
	return st.result, nil
}

func (s *Scanner) scanLine(st *scanState, lineNo int, line string) error {
	if reHeaderMarker.MatchString(line) {
		h, err := ParseHeader(line)
		if err != nil {
			return &LineError{LineNo: lineNo, Line: line, Err: err}
		}
		st.header = &h
		st.result.Header = st.header
		st.result.HeaderCount++
	}

	if strings.Contains(line, commentMarker) {
		return nil
	}

	if o, ok := matchOverride(s.Overrides, line); ok {
		st.result.Tracks = append(st.result.Tracks, TrackLine{LineNo: lineNo, Title: o.Title, Artist: o.Artist})
		st.result.Catalog.Add(o.Title, o.Artist, st.airDate())
		return nil
	}

	line = cleanTrackLine(line)

	if m := reSpecialTopic.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
		st.result.SpecialTopic = strings.TrimSpace(m[1])
	}

	if m := reTrack.FindStringSubmatch(line); m != nil {
		t := TrackLine{
			LineNo: lineNo,
			Title:  strings.TrimSpace(m[1]),
			Note:   strings.TrimSpace(m[2]),
			Artist: strings.TrimSpace(m[3]),
		}
		st.result.Tracks = append(st.result.Tracks, t)
		st.result.Catalog.Add(t.Title, t.Artist, st.airDate())
		return nil
	}

	if reStrongAny.MatchString(line) {
		u := UnmatchedLine{LineNo: lineNo, Line: line, Show: st.result.ShowTitle()}
		st.result.Unmatched = append(st.result.Unmatched, u)
		s.logger().Warn("unmatched track line", "line", lineNo, "text", line, "show", u.Show)
	}
	return nil
}

// cleanTrackLine re-anchors a line at its first track marker and strips the
// inline markup and entities that surround track text.
func cleanTrackLine(line string) string {
	if loc := reStrongOpen.FindStringIndex(line); loc != nil {
		line = "<STRONG>" + line[loc[1]:]
	}
	for _, clean := range markupCleanups {
		line = strings.TrimSpace(clean(line))
	}
	return strings.Trim(line, "/")
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
