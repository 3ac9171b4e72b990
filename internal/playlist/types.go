// Package playlist extracts track plays from Dr. Demento show transcripts.
// It normalizes titles and artists into dedup keys, parses show header lines
// and folds track lines into a deduplicated catalog.
package playlist

// ShowHeader is the show context parsed from a header line.
// Empty fields are absent.
type ShowHeader struct {
	Title   string `yaml:"title" json:"title"`
	Number  string `yaml:"number,omitempty" json:"number,omitempty"`
	RawDate string `yaml:"raw_date,omitempty" json:"raw_date,omitempty"`
	AirDate string `yaml:"air_date,omitempty" json:"air_date,omitempty"`
}

// HasNumber reports whether an episode number was recovered.
func (h ShowHeader) HasNumber() bool {
	return h.Number != ""
}

// HasDate reports whether the header resolved to an ISO air date.
func (h ShowHeader) HasDate() bool {
	return h.AirDate != ""
}

// TrackLine is a line classified as a track entry.
type TrackLine struct {
	LineNo int    `yaml:"line" json:"line"`
	Title  string `yaml:"title" json:"title"`
	Note   string `yaml:"note,omitempty" json:"note,omitempty"`
	Artist string `yaml:"artist,omitempty" json:"artist,omitempty"`
}

// UnmatchedLine is a line carrying a track marker that the track pattern
// could not parse.
type UnmatchedLine struct {
	LineNo int    `yaml:"line" json:"line"`
	Line   string `yaml:"text" json:"text"`
	Show   string `yaml:"show,omitempty" json:"show,omitempty"`
}

// TrackRecord is one deduplicated (title, artist) pair and the shows it
// aired on.
type TrackRecord struct {
	Title  string   `yaml:"title" json:"title"`
	Artist string   `yaml:"artist,omitempty" json:"artist,omitempty"`
	Shows  []string `yaml:"shows" json:"shows"`
	First  string   `yaml:"first,omitempty" json:"first,omitempty"`
}

// Key returns the normalized (title, artist) identity of the record.
func (r TrackRecord) Key() (string, string) {
	return Normalize(r.Title), Normalize(r.Artist)
}

// Plays is the number of distinct dated shows the track aired on.
func (r TrackRecord) Plays() int {
	return len(r.Shows)
}

// ShowScan is the result of scanning one show file.
type ShowScan struct {
	// Header is the most recently parsed header, nil when the file had none.
	Header       *ShowHeader     `yaml:"header,omitempty" json:"header,omitempty"`
	HeaderCount  int             `yaml:"header_count" json:"header_count"`
	SpecialTopic string          `yaml:"special_topic,omitempty" json:"special_topic,omitempty"`
	Tracks       []TrackLine     `yaml:"tracks" json:"tracks"`
	Unmatched    []UnmatchedLine `yaml:"unmatched,omitempty" json:"unmatched,omitempty"`
	Catalog      *Catalog        `yaml:"-" json:"-"`
}

// ShowTitle returns the current header's title, or "" when no header was seen.
func (s *ShowScan) ShowTitle() string {
	if s.Header == nil {
		return ""
	}
	return s.Header.Title
}
