package playlist

import "strings"

// Override injects a fixed track for a transcript line that cannot be parsed
// generically. The first override whose Trigger occurs in a line wins and the
// line is not processed further.
type Override struct {
	Trigger string `yaml:"trigger" toml:"trigger" json:"trigger"`
	Title   string `yaml:"title" toml:"title" json:"title"`
	Artist  string `yaml:"artist,omitempty" toml:"artist" json:"artist,omitempty"`
}

// DefaultOverrides returns the known transcript one-offs.
func DefaultOverrides() []Override {
	return []Override{
		// The interview is transcribed as prose; the song played under it is fixed.
		{Trigger: "Bobby Pickett interview", Title: "Little Darlin'", Artist: "Bobby Pickett"},
	}
}

func matchOverride(overrides []Override, line string) (Override, bool) {
	for _, o := range overrides {
		if o.Trigger != "" && strings.Contains(line, o.Trigger) {
			return o, true
		}
	}
	return Override{}, false
}
